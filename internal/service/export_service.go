package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/export"
	"github.com/noah-isme/exam-seating-api/pkg/jobs"
	"github.com/noah-isme/exam-seating-api/pkg/storage"
)

const invigilatorFooter = "Invigilator's Signature: ___________"

// JobExportCleanup is the queue job type that purges expired export files.
const JobExportCleanup = "export_cleanup"

type planReader interface {
	Plan(ctx context.Context, id string) (*models.SeatingPlan, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type sheetRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportService renders attendance sheets and seating charts for stored plans.
type ExportService struct {
	plans     planReader
	storage   fileStorage
	csv       sheetRenderer
	pdf       sheetRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to pkg/export.
func NewExportService(plans planReader, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, metrics *MetricsService, logger *zap.Logger, csv, pdf sheetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		plans:     plans,
		storage:   store,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		validator: validator.New(),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Export renders one room of a plan and returns a signed download link.
func (s *ExportService) Export(ctx context.Context, planID string, req dto.ExportRequest) (*dto.ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	plan, err := s.plans.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}
	found, ok := plan.FindAllocation(models.Gender(req.Gender), req.RoomNo)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d is not in the %s pool of this plan", req.RoomNo, strings.ToLower(req.Gender)))
	}

	alloc := *found

	var sheet export.Sheet
	switch req.Kind {
	case dto.ExportKindAttendance:
		sheet = AttendanceSheet(alloc, plan.Date)
	default:
		sheet = SeatingChart(alloc, plan.Date)
	}

	var (
		payload     []byte
		contentType string
	)
	switch req.Format {
	case dto.ExportFormatPDF:
		payload, err = s.pdf.Render(sheet)
		contentType = "application/pdf"
	default:
		payload, err = s.csv.Render(sheet)
		contentType = "text/csv"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := s.buildFilename(plan, alloc, req)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(plan.ID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
	}

	s.metrics.RecordExport(req.Kind, req.Format)
	s.logger.Info("export rendered",
		zap.String("plan_id", plan.ID),
		zap.Int("room_no", req.RoomNo),
		zap.String("kind", req.Kind),
		zap.String("format", req.Format),
		zap.Int("bytes", len(payload)),
	)

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.ExportResult{
		FileName:    filename,
		ContentType: contentType,
		Token:       token,
		URL:         fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt:   expiresAt,
	}, nil
}

// Open resolves a download token to the stored file.
func (s *ExportService) Open(token string) (*os.File, storage.Ticket, error) {
	ticket, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, storage.Ticket{}, appErrors.Clone(appErrors.ErrNotFound, "download link expired")
		}
		return nil, storage.Ticket{}, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	file, err := s.storage.Open(ticket.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.Ticket{}, appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
		}
		return nil, storage.Ticket{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	return file, ticket, nil
}

// Cleanup removes files older than ttl (the configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("files", len(removed)))
	}
	return removed, nil
}

// HandleJob runs queued maintenance for exports.
func (s *ExportService) HandleJob(_ context.Context, job jobs.Job) error {
	switch job.Type {
	case JobExportCleanup:
		_, err := s.Cleanup(0)
		return err
	default:
		return fmt.Errorf("unknown export job type %q", job.Type)
	}
}

func (s *ExportService) buildFilename(plan *models.SeatingPlan, alloc models.RoomAllocation, req dto.ExportRequest) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	kind := strings.ToLower(strings.ReplaceAll(req.Kind, "_", "-"))
	return fmt.Sprintf("%s_%s_room-%d_%s_%s.%s",
		kind,
		sanitizeFilename(plan.Date),
		alloc.Room.RoomNo,
		strings.ToLower(string(alloc.Gender)),
		timestamp,
		strings.ToLower(req.Format),
	)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

// AttendanceSheet lists the occupants of a room grouped by batch, in seat order within a batch.
func AttendanceSheet(alloc models.RoomAllocation, date string) export.Sheet {
	var seated []models.SeatedStudent
	if alloc.Layout != nil {
		seated = alloc.Layout.Seated()
	}
	sort.SliceStable(seated, func(i, j int) bool {
		return seated[i].Student.Batch < seated[j].Student.Batch
	})

	var batches []string
	rows := make([][]string, 0, len(seated))
	for i, occupant := range seated {
		if i == 0 || occupant.Student.Batch != seated[i-1].Student.Batch {
			batches = append(batches, occupant.Student.Batch)
		}
		rows = append(rows, []string{occupant.Student.Name, occupant.Student.ID, occupant.Student.Batch, "", "", ""})
	}

	return export.Sheet{
		Title: fmt.Sprintf("Attendance Sheet - Room %d (%s)", alloc.Room.RoomNo, genderLabel(alloc.Gender)),
		Subtitles: []string{
			"Batch: " + strings.Join(batches, ", "),
			"Date: " + date,
		},
		Headers: []string{"Name", "ID", "Batch", "Sheet No", "Extra Sheet No", "Signature"},
		Rows:    rows,
		Footer:  []string{fmt.Sprintf("Total Students: %d", len(rows)), invigilatorFooter},
	}
}

// SeatingChart draws the room grid: one line per desk row, two cells per desk.
func SeatingChart(alloc models.RoomAllocation, date string) export.Sheet {
	columns := alloc.Room.Columns
	rowsCount := alloc.Room.Rows()
	if alloc.Layout != nil {
		columns = alloc.Layout.Columns()
		rowsCount = alloc.Layout.Rows()
	}

	headers := make([]string, 0, columns*models.SeatsPerDesk)
	for i := 1; i <= columns*models.SeatsPerDesk; i++ {
		headers = append(headers, fmt.Sprintf("C%d", i))
	}

	rows := make([][]string, 0, rowsCount)
	for r := 0; r < rowsCount; r++ {
		line := make([]string, columns*models.SeatsPerDesk)
		for c := 0; c < columns; c++ {
			for seat := 0; seat < models.SeatsPerDesk; seat++ {
				if alloc.Layout == nil {
					continue
				}
				if student := alloc.Layout.At(models.SeatRef{Row: r, Column: c, Seat: seat}); student != nil {
					line[c*models.SeatsPerDesk+seat] = fmt.Sprintf("%s (%s)", student.ID, student.Batch)
				}
			}
		}
		rows = append(rows, line)
	}

	report := BuildRoomReport(alloc)
	return export.Sheet{
		Title:     fmt.Sprintf("Seating Plan - Room %d (%s)", alloc.Room.RoomNo, genderLabel(alloc.Gender)),
		Subtitles: []string{"Date: " + date, fmt.Sprintf("Seated: %d of %d", report.Seated, report.Capacity)},
		Headers:   headers,
		Rows:      rows,
		Landscape: columns*models.SeatsPerDesk > 6,
	}
}

func genderLabel(gender models.Gender) string {
	if gender == models.GenderFemale {
		return "Female"
	}
	return "Male"
}
