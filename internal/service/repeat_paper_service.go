package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type scheduleStore interface {
	FindByBatch(ctx context.Context, batch string) (*models.DateSheet, error)
	SaveSchedule(ctx context.Context, batch string, schedule models.Schedule) error
}

// NextSaturday returns the first Saturday strictly after date.
func NextSaturday(date time.Time) time.Time {
	offset := (int(time.Saturday) - int(date.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return date.AddDate(0, 0, offset)
}

// HasClash reports whether home holds any entry on a date where primary schedules course.
// The clashing entry's subject is not inspected.
func HasClash(course string, primary, home models.Schedule) bool {
	_, ok := clashDate(course, primary, home)
	return ok
}

func clashDate(course string, primary, home models.Schedule) (string, bool) {
	for _, date := range primary.Dates() {
		if primary[date] != course {
			continue
		}
		if strings.TrimSpace(home[date]) != "" {
			return date, true
		}
	}
	return "", false
}

// RepeatPaperConfig lists student batches excluded from bulk processing.
type RepeatPaperConfig struct {
	ExemptBatches []string
}

// RepeatPaperService moves repeat papers to the following Saturday.
type RepeatPaperService struct {
	store     scheduleStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	exempt    map[string]struct{}
}

// NewRepeatPaperService constructs the rescheduler.
func NewRepeatPaperService(store scheduleStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg RepeatPaperConfig) *RepeatPaperService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	exempt := make(map[string]struct{}, len(cfg.ExemptBatches))
	for _, batch := range cfg.ExemptBatches {
		exempt[strings.TrimSpace(batch)] = struct{}{}
	}
	return &RepeatPaperService{store: store, validator: validate, metrics: metrics, logger: logger, exempt: exempt}
}

// Reschedule removes the course from its current date and writes it on the next Saturday.
// An entry already on that Saturday is overwritten and returned in Overwritten.
func (s *RepeatPaperService) Reschedule(ctx context.Context, req dto.RepeatPaperRequest) (*dto.RepeatPaperResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid repeat paper payload")
	}
	batch := strings.TrimSpace(req.Batch)
	course := strings.TrimSpace(req.CourseName)
	if _, err := models.ParseBatch(batch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed batch identifier")
	}

	sheet, err := s.loadSheet(ctx, batch)
	if err != nil {
		return nil, err
	}
	schedule := sheet.Schedule.Clone()

	from, ok := schedule.DateOf(course)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %q is not scheduled for batch %s", course, batch))
	}
	current, err := time.Parse(models.DateLayout, from)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("schedule date %q is not an ISO date", from))
	}
	to := NextSaturday(current).Format(models.DateLayout)

	delete(schedule, from)
	var overwritten *string
	if previous, exists := schedule[to]; exists && strings.TrimSpace(previous) != "" {
		prev := previous
		overwritten = &prev
		s.logger.Warn("repeat paper overwrote scheduled entry",
			zap.String("batch", batch),
			zap.String("date", to),
			zap.String("previous", previous),
			zap.String("course", course),
		)
	}
	schedule[to] = course

	if err := s.store.SaveSchedule(ctx, batch, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
	}
	s.metrics.RecordRepeatPaperMove(overwritten != nil)
	s.logger.Info("repeat paper rescheduled",
		zap.String("batch", batch),
		zap.String("course", course),
		zap.String("from", from),
		zap.String("to", to),
	)

	return &dto.RepeatPaperResult{
		Batch:       batch,
		CourseName:  course,
		FromDate:    from,
		ToDate:      to,
		Overwritten: overwritten,
		Schedule:    schedule,
	}, nil
}

// CheckClash loads both schedules and evaluates HasClash.
func (s *RepeatPaperService) CheckClash(ctx context.Context, req dto.ClashCheckRequest) (*dto.ClashCheckResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clash check payload")
	}
	batch := strings.TrimSpace(req.Batch)
	studentBatch := strings.TrimSpace(req.StudentBatch)
	course := strings.TrimSpace(req.CourseName)

	primary, err := s.loadSheet(ctx, batch)
	if err != nil {
		return nil, err
	}
	home, err := s.loadSheet(ctx, studentBatch)
	if err != nil {
		return nil, err
	}

	date, clash := clashDate(course, primary.Schedule, home.Schedule)
	return &dto.ClashCheckResult{
		CourseName:   course,
		Batch:        batch,
		StudentBatch: studentBatch,
		Date:         date,
		Clash:        clash,
	}, nil
}

// Process runs the clash check and reschedule for each uncleared row. Row
// failures are reported in the result and do not stop the run.
func (s *RepeatPaperService) Process(ctx context.Context, req dto.RepeatPaperBatchRequest) (*dto.RepeatPaperBatchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid repeat paper sheet")
	}

	result := &dto.RepeatPaperBatchResult{Rows: make([]dto.RepeatPaperRowResult, 0, len(req.Rows))}
	for i, row := range req.Rows {
		if row.Cleared {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := s.processRow(ctx, i, row)
		switch outcome.Outcome {
		case dto.RepeatPaperMoved:
			result.Moved++
		case dto.RepeatPaperFailed:
			result.Failed++
		default:
			result.Skipped++
		}
		result.Processed++
		result.Rows = append(result.Rows, outcome)
	}
	return result, nil
}

func (s *RepeatPaperService) processRow(ctx context.Context, index int, row dto.RepeatPaperRow) dto.RepeatPaperRowResult {
	out := dto.RepeatPaperRowResult{Index: index, Row: row}
	if _, ok := s.exempt[strings.TrimSpace(row.StudentBatch)]; ok {
		out.Outcome = dto.RepeatPaperExempt
		return out
	}

	check, err := s.CheckClash(ctx, dto.ClashCheckRequest{CourseName: row.CourseName, Batch: row.Batch, StudentBatch: row.StudentBatch})
	if err != nil {
		return failedRow(out, err)
	}
	if !check.Clash {
		out.Outcome = dto.RepeatPaperNoClash
		return out
	}

	move, err := s.Reschedule(ctx, dto.RepeatPaperRequest{Batch: row.Batch, CourseName: row.CourseName})
	if err != nil {
		return failedRow(out, err)
	}
	out.Outcome = dto.RepeatPaperMoved
	out.Move = move
	return out
}

func failedRow(out dto.RepeatPaperRowResult, err error) dto.RepeatPaperRowResult {
	out.Outcome = dto.RepeatPaperFailed
	out.Error = appErrors.FromError(err).Message
	return out
}

func (s *RepeatPaperService) loadSheet(ctx context.Context, batch string) (*models.DateSheet, error) {
	sheet, err := s.store.FindByBatch(ctx, batch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no date sheet for batch %s", batch))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load date sheet")
	}
	if sheet.Schedule == nil {
		sheet.Schedule = models.Schedule{}
	}
	return sheet, nil
}
