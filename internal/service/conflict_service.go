package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

// DetectConflicts compares every unordered pair of date sheets in input order.
// Only batches of the same year and different departments are compared;
// malformed batch identifiers are skipped.
func DetectConflicts(sheets []models.DateSheet) []models.ScheduleConflict {
	var conflicts []models.ScheduleConflict
	for i := 0; i < len(sheets); i++ {
		for j := i + 1; j < len(sheets); j++ {
			conflicts = append(conflicts, ConflictsBetween(sheets[i], sheets[j])...)
		}
	}
	return conflicts
}

// ConflictsBetween lists the dates, ascending, on which a and b sit the same exam.
// Labels are compared as whole strings, so "DLD/OOP" only collides with "DLD/OOP".
func ConflictsBetween(a, b models.DateSheet) []models.ScheduleConflict {
	if a.Batch == b.Batch {
		return nil
	}
	segA, err := models.ParseBatch(a.Batch)
	if err != nil {
		return nil
	}
	segB, err := models.ParseBatch(b.Batch)
	if err != nil {
		return nil
	}
	if segA.Year != segB.Year || segA.Department == segB.Department {
		return nil
	}

	var conflicts []models.ScheduleConflict
	for _, date := range a.Schedule.Dates() {
		labelA, ok := a.Schedule.ExamOn(date)
		if !ok {
			continue
		}
		labelB, ok := b.Schedule.ExamOn(date)
		if !ok || labelA != labelB {
			continue
		}
		conflicts = append(conflicts, models.ScheduleConflict{
			BatchA:  a.Batch,
			BatchB:  b.Batch,
			Date:    date,
			Subject: labelA,
		})
	}
	return conflicts
}

type dateSheetLister interface {
	List(ctx context.Context) ([]models.DateSheet, error)
}

// ConflictService runs conflict detection over the stored date sheets.
type ConflictService struct {
	sheets  dateSheetLister
	metrics *MetricsService
	logger  *zap.Logger
}

// NewConflictService wires the conflict detector to the date sheet store.
func NewConflictService(sheets dateSheetLister, metrics *MetricsService, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{sheets: sheets, metrics: metrics, logger: logger}
}

// Detect loads every date sheet and reports the conflicts found.
func (s *ConflictService) Detect(ctx context.Context) (*dto.ConflictReport, error) {
	sheets, err := s.sheets.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load date sheets")
	}

	conflicts := DetectConflicts(sheets)
	report := &dto.ConflictReport{
		Total:     len(conflicts),
		Conflicts: make([]dto.ConflictResponse, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		s.logger.Warn("schedule conflict detected",
			zap.String("batch_a", c.BatchA),
			zap.String("batch_b", c.BatchB),
			zap.String("date", c.Date),
			zap.String("subject", c.Subject),
		)
		report.Conflicts = append(report.Conflicts, dto.ConflictResponse{
			BatchA:  c.BatchA,
			BatchB:  c.BatchB,
			Date:    c.Date,
			Subject: c.Subject,
		})
	}
	s.metrics.RecordConflicts(len(conflicts))
	return report, nil
}
