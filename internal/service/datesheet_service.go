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

const dateSheetListCacheKey = "datesheets:list"

type dateSheetRepository interface {
	List(ctx context.Context) ([]models.DateSheet, error)
	FindByBatch(ctx context.Context, batch string) (*models.DateSheet, error)
	FindByID(ctx context.Context, id string) (*models.DateSheet, error)
	Upsert(ctx context.Context, sheet *models.DateSheet) error
	UpdateSchedule(ctx context.Context, id string, schedule models.Schedule) error
	SaveSchedule(ctx context.Context, batch string, schedule models.Schedule) error
}

// DateSheetService administers batch exam calendars and caches the full listing.
type DateSheetService struct {
	repo      dateSheetRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewDateSheetService constructs the date sheet service. cache may be nil.
func NewDateSheetService(repo dateSheetRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *DateSheetService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DateSheetService{repo: repo, cache: cache, validator: validate, logger: logger, cacheTTL: 5 * time.Minute}
}

// List returns every date sheet ordered by batch.
func (s *DateSheetService) List(ctx context.Context) ([]models.DateSheet, error) {
	var cached []models.DateSheet
	if hit, _ := s.cache.Get(ctx, dateSheetListCacheKey, &cached); hit {
		return cached, nil
	}
	sheets, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list date sheets")
	}
	_ = s.cache.Set(ctx, dateSheetListCacheKey, sheets, s.cacheTTL)
	return sheets, nil
}

// GetByBatch returns the calendar of batch.
func (s *DateSheetService) GetByBatch(ctx context.Context, batch string) (*models.DateSheet, error) {
	sheet, err := s.repo.FindByBatch(ctx, strings.TrimSpace(batch))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "date sheet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load date sheet")
	}
	return sheet, nil
}

// Upsert creates the batch's date sheet or replaces its schedule.
func (s *DateSheetService) Upsert(ctx context.Context, req dto.UpsertDateSheetRequest) (*models.DateSheet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date sheet payload")
	}
	batch := strings.TrimSpace(req.Batch)
	if _, err := models.ParseBatch(batch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed batch identifier")
	}
	schedule, err := normalizeSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}

	sheet := &models.DateSheet{Batch: batch, Schedule: schedule}
	if err := s.repo.Upsert(ctx, sheet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save date sheet")
	}
	s.invalidate(ctx)
	s.logger.Info("date sheet saved", zap.String("batch", batch), zap.Int("dates", len(schedule)))
	return sheet, nil
}

// UpdateSchedule replaces the schedule of the date sheet with id.
func (s *DateSheetService) UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.DateSheet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	schedule, err := normalizeSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSchedule(ctx, id, schedule); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "date sheet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	s.invalidate(ctx)

	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload date sheet")
	}
	return sheet, nil
}

// FindByBatch exposes the raw repository lookup to the rescheduler.
func (s *DateSheetService) FindByBatch(ctx context.Context, batch string) (*models.DateSheet, error) {
	return s.repo.FindByBatch(ctx, batch)
}

// SaveSchedule writes a batch schedule and drops the cached listing.
func (s *DateSheetService) SaveSchedule(ctx context.Context, batch string, schedule models.Schedule) error {
	if err := s.repo.SaveSchedule(ctx, batch, schedule); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DateSheetService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dateSheetListCacheKey); err != nil {
		s.logger.Warn("date sheet cache not invalidated", zap.Error(err))
	}
}

func normalizeSchedule(in map[string]string) (models.Schedule, error) {
	out := make(models.Schedule, len(in))
	for rawDate, label := range in {
		date := strings.TrimSpace(rawDate)
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule date %q must be YYYY-MM-DD", rawDate))
		}
		if _, dup := out[date]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule date %s listed twice", date))
		}
		out[date] = strings.TrimSpace(label)
	}
	return out, nil
}
