package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type roomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

// SeatingConfig tunes plan generation.
type SeatingConfig struct {
	MalePoolSize   int
	StrictCapacity bool
}

// SeatingService generates, stores and edits seating plans.
type SeatingService struct {
	sheets    dateSheetLister
	rooms     roomLister
	store     PlanStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       SeatingConfig
	editMu    sync.Mutex
	now       func() time.Time
}

// NewSeatingService wires plan generation dependencies.
func NewSeatingService(
	sheets dateSheetLister,
	rooms roomLister,
	store PlanStore,
	validate *validator.Validate,
	metrics *MetricsService,
	logger *zap.Logger,
	cfg SeatingConfig,
) *SeatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryPlanStore(0)
	}
	return &SeatingService{
		sheets:    sheets,
		rooms:     rooms,
		store:     store,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate seats the students sitting an exam on req.Date across the room inventory.
func (s *SeatingService) Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*dto.SeatingPlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seating request")
	}
	roster := make([]models.Student, 0, len(req.Students))
	for i, in := range req.Students {
		student, err := toStudent(in)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid student at index %d", i))
		}
		roster = append(roster, student)
	}

	sheets, err := s.sheets.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load date sheets")
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	if len(rooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room inventory is empty")
	}

	seed := s.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	eligible := EligibleStudents(roster, sheets, req.Date)
	pools := SplitRoomPools(rooms, s.cfg.MalePoolSize)

	genders := [2]models.Gender{models.GenderMale, models.GenderFemale}
	var results [2]AllocationResult
	var wg sync.WaitGroup
	for i, gender := range genders {
		wg.Add(1)
		go func(i int, gender models.Gender) {
			defer wg.Done()
			allocator := NewSeatAllocator(rand.NewSource(seed + int64(i)))
			results[i] = allocator.Allocate(eligible.For(gender), pools.Pool(gender))
		}(i, gender)
	}
	wg.Wait()

	now := s.now().UTC()
	plan := &models.SeatingPlan{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Seed:        seed,
		GeneratedAt: now,
		UpdatedAt:   now,
	}
	for i, gender := range genders {
		allocs := results[i].Rooms
		for j := range allocs {
			allocs[j].Gender = gender
		}
		if gender == models.GenderFemale {
			plan.Female = allocs
		} else {
			plan.Male = allocs
		}
		plan.Unseated = append(plan.Unseated, results[i].Unseated...)
		seated := 0
		for _, alloc := range allocs {
			seated += alloc.Layout.Occupied()
		}
		s.metrics.RecordSeating(gender, seated, len(results[i].Unseated))
	}
	plan.Violations = collectViolations(plan)

	if len(plan.Unseated) > 0 {
		s.logger.Warn("room pool exhausted",
			zap.String("date", req.Date),
			zap.Int("unseated", len(plan.Unseated)),
			zap.Int("eligible", eligible.Total()),
		)
		if s.cfg.StrictCapacity {
			return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, fmt.Sprintf("%d of %d students could not be seated", len(plan.Unseated), eligible.Total()))
		}
	}

	if err := s.store.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.metrics.RecordPlan(len(plan.Violations))
	s.logger.Info("seating plan generated",
		zap.String("plan_id", plan.ID),
		zap.String("date", plan.Date),
		zap.Int64("seed", seed),
		zap.Int("seated", plan.SeatedCount()),
	)
	return buildPlanResponse(plan), nil
}

// Get returns a stored plan.
func (s *SeatingService) Get(ctx context.Context, id string) (*dto.SeatingPlanResponse, error) {
	plan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildPlanResponse(plan), nil
}

// Plan returns the stored plan without reports.
func (s *SeatingService) Plan(ctx context.Context, id string) (*models.SeatingPlan, error) {
	return s.store.Get(ctx, id)
}

// Reports recomputes the per-room summaries of a stored plan.
func (s *SeatingService) Reports(ctx context.Context, id string) ([]models.RoomReport, error) {
	plan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildPlanReports(plan), nil
}

// EditSeat overwrites or clears one seat without checking the separation rule.
// A student already seated elsewhere in the plan is moved, and a displaced or
// cleared occupant is returned to Unseated. Violations are recomputed so the
// caller can see what the edit introduced.
func (s *SeatingService) EditSeat(ctx context.Context, id string, req dto.EditSeatRequest) (*dto.SeatingPlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seat edit")
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()

	plan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	alloc, ok := plan.FindAllocation(models.Gender(req.Gender), req.RoomNo)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %d is not in the %s pool of this plan", req.RoomNo, strings.ToLower(req.Gender)))
	}
	ref := models.SeatRef{Row: req.Row, Column: req.Column, Seat: req.Seat}
	if !alloc.Layout.InBounds(ref) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("seat %d/%d/%d is outside room %d", ref.Row, ref.Column, ref.Seat, req.RoomNo))
	}

	var displaced *models.Student
	if prev := alloc.Layout.At(ref); prev != nil {
		occupant := *prev
		displaced = &occupant
	}

	if req.Student == nil {
		_ = alloc.Layout.Clear(ref)
	} else {
		student, err := toStudent(*req.Student)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student")
		}
		vacate(plan, student.ID)
		_ = alloc.Layout.Set(ref, student)
		plan.Unseated = removeStudent(plan.Unseated, student.ID)
	}
	// A displaced occupant is never dropped: it goes back to Unseated.
	if displaced != nil && !isSeated(plan, displaced.ID) && !containsStudent(plan.Unseated, displaced.ID) {
		plan.Unseated = append(plan.Unseated, *displaced)
	}
	plan.Violations = collectViolations(plan)
	plan.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Info("seat edited",
		zap.String("plan_id", plan.ID),
		zap.Int("room_no", req.RoomNo),
		zap.Int("row", ref.Row),
		zap.Int("column", ref.Column),
		zap.Int("seat", ref.Seat),
		zap.Bool("cleared", req.Student == nil),
		zap.Bool("displaced", displaced != nil),
		zap.Int("violations", len(plan.Violations)),
	)
	return buildPlanResponse(plan), nil
}

func buildPlanResponse(plan *models.SeatingPlan) *dto.SeatingPlanResponse {
	seated := plan.SeatedCount()
	return &dto.SeatingPlanResponse{
		Plan:    plan,
		Reports: BuildPlanReports(plan),
		Summary: dto.SeatingSummary{
			Eligible:   seated + len(plan.Unseated),
			Seated:     seated,
			Unseated:   len(plan.Unseated),
			Violations: len(plan.Violations),
		},
	}
}

func collectViolations(plan *models.SeatingPlan) []models.SeatViolation {
	var out []models.SeatViolation
	for _, alloc := range plan.Male {
		out = append(out, FindViolations(alloc)...)
	}
	for _, alloc := range plan.Female {
		out = append(out, FindViolations(alloc)...)
	}
	return out
}

// vacate clears every seat of the plan held by id, so a moved student is seated once.
func vacate(plan *models.SeatingPlan, id string) {
	for _, allocs := range [][]models.RoomAllocation{plan.Male, plan.Female} {
		for _, alloc := range allocs {
			if alloc.Layout == nil {
				continue
			}
			for _, occupant := range alloc.Layout.Seated() {
				if occupant.Student.ID == id {
					_ = alloc.Layout.Clear(occupant.Ref)
				}
			}
		}
	}
}

func isSeated(plan *models.SeatingPlan, id string) bool {
	for _, allocs := range [][]models.RoomAllocation{plan.Male, plan.Female} {
		for _, alloc := range allocs {
			if alloc.Layout == nil {
				continue
			}
			for _, occupant := range alloc.Layout.Seated() {
				if occupant.Student.ID == id {
					return true
				}
			}
		}
	}
	return false
}

func containsStudent(list []models.Student, id string) bool {
	for _, student := range list {
		if student.ID == id {
			return true
		}
	}
	return false
}

func removeStudent(list []models.Student, id string) []models.Student {
	out := list[:0]
	for _, student := range list {
		if student.ID != id {
			out = append(out, student)
		}
	}
	return out
}

func toStudent(in dto.StudentInput) (models.Student, error) {
	gender, err := models.ParseGender(in.Gender)
	if err != nil {
		return models.Student{}, err
	}
	return models.Student{
		ID:         strings.TrimSpace(in.ID),
		Name:       strings.TrimSpace(in.Name),
		Gender:     gender,
		Batch:      strings.TrimSpace(in.Batch),
		CourseName: strings.TrimSpace(in.CourseName),
	}, nil
}
