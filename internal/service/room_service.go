package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	ReplaceAll(ctx context.Context, rooms []models.Room) error
}

// RoomService manages the ordered examination hall inventory.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger}
}

// List returns the rooms in pool order.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// Replace swaps the inventory; request order becomes pool order.
func (s *RoomService) Replace(ctx context.Context, req dto.ReplaceRoomsRequest) ([]models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room inventory")
	}
	seen := make(map[int]struct{}, len(req.Rooms))
	rooms := make([]models.Room, 0, len(req.Rooms))
	for i, in := range req.Rooms {
		if _, dup := seen[in.RoomNo]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("room %d listed twice", in.RoomNo))
		}
		seen[in.RoomNo] = struct{}{}
		rooms = append(rooms, models.Room{RoomNo: in.RoomNo, Desks: in.Desks, Columns: in.Columns, Position: i})
	}

	if err := s.repo.ReplaceAll(ctx, rooms); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace rooms")
	}
	s.logger.Info("room inventory replaced", zap.Int("rooms", len(rooms)))
	return rooms, nil
}
