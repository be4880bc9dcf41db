package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type roomRepoStub struct {
	rooms      []models.Room
	replaceErr error
}

func (r *roomRepoStub) List(context.Context) ([]models.Room, error) {
	return r.rooms, nil
}

func (r *roomRepoStub) ReplaceAll(_ context.Context, rooms []models.Room) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.rooms = append([]models.Room(nil), rooms...)
	return nil
}

func TestRoomServiceReplaceKeepsOrder(t *testing.T) {
	repo := &roomRepoStub{}
	svc := NewRoomService(repo, nil, nil)

	rooms, err := svc.Replace(context.Background(), dto.ReplaceRoomsRequest{Rooms: []dto.RoomInput{
		{RoomNo: 309, Desks: 28, Columns: 4},
		{RoomNo: 202, Desks: 20, Columns: 4},
	}})
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 309, rooms[0].RoomNo)
	assert.Equal(t, 0, rooms[0].Position)
	assert.Equal(t, 1, rooms[1].Position)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rooms, listed)
}

func TestRoomServiceReplaceValidation(t *testing.T) {
	svc := NewRoomService(&roomRepoStub{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Replace(ctx, dto.ReplaceRoomsRequest{})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Replace(ctx, dto.ReplaceRoomsRequest{Rooms: []dto.RoomInput{{RoomNo: 1, Desks: 0, Columns: 4}}})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Replace(ctx, dto.ReplaceRoomsRequest{Rooms: []dto.RoomInput{
		{RoomNo: 1, Desks: 4, Columns: 4},
		{RoomNo: 1, Desks: 8, Columns: 4},
	}})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRoomServiceReplaceRepositoryError(t *testing.T) {
	svc := NewRoomService(&roomRepoStub{replaceErr: errors.New("tx aborted")}, nil, nil)

	_, err := svc.Replace(context.Background(), dto.ReplaceRoomsRequest{Rooms: []dto.RoomInput{{RoomNo: 1, Desks: 4, Columns: 4}}})
	require.ErrorIs(t, err, appErrors.ErrInternal)
}
