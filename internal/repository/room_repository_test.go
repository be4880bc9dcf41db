package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func TestRoomRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"room_no", "desks", "desk_columns", "position", "updated_at"}).
		AddRow(202, 20, 4, 0, time.Now()).
		AddRow(203, 24, 4, 1, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM exam_rooms ORDER BY position")).WillReturnRows(rows)

	rooms, err := NewRoomRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 4, rooms[0].Columns)
	assert.Equal(t, 5, rooms[0].Rows())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_rooms")).WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_rooms")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_rooms")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rooms := []models.Room{{RoomNo: 1, Desks: 4, Columns: 4, Position: 0}, {RoomNo: 2, Desks: 8, Columns: 4, Position: 1}}
	require.NoError(t, NewRoomRepository(db).ReplaceAll(context.Background(), rooms))
	assert.False(t, rooms[0].UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryReplaceAllRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_rooms")).WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_rooms")).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := NewRoomRepository(db).ReplaceAll(context.Background(), []models.Room{{RoomNo: 1, Desks: 4, Columns: 4}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
