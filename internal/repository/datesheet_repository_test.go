package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var dateSheetCols = []string{"id", "batch", "schedule", "created_at", "updated_at"}

func TestDateSheetRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(dateSheetCols).
		AddRow("id-1", "A/CE/22", []byte(`{"2025-06-10":"Surveying"}`), now, now).
		AddRow("id-2", "A/CS/22", []byte(`{"2025-06-10":"DLD","2025-06-11":"Preparation Day"}`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM datesheets ORDER BY batch")).WillReturnRows(rows)

	sheets, err := NewDateSheetRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "A/CS/22", sheets[1].Batch)
	assert.Equal(t, models.PreparationDay, sheets[1].Schedule["2025-06-11"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDateSheetRepositoryListRejectsBadJSON(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM datesheets")).
		WillReturnRows(sqlmock.NewRows(dateSheetCols).AddRow("id-1", "A/CS/22", []byte(`["DLD"]`), now, now))

	_, err := NewDateSheetRepository(db).List(context.Background())
	require.Error(t, err)
}

func TestDateSheetRepositoryFindByBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDateSheetRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM datesheets WHERE batch = $1")).
		WithArgs("A/CS/22").
		WillReturnRows(sqlmock.NewRows(dateSheetCols).AddRow("id-2", "A/CS/22", []byte(`{"2025-06-10":"DLD"}`), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM datesheets WHERE batch = $1")).
		WithArgs("B/CS/22").
		WillReturnError(sql.ErrNoRows)

	sheet, err := repo.FindByBatch(context.Background(), "A/CS/22")
	require.NoError(t, err)
	assert.Equal(t, models.Schedule{"2025-06-10": "DLD"}, sheet.Schedule)

	_, err = repo.FindByBatch(context.Background(), "B/CS/22")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDateSheetRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO datesheets")).
		WithArgs(sqlmock.AnyArg(), "A/CS/22", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("existing-id", created, time.Now()))

	sheet := &models.DateSheet{Batch: "A/CS/22", Schedule: models.Schedule{"2025-06-10": "DLD"}}
	require.NoError(t, NewDateSheetRepository(db).Upsert(context.Background(), sheet))
	assert.Equal(t, "existing-id", sheet.ID)
	assert.Equal(t, created, sheet.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDateSheetRepositorySaveSchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDateSheetRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE datesheets SET schedule = $1, updated_at = $2 WHERE batch = $3")).
		WithArgs([]byte(`{"2025-06-14":"DLD"}`), sqlmock.AnyArg(), "A/CS/22").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $3")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SaveSchedule(context.Background(), "A/CS/22", models.Schedule{"2025-06-14": "DLD"}))
	err := repo.UpdateSchedule(context.Background(), "missing", models.Schedule{})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
