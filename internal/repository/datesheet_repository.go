package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// dateSheetRow is the storage shape of a date sheet; the schedule lives in a JSONB column.
type dateSheetRow struct {
	ID        string         `db:"id"`
	Batch     string         `db:"batch"`
	Schedule  types.JSONText `db:"schedule"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (row dateSheetRow) toModel() (models.DateSheet, error) {
	schedule := models.Schedule{}
	if len(row.Schedule) > 0 {
		if err := row.Schedule.Unmarshal(&schedule); err != nil {
			return models.DateSheet{}, fmt.Errorf("decode schedule of %s: %w", row.Batch, err)
		}
	}
	return models.DateSheet{
		ID:        row.ID,
		Batch:     row.Batch,
		Schedule:  schedule,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func encodeSchedule(schedule models.Schedule) (types.JSONText, error) {
	if schedule == nil {
		schedule = models.Schedule{}
	}
	raw, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return types.JSONText(raw), nil
}

// DateSheetRepository persists batch exam calendars.
type DateSheetRepository struct {
	db *sqlx.DB
}

// NewDateSheetRepository constructs the repository.
func NewDateSheetRepository(db *sqlx.DB) *DateSheetRepository {
	return &DateSheetRepository{db: db}
}

const dateSheetColumns = `id, batch, schedule, created_at, updated_at`

// List returns every date sheet ordered by batch.
func (r *DateSheetRepository) List(ctx context.Context) ([]models.DateSheet, error) {
	var rows []dateSheetRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+dateSheetColumns+` FROM datesheets ORDER BY batch`); err != nil {
		return nil, fmt.Errorf("list date sheets: %w", err)
	}
	sheets := make([]models.DateSheet, 0, len(rows))
	for _, row := range rows {
		sheet, err := row.toModel()
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// FindByBatch returns the date sheet of batch or sql.ErrNoRows.
func (r *DateSheetRepository) FindByBatch(ctx context.Context, batch string) (*models.DateSheet, error) {
	return r.findOne(ctx, `SELECT `+dateSheetColumns+` FROM datesheets WHERE batch = $1`, batch)
}

// FindByID returns the date sheet with id or sql.ErrNoRows.
func (r *DateSheetRepository) FindByID(ctx context.Context, id string) (*models.DateSheet, error) {
	return r.findOne(ctx, `SELECT `+dateSheetColumns+` FROM datesheets WHERE id = $1`, id)
}

func (r *DateSheetRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.DateSheet, error) {
	var row dateSheetRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, err
	}
	sheet, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// Upsert inserts the sheet or replaces the schedule of the existing batch row.
// ID and timestamps are filled from the stored row.
func (r *DateSheetRepository) Upsert(ctx context.Context, sheet *models.DateSheet) error {
	payload, err := encodeSchedule(sheet.Schedule)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	const query = `INSERT INTO datesheets (id, batch, schedule, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (batch)
DO UPDATE SET schedule = EXCLUDED.schedule, updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at`
	if err := r.db.QueryRowxContext(ctx, query, uuid.NewString(), sheet.Batch, payload, now).
		Scan(&sheet.ID, &sheet.CreatedAt, &sheet.UpdatedAt); err != nil {
		return fmt.Errorf("upsert date sheet %s: %w", sheet.Batch, err)
	}
	return nil
}

// UpdateSchedule replaces the schedule of the row with id.
func (r *DateSheetRepository) UpdateSchedule(ctx context.Context, id string, schedule models.Schedule) error {
	return r.updateSchedule(ctx, `UPDATE datesheets SET schedule = $1, updated_at = $2 WHERE id = $3`, id, schedule)
}

// SaveSchedule replaces the schedule of batch.
func (r *DateSheetRepository) SaveSchedule(ctx context.Context, batch string, schedule models.Schedule) error {
	return r.updateSchedule(ctx, `UPDATE datesheets SET schedule = $1, updated_at = $2 WHERE batch = $3`, batch, schedule)
}

func (r *DateSheetRepository) updateSchedule(ctx context.Context, query, key string, schedule models.Schedule) error {
	payload, err := encodeSchedule(schedule)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, payload, time.Now().UTC(), key)
	if err != nil {
		return fmt.Errorf("update schedule %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update schedule %s: %w", key, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
