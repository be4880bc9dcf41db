package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// RoomRepository persists the ordered examination hall inventory.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs the repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns the rooms in pool order.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT room_no, desks, desk_columns, position, updated_at FROM exam_rooms ORDER BY position, room_no`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ReplaceAll swaps the inventory inside one transaction.
func (r *RoomRepository) ReplaceAll(ctx context.Context, rooms []models.Room) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin room inventory tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM exam_rooms`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear rooms: %w", err)
	}
	const query = `INSERT INTO exam_rooms (room_no, desks, desk_columns, position, updated_at)
VALUES (:room_no, :desks, :desk_columns, :position, :updated_at)`
	now := time.Now().UTC()
	for i := range rooms {
		rooms[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, rooms[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert room %d: %w", rooms[i].RoomNo, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit room inventory tx: %w", err)
	}
	return nil
}
