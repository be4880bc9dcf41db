package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS datesheets (
		id UUID PRIMARY KEY,
		batch VARCHAR(128) NOT NULL UNIQUE,
		schedule JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS exam_rooms (
		room_no INTEGER PRIMARY KEY,
		desks INTEGER NOT NULL CHECK (desks > 0),
		desk_columns INTEGER NOT NULL CHECK (desk_columns > 0),
		position INTEGER NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exam_rooms_position ON exam_rooms(position)`,
}

// Default hall inventory, seeded only into an empty exam_rooms table.
const seedRooms = `INSERT INTO exam_rooms (room_no, desks, desk_columns, position)
SELECT v.room_no, v.desks, v.desk_columns, v.position
FROM (VALUES
	(202, 20, 4, 0),
	(203, 24, 4, 1),
	(207, 24, 4, 2),
	(302, 27, 4, 3),
	(307, 23, 4, 4),
	(313, 21, 4, 5),
	(309, 28, 4, 6),
	(311, 28, 4, 7)
) AS v(room_no, desks, desk_columns, position)
WHERE NOT EXISTS (SELECT 1 FROM exam_rooms)`

// EnsureSchema creates the tables used by the API and seeds the default rooms.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, seedRooms); err != nil {
		return fmt.Errorf("seed exam rooms: %w", err)
	}
	return nil
}
