package models

import (
	"encoding/json"
	"fmt"
)

// SeatRef addresses one seat inside a room layout.
type SeatRef struct {
	Row    int `json:"row"`
	Column int `json:"column"`
	Seat   int `json:"seat"`
}

// SeatedStudent pairs an occupant with its seat.
type SeatedStudent struct {
	Ref     SeatRef `json:"ref"`
	Student Student `json:"student"`
}

// Layout is the seat occupancy grid of one room, indexed [row][column][seat].
type Layout struct {
	rows    int
	columns int
	seats   [][][SeatsPerDesk]*Student
}

// NewLayout builds an empty rows × columns grid.
func NewLayout(rows, columns int) *Layout {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	seats := make([][][SeatsPerDesk]*Student, rows)
	for r := range seats {
		seats[r] = make([][SeatsPerDesk]*Student, columns)
	}
	return &Layout{rows: rows, columns: columns, seats: seats}
}

// NewLayoutForRoom builds an empty grid matching the room geometry.
func NewLayoutForRoom(room Room) *Layout {
	return NewLayout(room.Rows(), room.Columns)
}

// Rows returns the number of desk rows.
func (l *Layout) Rows() int { return l.rows }

// Columns returns the number of desks per row.
func (l *Layout) Columns() int { return l.columns }

// InBounds reports whether ref addresses a seat of this layout.
func (l *Layout) InBounds(ref SeatRef) bool {
	return ref.Row >= 0 && ref.Row < l.rows &&
		ref.Column >= 0 && ref.Column < l.columns &&
		ref.Seat >= 0 && ref.Seat < SeatsPerDesk
}

// At returns the occupant of ref; out-of-bounds seats read as empty.
func (l *Layout) At(ref SeatRef) *Student {
	if !l.InBounds(ref) {
		return nil
	}
	return l.seats[ref.Row][ref.Column][ref.Seat]
}

// IsEmpty reports whether ref is a vacant seat inside the grid.
func (l *Layout) IsEmpty(ref SeatRef) bool {
	return l.InBounds(ref) && l.seats[ref.Row][ref.Column][ref.Seat] == nil
}

// Set overwrites the seat with a copy of student. No seating constraint is checked.
func (l *Layout) Set(ref SeatRef, student Student) error {
	if !l.InBounds(ref) {
		return fmt.Errorf("seat %d/%d/%d outside %dx%d layout", ref.Row, ref.Column, ref.Seat, l.rows, l.columns)
	}
	occupant := student
	l.seats[ref.Row][ref.Column][ref.Seat] = &occupant
	return nil
}

// Clear vacates the seat.
func (l *Layout) Clear(ref SeatRef) error {
	if !l.InBounds(ref) {
		return fmt.Errorf("seat %d/%d/%d outside %dx%d layout", ref.Row, ref.Column, ref.Seat, l.rows, l.columns)
	}
	l.seats[ref.Row][ref.Column][ref.Seat] = nil
	return nil
}

// Occupied counts the filled seats.
func (l *Layout) Occupied() int {
	count := 0
	for _, row := range l.seats {
		for _, desk := range row {
			for _, student := range desk {
				if student != nil {
					count++
				}
			}
		}
	}
	return count
}

// Seated lists occupants in row, column, seat order.
func (l *Layout) Seated() []SeatedStudent {
	result := make([]SeatedStudent, 0, l.Occupied())
	for r, row := range l.seats {
		for c, desk := range row {
			for s, student := range desk {
				if student == nil {
					continue
				}
				result = append(result, SeatedStudent{
					Ref:     SeatRef{Row: r, Column: c, Seat: s},
					Student: *student,
				})
			}
		}
	}
	return result
}

// Clone deep-copies the grid.
func (l *Layout) Clone() *Layout {
	out := NewLayout(l.rows, l.columns)
	for r, row := range l.seats {
		for c, desk := range row {
			for s, student := range desk {
				if student != nil {
					copied := *student
					out.seats[r][c][s] = &copied
				}
			}
		}
	}
	return out
}

// MarshalJSON encodes the grid as nested arrays with null for vacant seats.
func (l *Layout) MarshalJSON() ([]byte, error) {
	grid := make([][][]*Student, l.rows)
	for r, row := range l.seats {
		grid[r] = make([][]*Student, l.columns)
		for c, desk := range row {
			grid[r][c] = []*Student{desk[0], desk[1]}
		}
	}
	return json.Marshal(grid)
}

// UnmarshalJSON decodes the nested array form produced by MarshalJSON.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var grid [][][]*Student
	if err := json.Unmarshal(data, &grid); err != nil {
		return err
	}
	columns := 0
	if len(grid) > 0 {
		columns = len(grid[0])
	}
	decoded := NewLayout(len(grid), columns)
	for r, row := range grid {
		if len(row) != columns {
			return fmt.Errorf("layout row %d has %d desks, expected %d", r, len(row), columns)
		}
		for c, desk := range row {
			if len(desk) != SeatsPerDesk {
				return fmt.Errorf("desk %d/%d has %d seats, expected %d", r, c, len(desk), SeatsPerDesk)
			}
			decoded.seats[r][c] = [SeatsPerDesk]*Student{desk[0], desk[1]}
		}
	}
	*l = *decoded
	return nil
}
