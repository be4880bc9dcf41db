package models

import "time"

// SeatsPerDesk is fixed: every desk has a front and a back seat.
const SeatsPerDesk = 2

// Room describes the static geometry of an examination hall.
type Room struct {
	RoomNo    int       `db:"room_no" json:"room_no"`
	Desks     int       `db:"desks" json:"desks"`
	Columns   int       `db:"desk_columns" json:"columns"`
	Position  int       `db:"position" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// Rows returns ceil(desks / columns).
func (r Room) Rows() int {
	if r.Columns <= 0 || r.Desks <= 0 {
		return 0
	}
	return (r.Desks + r.Columns - 1) / r.Columns
}

// Capacity is the number of seats in the rows × columns grid.
func (r Room) Capacity() int {
	return r.Rows() * r.Columns * SeatsPerDesk
}

// RoomPools splits the inventory into gender-specific pools.
type RoomPools struct {
	Male   []Room
	Female []Room
}

// Pool returns the rooms reserved for gender.
func (p RoomPools) Pool(gender Gender) []Room {
	if gender == GenderFemale {
		return p.Female
	}
	return p.Male
}
