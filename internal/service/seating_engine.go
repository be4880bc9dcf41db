package service

import (
	"math/rand"
	"strings"
	"time"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// columnPairs lists the desk columns tried for batch-mate pairs, most preferred first.
var columnPairs = [][2]int{{1, 2}, {0, 1}, {2, 3}, {0, 3}}

// AllocationResult is the output of one Allocate call.
type AllocationResult struct {
	Rooms    []models.RoomAllocation
	Unseated []models.Student
}

// SeatAllocator places students into a room pool honouring batch separation.
// An allocator owns its random generator and must not be shared between goroutines.
type SeatAllocator struct {
	rng *rand.Rand
}

// NewSeatAllocator builds an allocator over src; nil seeds from the clock.
func NewSeatAllocator(src rand.Source) *SeatAllocator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &SeatAllocator{rng: rand.New(src)}
}

// Allocate fills the rooms of pool in order. Students that fit nowhere are
// returned in roster order instead of being raised as an error.
func (a *SeatAllocator) Allocate(roster []models.Student, pool []models.Room) AllocationResult {
	seated := make(map[string]struct{}, len(roster))
	rooms := make([]models.RoomAllocation, 0, len(pool))

	for _, room := range pool {
		layout := models.NewLayoutForRoom(room)
		for _, group := range a.shuffledGroups(roster, seated) {
			fillGroup(layout, group, seated)
		}
		rooms = append(rooms, models.RoomAllocation{Room: room, Layout: layout})
	}

	var unseated []models.Student
	reported := make(map[string]struct{})
	for _, student := range roster {
		if _, ok := seated[student.ID]; ok {
			continue
		}
		if _, ok := reported[student.ID]; ok {
			continue
		}
		reported[student.ID] = struct{}{}
		unseated = append(unseated, student)
	}

	return AllocationResult{Rooms: rooms, Unseated: unseated}
}

// shuffledGroups buckets the still unseated students by batch in first-appearance order.
func (a *SeatAllocator) shuffledGroups(roster []models.Student, seated map[string]struct{}) [][]models.Student {
	index := make(map[string]int)
	queued := make(map[string]struct{})
	var groups [][]models.Student
	for _, student := range roster {
		if _, ok := seated[student.ID]; ok {
			continue
		}
		if _, ok := queued[student.ID]; ok {
			continue
		}
		queued[student.ID] = struct{}{}
		pos, ok := index[student.Batch]
		if !ok {
			pos = len(groups)
			index[student.Batch] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], student)
	}
	for _, group := range groups {
		a.rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}
	return groups
}

func fillGroup(layout *models.Layout, group []models.Student, seated map[string]struct{}) {
	for i, student := range group {
		if _, ok := seated[student.ID]; ok {
			continue
		}
		if placePair(layout, group, i, seated) {
			continue
		}
		placeSingle(layout, student, seated)
	}
}

// placePair seats group[i] and its mirror on the same row and seat index of a column pair.
// The mirror's seat is re-checked once group[i] is placed, and adjacent columns are
// neighbours, so only the (0,3) pair can succeed; (1,2), (0,1) and (2,3) are tried
// first but always fall through to single placement.
func placePair(layout *models.Layout, group []models.Student, i int, seated map[string]struct{}) bool {
	mirror, ok := findMirror(group, i, seated)
	if !ok {
		return false
	}
	student := group[i]

	for _, pair := range columnPairs {
		left, right := pair[0], pair[1]
		if right >= layout.Columns() {
			continue
		}
		for row := 0; row < layout.Rows(); row++ {
			for seat := 0; seat < models.SeatsPerDesk; seat++ {
				first := models.SeatRef{Row: row, Column: left, Seat: seat}
				second := models.SeatRef{Row: row, Column: right, Seat: seat}
				if !layout.IsEmpty(first) || !layout.IsEmpty(second) {
					continue
				}
				if !CanSit(layout, first, student.Batch) || !CanSit(layout, second, student.Batch) {
					continue
				}
				_ = layout.Set(first, student)
				if !CanSit(layout, second, mirror.Batch) {
					_ = layout.Clear(first)
					continue
				}
				_ = layout.Set(second, mirror)
				seated[student.ID] = struct{}{}
				seated[mirror.ID] = struct{}{}
				return true
			}
		}
	}
	return false
}

func findMirror(group []models.Student, i int, seated map[string]struct{}) (models.Student, bool) {
	for j, candidate := range group {
		if j == i || candidate.ID == group[i].ID {
			continue
		}
		if _, ok := seated[candidate.ID]; ok {
			continue
		}
		return candidate, true
	}
	return models.Student{}, false
}

// placeSingle takes the first legal empty seat in row, column, seat order.
func placeSingle(layout *models.Layout, student models.Student, seated map[string]struct{}) bool {
	for row := 0; row < layout.Rows(); row++ {
		for col := 0; col < layout.Columns(); col++ {
			for seat := 0; seat < models.SeatsPerDesk; seat++ {
				ref := models.SeatRef{Row: row, Column: col, Seat: seat}
				if layout.IsEmpty(ref) && CanSit(layout, ref, student.Batch) {
					_ = layout.Set(ref, student)
					seated[student.ID] = struct{}{}
					return true
				}
			}
		}
	}
	return false
}

// CanSit reports whether no neighbour of ref is held by batch.
func CanSit(layout *models.Layout, ref models.SeatRef, batch string) bool {
	for _, n := range Neighbours(ref) {
		if occupant := layout.At(n); occupant != nil && occupant.Batch == batch {
			return false
		}
	}
	return true
}

// Neighbours lists the seats constrained by ref: the other seat of the desk,
// both seats of the desks to the left and right, and both seats of the four
// diagonal desks. The two lower diagonals go beyond the row-above rule on
// purpose: they make the relation symmetric, so a seat blocked from above is
// also blocked from below. Out-of-bounds refs are included and read as vacant.
func Neighbours(ref models.SeatRef) []models.SeatRef {
	out := make([]models.SeatRef, 0, 13)
	out = append(out, models.SeatRef{Row: ref.Row, Column: ref.Column, Seat: 1 - ref.Seat})
	offsets := [][2]int{{0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	for _, off := range offsets {
		for seat := 0; seat < models.SeatsPerDesk; seat++ {
			out = append(out, models.SeatRef{Row: ref.Row + off[0], Column: ref.Column + off[1], Seat: seat})
		}
	}
	return out
}

// FindViolations lists every neighbouring pair held by the same batch, each pair once.
func FindViolations(alloc models.RoomAllocation) []models.SeatViolation {
	if alloc.Layout == nil {
		return nil
	}
	var violations []models.SeatViolation
	for _, occupant := range alloc.Layout.Seated() {
		for _, n := range Neighbours(occupant.Ref) {
			if !seatBefore(occupant.Ref, n) {
				continue
			}
			other := alloc.Layout.At(n)
			if other == nil || other.Batch != occupant.Student.Batch {
				continue
			}
			violations = append(violations, models.SeatViolation{
				RoomNo: alloc.Room.RoomNo,
				Gender: alloc.Gender,
				Batch:  occupant.Student.Batch,
				First:  occupant.Ref,
				Second: n,
			})
		}
	}
	return violations
}

func seatBefore(a, b models.SeatRef) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	return a.Seat < b.Seat
}

// EligibleRoster is the roster of one exam date split by gender.
type EligibleRoster struct {
	Male   []models.Student
	Female []models.Student
}

// For returns the students of gender.
func (r EligibleRoster) For(gender models.Gender) []models.Student {
	if gender == models.GenderFemale {
		return r.Female
	}
	return r.Male
}

// Total counts both genders.
func (r EligibleRoster) Total() int {
	return len(r.Male) + len(r.Female)
}

// EligibleStudents keeps the students whose batch sits an exam on date and whose
// course label contains one of the subjects scheduled for it.
func EligibleStudents(roster []models.Student, sheets []models.DateSheet, date string) EligibleRoster {
	subjects := make(map[string][]string, len(sheets))
	for _, sheet := range sheets {
		if _, seen := subjects[sheet.Batch]; seen {
			continue
		}
		subjects[sheet.Batch] = sheet.Schedule.Subjects(date)
	}

	var out EligibleRoster
	for _, student := range roster {
		if !takesAny(student.CourseName, subjects[student.Batch]) {
			continue
		}
		switch student.Gender {
		case models.GenderMale:
			out.Male = append(out.Male, student)
		case models.GenderFemale:
			out.Female = append(out.Female, student)
		}
	}
	return out
}

func takesAny(course string, subjects []string) bool {
	for _, subject := range subjects {
		if strings.Contains(course, subject) {
			return true
		}
	}
	return false
}

// SplitRoomPools gives the first malePoolSize rooms to male students and the rest to female students.
func SplitRoomPools(rooms []models.Room, malePoolSize int) models.RoomPools {
	if malePoolSize < 0 {
		malePoolSize = 0
	}
	if malePoolSize > len(rooms) {
		malePoolSize = len(rooms)
	}
	pools := models.RoomPools{
		Male:   make([]models.Room, malePoolSize),
		Female: make([]models.Room, len(rooms)-malePoolSize),
	}
	copy(pools.Male, rooms[:malePoolSize])
	copy(pools.Female, rooms[malePoolSize:])
	return pools
}
