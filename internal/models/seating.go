package models

import "time"

// RoomAllocation is the layout produced for one room by one allocation run.
type RoomAllocation struct {
	Room   Room    `json:"room"`
	Gender Gender  `json:"gender"`
	Layout *Layout `json:"layout"`
}

// SeatViolation flags two neighbouring seats held by the same batch.
type SeatViolation struct {
	RoomNo int     `json:"room_no"`
	Gender Gender  `json:"gender"`
	Batch  string  `json:"batch"`
	First  SeatRef `json:"first"`
	Second SeatRef `json:"second"`
}

// RoomReport summarises the occupancy of one allocated room.
type RoomReport struct {
	RoomNo           int            `json:"room_no"`
	Gender           Gender         `json:"gender"`
	Capacity         int            `json:"capacity"`
	Seated           int            `json:"seated"`
	BatchCounts      map[string]int `json:"batch_counts"`
	DepartmentCounts map[string]int `json:"department_counts"`
}

// SeatingPlan groups the layouts generated for one exam date.
type SeatingPlan struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Seed        int64            `json:"seed"`
	Male        []RoomAllocation `json:"male"`
	Female      []RoomAllocation `json:"female"`
	Unseated    []Student        `json:"unseated"`
	Violations  []SeatViolation  `json:"violations"`
	GeneratedAt time.Time        `json:"generated_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Allocations returns the room list for gender.
func (p *SeatingPlan) Allocations(gender Gender) []RoomAllocation {
	if gender == GenderFemale {
		return p.Female
	}
	return p.Male
}

// FindAllocation locates the allocation of roomNo within the gender's pool.
func (p *SeatingPlan) FindAllocation(gender Gender, roomNo int) (*RoomAllocation, bool) {
	list := p.Allocations(gender)
	for i := range list {
		if list[i].Room.RoomNo == roomNo {
			return &list[i], true
		}
	}
	return nil, false
}

// SeatedCount totals occupied seats across both pools.
func (p *SeatingPlan) SeatedCount() int {
	total := 0
	for _, alloc := range p.Male {
		total += alloc.Layout.Occupied()
	}
	for _, alloc := range p.Female {
		total += alloc.Layout.Occupied()
	}
	return total
}

// Clone deep-copies the plan including every layout.
func (p *SeatingPlan) Clone() *SeatingPlan {
	out := *p
	out.Male = cloneAllocations(p.Male)
	out.Female = cloneAllocations(p.Female)
	out.Unseated = append([]Student(nil), p.Unseated...)
	out.Violations = append([]SeatViolation(nil), p.Violations...)
	return &out
}

func cloneAllocations(in []RoomAllocation) []RoomAllocation {
	if in == nil {
		return nil
	}
	out := make([]RoomAllocation, len(in))
	for i, alloc := range in {
		out[i] = alloc
		if alloc.Layout != nil {
			out[i].Layout = alloc.Layout.Clone()
		}
	}
	return out
}
