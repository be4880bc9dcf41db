package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

func TestClassifyDepartment(t *testing.T) {
	cases := map[string]string{
		"NBC/BSCS/2022F": DepartmentComputerScience,
		"NBC/bsai/23":    DepartmentComputerScience,
		"A/CE/22":        DepartmentCivil,
		"NBC/BSCE/22":    DepartmentCivil,
		"A/EE/22":        DepartmentOther,
		"malformed":      DepartmentOther,
	}
	for batch, want := range cases {
		assert.Equal(t, want, ClassifyDepartment(batch), batch)
	}
}

func TestBuildRoomReport(t *testing.T) {
	room := models.Room{RoomNo: 202, Desks: 4, Columns: 2}
	layout := models.NewLayoutForRoom(room)
	require.NoError(t, layout.Set(models.SeatRef{Row: 0, Column: 0, Seat: 0}, models.Student{ID: "1", Batch: "A/CS/22"}))
	require.NoError(t, layout.Set(models.SeatRef{Row: 1, Column: 1, Seat: 1}, models.Student{ID: "2", Batch: "A/CS/22"}))
	require.NoError(t, layout.Set(models.SeatRef{Row: 0, Column: 1, Seat: 1}, models.Student{ID: "3", Batch: "A/CE/22"}))
	require.NoError(t, layout.Set(models.SeatRef{Row: 1, Column: 0, Seat: 0}, models.Student{ID: "4", Batch: "A/AI/23"}))

	report := BuildRoomReport(models.RoomAllocation{Room: room, Gender: models.GenderMale, Layout: layout})

	assert.Equal(t, 202, report.RoomNo)
	assert.Equal(t, models.GenderMale, report.Gender)
	assert.Equal(t, 8, report.Capacity)
	assert.Equal(t, 4, report.Seated)
	assert.Equal(t, map[string]int{"A/CS/22": 2, "A/CE/22": 1, "A/AI/23": 1}, report.BatchCounts)
	assert.Equal(t, map[string]int{DepartmentComputerScience: 3, DepartmentCivil: 1}, report.DepartmentCounts)
}

func TestBuildRoomReportEmptyLayout(t *testing.T) {
	report := BuildRoomReport(models.RoomAllocation{Room: models.Room{RoomNo: 1, Desks: 2, Columns: 2}})
	assert.Zero(t, report.Seated)
	assert.Empty(t, report.BatchCounts)
}
