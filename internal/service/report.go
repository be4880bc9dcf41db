package service

import (
	"strings"

	"github.com/noah-isme/exam-seating-api/internal/models"
)

// Department buckets used by room reports.
const (
	DepartmentComputerScience = "Computer Science Department"
	DepartmentCivil           = "Civil Engineering Department"
	DepartmentOther           = "Other Departments"
)

// ClassifyDepartment maps a batch to its reporting department by the department segment code.
func ClassifyDepartment(batch string) string {
	segments, err := models.ParseBatch(batch)
	if err != nil {
		return DepartmentOther
	}
	code := strings.ToUpper(segments.Department)
	switch {
	case strings.Contains(code, "AI"), strings.Contains(code, "CS"):
		return DepartmentComputerScience
	case strings.Contains(code, "CE"):
		return DepartmentCivil
	default:
		return DepartmentOther
	}
}

// BuildRoomReport counts the seated students of alloc per batch and per department.
func BuildRoomReport(alloc models.RoomAllocation) models.RoomReport {
	report := models.RoomReport{
		RoomNo:           alloc.Room.RoomNo,
		Gender:           alloc.Gender,
		Capacity:         alloc.Room.Capacity(),
		BatchCounts:      make(map[string]int),
		DepartmentCounts: make(map[string]int),
	}
	if alloc.Layout == nil {
		return report
	}
	for _, occupant := range alloc.Layout.Seated() {
		report.Seated++
		report.BatchCounts[occupant.Student.Batch]++
		report.DepartmentCounts[ClassifyDepartment(occupant.Student.Batch)]++
	}
	return report
}

// BuildPlanReports reports every room of plan, male pool first.
func BuildPlanReports(plan *models.SeatingPlan) []models.RoomReport {
	reports := make([]models.RoomReport, 0, len(plan.Male)+len(plan.Female))
	for _, alloc := range plan.Male {
		reports = append(reports, BuildRoomReport(alloc))
	}
	for _, alloc := range plan.Female {
		reports = append(reports, BuildRoomReport(alloc))
	}
	return reports
}
