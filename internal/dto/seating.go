package dto

import "github.com/noah-isme/exam-seating-api/internal/models"

// StudentInput is one roster row supplied by the caller.
type StudentInput struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Gender     string `json:"gender" validate:"required"`
	Batch      string `json:"batch" validate:"required"`
	CourseName string `json:"courseName"`
}

// GenerateSeatingRequest builds seating for one exam date from a roster.
type GenerateSeatingRequest struct {
	Date     string         `json:"date" validate:"required,datetime=2006-01-02"`
	Students []StudentInput `json:"students" validate:"required,min=1,dive"`
	Seed     *int64         `json:"seed"`
}

// EditSeatRequest overwrites or clears a seat. A nil Student clears it.
type EditSeatRequest struct {
	Gender  string        `json:"gender" validate:"required,oneof=MALE FEMALE"`
	RoomNo  int           `json:"roomNo" validate:"required"`
	Row     int           `json:"row" validate:"min=0"`
	Column  int           `json:"column" validate:"min=0"`
	Seat    int           `json:"seat" validate:"min=0,max=1"`
	Student *StudentInput `json:"student"`
}

// SeatingPlanResponse returns a plan with its per-room summaries.
type SeatingPlanResponse struct {
	Plan    *models.SeatingPlan `json:"plan"`
	Reports []models.RoomReport `json:"reports"`
	Summary SeatingSummary      `json:"summary"`
}

// SeatingSummary counts the outcome of a plan.
type SeatingSummary struct {
	Eligible   int `json:"eligible"`
	Seated     int `json:"seated"`
	Unseated   int `json:"unseated"`
	Violations int `json:"violations"`
}
