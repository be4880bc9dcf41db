package dto

import "time"

// Export kinds and formats.
const (
	ExportKindAttendance   = "ATTENDANCE"
	ExportKindSeatingChart = "SEATING_CHART"
	ExportFormatCSV        = "CSV"
	ExportFormatPDF        = "PDF"
)

// ExportRequest selects a room of a plan and the document to render.
type ExportRequest struct {
	Gender string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	RoomNo int    `json:"roomNo" validate:"required"`
	Kind   string `json:"kind" validate:"required,oneof=ATTENDANCE SEATING_CHART"`
	Format string `json:"format" validate:"required,oneof=CSV PDF"`
}

// ExportResult points at a rendered file.
type ExportResult struct {
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Token       string    `json:"token"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
