package dto

// UpsertDateSheetRequest creates or replaces the calendar of a batch.
type UpsertDateSheetRequest struct {
	Batch    string            `json:"batch" validate:"required,max=128"`
	Schedule map[string]string `json:"schedule" validate:"required"`
}

// UpdateScheduleRequest replaces the calendar of an existing date sheet.
type UpdateScheduleRequest struct {
	Schedule map[string]string `json:"schedule" validate:"required"`
}

// ConflictReport lists detected cross-batch collisions.
type ConflictReport struct {
	Total     int                `json:"total"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ConflictResponse mirrors one detected collision.
type ConflictResponse struct {
	BatchA  string `json:"batchA"`
	BatchB  string `json:"batchB"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}
