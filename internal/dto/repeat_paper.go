package dto

// Outcomes of a bulk repeat paper row.
const (
	RepeatPaperMoved   = "MOVED"
	RepeatPaperNoClash = "NO_CLASH"
	RepeatPaperExempt  = "EXEMPT"
	RepeatPaperFailed  = "FAILED"
)

// RepeatPaperRequest moves a course of a batch to the following Saturday.
type RepeatPaperRequest struct {
	Batch      string `json:"batch" validate:"required"`
	CourseName string `json:"courseName" validate:"required"`
}

// RepeatPaperResult describes a completed move.
type RepeatPaperResult struct {
	Batch       string            `json:"batch"`
	CourseName  string            `json:"courseName"`
	FromDate    string            `json:"fromDate"`
	ToDate      string            `json:"toDate"`
	Overwritten *string           `json:"overwritten,omitempty"`
	Schedule    map[string]string `json:"schedule"`
}

// ClashCheckRequest asks whether a course date collides with the student's home batch.
type ClashCheckRequest struct {
	CourseName   string `json:"courseName" validate:"required"`
	Batch        string `json:"batch" validate:"required"`
	StudentBatch string `json:"studentBatch" validate:"required"`
}

// ClashCheckResult answers a ClashCheckRequest.
type ClashCheckResult struct {
	CourseName   string `json:"courseName"`
	Batch        string `json:"batch"`
	StudentBatch string `json:"studentBatch"`
	Date         string `json:"date,omitempty"`
	Clash        bool   `json:"clash"`
}

// RepeatPaperRow is one line of an uploaded repeat paper sheet.
type RepeatPaperRow struct {
	CourseName   string `json:"courseName" validate:"required"`
	Batch        string `json:"batch" validate:"required"`
	StudentBatch string `json:"studentBatch" validate:"required"`
	Cleared      bool   `json:"cleared"`
}

// RepeatPaperBatchRequest processes many repeat paper rows in one call.
type RepeatPaperBatchRequest struct {
	Rows []RepeatPaperRow `json:"rows" validate:"required,min=1,dive"`
}

// RepeatPaperRowResult reports what happened to one row.
type RepeatPaperRowResult struct {
	Index   int                `json:"index"`
	Row     RepeatPaperRow     `json:"row"`
	Outcome string             `json:"outcome"`
	Move    *RepeatPaperResult `json:"move,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// RepeatPaperBatchResult aggregates row outcomes.
type RepeatPaperBatchResult struct {
	Processed int                    `json:"processed"`
	Moved     int                    `json:"moved"`
	Skipped   int                    `json:"skipped"`
	Failed    int                    `json:"failed"`
	Rows      []RepeatPaperRowResult `json:"rows"`
}
