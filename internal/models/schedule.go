package models

import (
	"sort"
	"strings"
	"time"
)

const (
	// PreparationDay marks a date without an exam.
	PreparationDay = "Preparation Day"
	// SubjectSeparator joins co-scheduled subjects inside one schedule entry.
	SubjectSeparator = "/"
	// DateLayout is the ISO layout used for schedule keys.
	DateLayout = "2006-01-02"
)

// Schedule maps ISO dates to the subject label examined on that date.
type Schedule map[string]string

// DateSheet is the exam calendar owned by a single batch.
type DateSheet struct {
	ID        string    `db:"id" json:"id"`
	Batch     string    `db:"batch" json:"batch"`
	Schedule  Schedule  `db:"-" json:"schedule"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleConflict records two batches sharing the same exam label on the same date.
type ScheduleConflict struct {
	BatchA  string `json:"batch_a"`
	BatchB  string `json:"batch_b"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

// IsExamLabel reports whether a schedule value denotes an actual exam.
func IsExamLabel(label string) bool {
	trimmed := strings.TrimSpace(label)
	return trimmed != "" && trimmed != PreparationDay
}

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for date, label := range s {
		out[date] = label
	}
	return out
}

// Dates returns the schedule keys in ascending order.
func (s Schedule) Dates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// ExamOn returns the label scheduled on date when it is an exam.
func (s Schedule) ExamOn(date string) (string, bool) {
	label, ok := s[date]
	if !ok || !IsExamLabel(label) {
		return "", false
	}
	return label, true
}

// Subjects splits the label on date into its individual subjects.
func (s Schedule) Subjects(date string) []string {
	label, ok := s.ExamOn(date)
	if !ok {
		return nil
	}
	var subjects []string
	for _, part := range strings.Split(label, SubjectSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			subjects = append(subjects, trimmed)
		}
	}
	return subjects
}

// DateOf returns the earliest date whose whole label equals subject.
func (s Schedule) DateOf(subject string) (string, bool) {
	for _, date := range s.Dates() {
		if s[date] == subject {
			return date, true
		}
	}
	return "", false
}
