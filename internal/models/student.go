package models

import (
	"fmt"
	"strings"
)

// Gender partitions the roster and the room inventory.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender accepts the common spellings found in roster exports.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MALE", "M":
		return GenderMale, nil
	case "FEMALE", "F":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender %q", raw)
	}
}

// Student is an examinee taken from the uploaded roster.
type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Gender     Gender `json:"gender"`
	Batch      string `json:"batch"`
	CourseName string `json:"course_name,omitempty"`
}
