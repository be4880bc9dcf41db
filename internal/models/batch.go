package models

import (
	"errors"
	"strings"
)

// BatchSeparator splits batch identifiers into their hierarchical segments.
const BatchSeparator = "/"

// ErrMalformedBatch is returned when a batch identifier has fewer than two segments.
var ErrMalformedBatch = errors.New("batch identifier must contain department and year segments")

// BatchSegments holds the trailing department and year segments of a batch identifier.
type BatchSegments struct {
	Department string
	Year       string
}

// ParseBatch extracts department and year from identifiers such as "NBC/BSCS/2022F".
func ParseBatch(batch string) (BatchSegments, error) {
	raw := strings.Split(strings.TrimSpace(batch), BatchSeparator)
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) < 2 {
		return BatchSegments{}, ErrMalformedBatch
	}
	return BatchSegments{
		Department: parts[len(parts)-2],
		Year:       parts[len(parts)-1],
	}, nil
}
