package export

import "fmt"

// Sheet is a printable table with optional heading and footer lines.
type Sheet struct {
	Title     string
	Subtitles []string
	Headers   []string
	Rows      [][]string
	Footer    []string
	Landscape bool
}

func (s Sheet) validate() error {
	if len(s.Headers) == 0 {
		return fmt.Errorf("sheet requires at least one header")
	}
	for i, row := range s.Rows {
		if len(row) > len(s.Headers) {
			return fmt.Errorf("row %d has %d cells for %d headers", i, len(row), len(s.Headers))
		}
	}
	return nil
}

// cell returns the value at col, padding short rows with blanks.
func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
