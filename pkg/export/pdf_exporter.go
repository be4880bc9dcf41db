package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10.0
	portraitBody  = 190.0
	landscapeBody = 277.0
)

// PDFExporter renders sheets into a bordered tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays out the sheet on A4 pages, repeating the header row after page breaks.
func (e *PDFExporter) Render(sheet Sheet) ([]byte, error) {
	if err := sheet.validate(); err != nil {
		return nil, err
	}

	orientation, width := "P", portraitBody
	if sheet.Landscape {
		orientation, width = "L", landscapeBody
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 15, pdfMargin)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	colWidth := width / float64(len(sheet.Headers))
	writeHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, header := range sheet.Headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			writeHeader()
		}
	})

	pdf.AddPage()
	if sheet.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(sheet.Title), "", 1, "C", false, 0, "")
	}
	if len(sheet.Subtitles) > 0 {
		pdf.SetFont("Arial", "", 11)
		for _, line := range sheet.Subtitles {
			pdf.CellFormat(0, 7, tr(line), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	writeHeader()
	for _, row := range sheet.Rows {
		for i := range sheet.Headers {
			pdf.CellFormat(colWidth, 9, tr(cell(row, i)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(sheet.Footer) > 0 {
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, line := range sheet.Footer {
			pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
