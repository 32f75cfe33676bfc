package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth   = 190.0
	pdfLineHeight  = 5.0
	pdfMinColWidth = 12.0
)

// PDFExporter renders a dataset as a bordered A4 table under a centered title.
// Column widths follow the longest line of each column; multi-line cells keep
// one value per line.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Extension implements Exporter.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render implements Exporter.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, errNoHeaders
	}
	records := data.Records()
	widths := pdfColumnWidths(data.Headers, records)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for j, header := range data.Headers {
		pdf.CellFormat(widths[j], 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, record := range records {
		height := 1
		for _, cell := range record {
			if n := strings.Count(cell, "\n") + 1; n > height {
				height = n
			}
		}
		rowHeight := float64(height)*pdfLineHeight + 2
		if pdf.GetY()+rowHeight > 282 {
			pdf.AddPage()
		}
		x, y := pdf.GetXY()
		for j, cell := range record {
			pdf.Rect(x, y, widths[j], rowHeight, "D")
			pdf.SetXY(x+1, y+1)
			pdf.MultiCell(widths[j]-2, pdfLineHeight, tr(cell), "", "L", false)
			x += widths[j]
		}
		pdf.SetXY(10, y+rowHeight)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfColumnWidths shares the page width in proportion to the widest line of each
// column, header included.
func pdfColumnWidths(headers []string, records [][]string) []float64 {
	longest := make([]int, len(headers))
	total := 0
	for j, header := range headers {
		longest[j] = utf8.RuneCountInString(header)
		for _, record := range records {
			for _, line := range strings.Split(record[j], "\n") {
				if n := utf8.RuneCountInString(line); n > longest[j] {
					longest[j] = n
				}
			}
		}
		if longest[j] == 0 {
			longest[j] = 1
		}
		total += longest[j]
	}

	widths := make([]float64, len(headers))
	spare := pdfPageWidth
	flexible := 0
	for j := range headers {
		w := pdfPageWidth * float64(longest[j]) / float64(total)
		if w < pdfMinColWidth {
			widths[j] = pdfMinColWidth
			spare -= pdfMinColWidth
			continue
		}
		flexible += longest[j]
	}
	for j := range headers {
		if widths[j] == 0 {
			widths[j] = spare * float64(longest[j]) / float64(flexible)
		}
	}
	return widths
}
