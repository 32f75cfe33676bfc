package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes one record per row after a header record. Multi-line cells
// are quoted and keep their line breaks.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Extension implements Exporter.
func (e *CSVExporter) Extension() string { return "csv" }

// Render implements Exporter. CSV has no title line.
func (e *CSVExporter) Render(data Dataset, _ string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, errNoHeaders
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(append([][]string{data.Headers}, data.Records()...)); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
