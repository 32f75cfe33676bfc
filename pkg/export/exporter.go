package export

import (
	"errors"
	"fmt"
	"strings"
)

// Dataset is tabular report content. Cell values may span several lines.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var errNoHeaders = errors.New("dataset has no headers")

// Records returns the rows as ordered cell slices, one value per header.
func (d Dataset) Records() [][]string {
	records := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for j, header := range d.Headers {
			record[j] = row[header]
		}
		records[i] = record
	}
	return records
}

// Exporter renders a dataset into a document. The title is used only by formats
// that carry one.
type Exporter interface {
	Render(data Dataset, title string) ([]byte, error)
	Extension() string
}

// ForFormat returns the exporter registered under a report format name.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableExporter(), nil
	case "csv":
		return NewCSVExporter(), nil
	case "pdf":
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
