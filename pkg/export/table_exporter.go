package export

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	tableColumnGap    = "  "
	tableHeaderMargin = 2
)

// TableExporter renders a Dataset as a plain-text console table: a header line,
// a dashed rule per column, then one block per row. Cells containing line breaks
// span several lines. Integer columns are right aligned, everything else left.
type TableExporter struct{}

// NewTableExporter constructs a TableExporter.
func NewTableExporter() *TableExporter {
	return &TableExporter{}
}

// Extension implements Exporter.
func (e *TableExporter) Extension() string { return "txt" }

// Render implements Exporter. The text carries one trailing newline and no title;
// the caller prints its own heading.
func (e *TableExporter) Render(data Dataset, _ string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, errNoHeaders
	}

	records := data.Records()
	cells := make([][][]string, len(records))
	for i, record := range records {
		cells[i] = make([][]string, len(record))
		for j, value := range record {
			cells[i][j] = strings.Split(value, "\n")
		}
	}

	widths := make([]int, len(data.Headers))
	rightAlign := make([]bool, len(data.Headers))
	for j, header := range data.Headers {
		widths[j] = utf8.RuneCountInString(header) + tableHeaderMargin
		numeric := len(records) > 0
		for i := range cells {
			for _, line := range cells[i][j] {
				if n := utf8.RuneCountInString(line); n > widths[j] {
					widths[j] = n
				}
			}
			if _, err := strconv.Atoi(records[i][j]); err != nil {
				numeric = false
			}
		}
		rightAlign[j] = numeric
	}

	buf := &bytes.Buffer{}
	writeLine := func(values []string) {
		parts := make([]string, len(values))
		for j, v := range values {
			parts[j] = pad(v, widths[j], rightAlign[j])
		}
		buf.WriteString(strings.TrimRight(strings.Join(parts, tableColumnGap), " "))
		buf.WriteByte('\n')
	}

	writeLine(data.Headers)
	rule := make([]string, len(widths))
	for j, w := range widths {
		rule[j] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for i := range cells {
		height := 1
		for _, lines := range cells[i] {
			if len(lines) > height {
				height = len(lines)
			}
		}
		for k := 0; k < height; k++ {
			values := make([]string, len(data.Headers))
			for j, lines := range cells[i] {
				if k < len(lines) {
					values[j] = lines[k]
				}
			}
			writeLine(values)
		}
	}
	return buf.Bytes(), nil
}

func pad(s string, width int, right bool) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
