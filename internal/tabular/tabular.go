// Package tabular loads CSV exports into header-addressed rows.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("empty file: no header row found")

// Table is a parsed CSV file. Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string

	// Adjusted counts rows that were padded or truncated to the header width.
	Adjusted int
}

// Row is a single row addressed by header name.
type Row struct {
	index map[string]int
	cells []string
}

// Get returns the cell under header, or an empty string when the header is
// not present.
func (r Row) Get(header string) string {
	if header == "" {
		return ""
	}
	i, ok := r.index[header]
	if !ok {
		return ""
	}
	return r.cells[i]
}

// Each calls fn for every row in file order.
func (t *Table) Each(fn func(Row)) {
	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		// first occurrence wins for duplicate headers
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	for _, cells := range t.Rows {
		fn(Row{index: index, cells: cells})
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// LoadFile opens path and parses it as CSV.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads CSV from r. A leading UTF-8 or UTF-16 byte order mark is
// honored and stripped. Header names are trimmed. Short rows are padded with
// empty cells and long rows truncated to the header width.
func Parse(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	t := &Table{Headers: headers}
	width := len(headers)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.Rows)+2, err)
		}

		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			row = padded
			t.Adjusted++
		case len(row) > width:
			row = row[:width]
			t.Adjusted++
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
