// Package output renders screening reports.
package output

import (
	"fmt"
	"io"

	"github.com/spiffcs/screener/internal/constants"
	"github.com/spiffcs/screener/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatJSON     Format = constants.FormatJSON
	FormatTable    Format = constants.FormatTable
	FormatMarkdown Format = constants.FormatMarkdown
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatTable, FormatMarkdown}

// Formatter writes a report to w.
type Formatter interface {
	Format(report *model.Report, w io.Writer) error
}

// ParseFormat validates a format name. An empty name selects JSON.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatJSON, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (valid: json, table, markdown)", name)
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatTable:
		return &TableFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &JSONFormatter{Pretty: true}
	}
}
