// Package format provides text helpers for aligned terminal output.
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/spiffcs/screener/internal/constants"
)

const ellipsis = "..."

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes ANSI color sequences.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the number of terminal columns s occupies, ignoring
// color sequences and counting wide runes as two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// TruncateToWidth shortens s to at most maxWidth columns, ending it with
// "..." when anything was cut. Color sequences are kept and reset after the
// cut. It returns the result and its visible width.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	if w := DisplayWidth(s); w <= maxWidth {
		return s, w
	}
	if maxWidth <= constants.TruncationSuffixWidth {
		return ellipsis[:max(maxWidth, 0)], max(maxWidth, 0)
	}

	budget := maxWidth - constants.TruncationSuffixWidth
	colored := false
	var b strings.Builder
	used := 0

	for i := 0; i < len(s); {
		if loc := ansiRegex.FindStringIndex(s[i:]); loc != nil && loc[0] == 0 {
			b.WriteString(s[i : i+loc[1]])
			i += loc[1]
			colored = true
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runewidth.RuneWidth(r)
		if used+rw > budget {
			break
		}
		b.WriteString(s[i : i+size])
		used += rw
		i += size
	}

	b.WriteString(ellipsis)
	if colored {
		b.WriteString("\033[0m")
	}
	return b.String(), used + constants.TruncationSuffixWidth
}

// PadRight pads s with spaces from visibleWidth up to targetWidth.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Cell fits s into exactly width columns.
func Cell(s string, width int) string {
	s, w := TruncateToWidth(s, width)
	return PadRight(s, w, width)
}
