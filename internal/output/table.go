package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spiffcs/screener/internal/format"
	"github.com/spiffcs/screener/internal/model"
	"golang.org/x/term"
)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// Column widths
const (
	colID       = 8
	colName     = 22
	colIdentity = 20
	colResult   = 14
	colCount    = 6
	colNote     = 28
)

// hyperlink creates a clickable terminal hyperlink using OSC 8
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// Format outputs the screened applicants as a table followed by the summary.
func (f *TableFormatter) Format(report *model.Report, w io.Writer) error {
	if len(report.Applicants) == 0 {
		fmt.Fprintln(w, "No applicants found.")
		return nil
	}

	fmt.Fprintf(w, "%s  %s  %s  %s  %*s  %*s  %*s  %s\n",
		format.Cell("ID", colID),
		format.Cell("Name", colName),
		format.Cell("GitHub", colIdentity),
		format.Cell("Result", colResult),
		colCount, "Repos",
		colCount, "Forks",
		colCount, "Events",
		"Note")
	fmt.Fprintln(w, strings.Repeat("-", colID+colName+colIdentity+colResult+3*colCount+colNote+14))

	for _, rec := range report.Applicants {
		identity := rec.NormalizedIdentity
		if identity == "" {
			identity = "-"
		}
		identityCell, identityWidth := format.TruncateToWidth(identity, colIdentity)
		identityCell = format.PadRight(hyperlink(identityCell, rec.ProfileURL), identityWidth, colIdentity)

		result := colorOutcome(rec.Outcome)
		result = format.PadRight(result, format.DisplayWidth(result), colResult)

		note, _ := format.TruncateToWidth(rec.EnrichmentError, colNote)

		fmt.Fprintf(w, "%s  %s  %s  %s  %*s  %*s  %*s  %s\n",
			format.Cell(rec.ID, colID),
			format.Cell(rec.Name, colName),
			identityCell,
			result,
			colCount, countCell(rec, rec.PublicRepoCount),
			colCount, countCell(rec, rec.ForkedRepoCount),
			colCount, countCell(rec, rec.RecentEventCount),
			note,
		)
	}

	printFooterSummary(report.Summary, w)
	return nil
}

// countCell leaves counts blank when no profile was read.
func countCell(rec model.EnrichedRecord, n int) string {
	if !rec.Outcome.IsSuccess() {
		return ""
	}
	return strconv.Itoa(n)
}

func colorOutcome(o model.Outcome) string {
	switch o {
	case model.OutcomeActive:
		return color.GreenString("● active")
	case model.OutcomeInactive:
		return color.WhiteString("○ inactive")
	case model.OutcomeNotFound:
		return color.YellowString("? not found")
	case model.OutcomeRateLimited:
		return color.RedString("✗ rate limited")
	case model.OutcomeTransportError:
		return color.RedString("✗ error")
	default:
		return color.HiBlackString("- no identity")
	}
}

// printFooterSummary prints the run counters below the table.
func printFooterSummary(s model.RunSummary, w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("━", 60))

	fmt.Fprintf(w, "  %d applicants, %d with a GitHub identity, %d without\n",
		s.TotalRecords, s.RecordsWithIdentity, s.RecordsWithoutIdentity)
	fmt.Fprintf(w, "  %s %d with open source activity\n",
		color.GreenString("●"), s.RecordsWithActivity)

	if s.NotFound > 0 {
		fmt.Fprintf(w, "  %s %d identities not found\n", color.YellowString("?"), s.NotFound)
	}
	if s.RateLimited > 0 {
		fmt.Fprintf(w, "  %s %s could not be screened (rate limited)\n",
			color.RedString("✗"), color.RedString("%d", s.RateLimited))
	}
	if s.TransportErrors > 0 {
		fmt.Fprintf(w, "  %s %d lookups failed\n", color.RedString("✗"), s.TransportErrors)
	}
}
