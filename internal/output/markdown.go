package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/screener/internal/model"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct{}

// Format writes the report as a Markdown summary and table.
func (f *MarkdownFormatter) Format(report *model.Report, w io.Writer) error {
	s := report.Summary

	fmt.Fprintln(w, "# Applicant Screening Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Applicants:** %d\n", s.TotalRecords)
	fmt.Fprintf(w, "- **With GitHub identity:** %d\n", s.RecordsWithIdentity)
	fmt.Fprintf(w, "- **With open source activity:** %d\n", s.RecordsWithActivity)
	if failed := s.NotFound + s.RateLimited + s.TransportErrors; failed > 0 {
		fmt.Fprintf(w, "- **Could not be screened:** %d (not found %d, rate limited %d, errors %d)\n",
			failed, s.NotFound, s.RateLimited, s.TransportErrors)
	}

	if len(report.Applicants) == 0 {
		fmt.Fprintln(w, "\nNo applicants found.")
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "| ID | Name | GitHub | Result | Repos | Forks | Events | Note |")
	fmt.Fprintln(w, "|---|---|---|---|---:|---:|---:|---|")

	for _, rec := range report.Applicants {
		identity := escapeCell(rec.NormalizedIdentity)
		if rec.ProfileURL != "" {
			identity = fmt.Sprintf("[%s](%s)", identity, rec.ProfileURL)
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			escapeCell(rec.ID),
			escapeCell(rec.Name),
			identity,
			rec.Outcome,
			countCell(rec, rec.PublicRepoCount),
			countCell(rec, rec.ForkedRepoCount),
			countCell(rec, rec.RecentEventCount),
			escapeCell(rec.EnrichmentError),
		)
	}

	return nil
}

// escapeCell keeps free text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
