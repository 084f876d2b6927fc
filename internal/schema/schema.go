// Package schema maps the physical columns of an applicant export onto the
// logical fields of an ApplicantRecord.
package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spiffcs/screener/internal/log"
	"github.com/spiffcs/screener/internal/model"
	"github.com/spiffcs/screener/internal/tabular"
)

// Default header names of the applicant export.
const (
	DefaultIDHeader        = "api_id"
	DefaultNameHeader      = "name"
	DefaultEmailHeader     = "email"
	DefaultStatusHeader    = "approval_status"
	DefaultTrackHeader     = "Which track are you doing?"
	DefaultBuildPlanHeader = "What do you plan to build? (you can change it later)"

	// identityMarker is matched case-insensitively against header names when
	// no identity column is configured.
	identityMarker = "github"
)

// fallbackIDHeaders are tried in order when api_id is absent.
var fallbackIDHeaders = []string{DefaultIDHeader, "id"}

// Columns holds explicit header names. Empty fields use the defaults.
type Columns struct {
	ID             string
	Name           string
	Email          string
	ApprovalStatus string
	Identity       string
	Track          string
	BuildPlan      string
}

// Schema is the resolved header name for each logical field. An empty
// value means the column is absent and the field defaults to "".
type Schema struct {
	ID             string
	Name           string
	Email          string
	ApprovalStatus string
	Identity       string
	Track          string
	BuildPlan      string
}

// Resolve maps logical fields to headers once for the whole run. It fails
// when no identity column can be found or when an explicitly configured
// column is missing.
func Resolve(headers []string, cols Columns) (Schema, error) {
	var s Schema
	var err error

	if s.ID, err = resolveOptional(headers, cols.ID, fallbackIDHeaders...); err != nil {
		return Schema{}, err
	}
	if s.Name, err = resolveOptional(headers, cols.Name, DefaultNameHeader); err != nil {
		return Schema{}, err
	}
	if s.Email, err = resolveOptional(headers, cols.Email, DefaultEmailHeader); err != nil {
		return Schema{}, err
	}
	if s.ApprovalStatus, err = resolveOptional(headers, cols.ApprovalStatus, DefaultStatusHeader); err != nil {
		return Schema{}, err
	}
	if s.Track, err = resolveOptional(headers, cols.Track, DefaultTrackHeader); err != nil {
		return Schema{}, err
	}
	if s.BuildPlan, err = resolveOptional(headers, cols.BuildPlan, DefaultBuildPlanHeader); err != nil {
		return Schema{}, err
	}

	if cols.Identity != "" {
		h, ok := findHeader(headers, cols.Identity)
		if !ok {
			return Schema{}, NewSetupError(KindIdentityColumn, "",
				fmt.Errorf("configured identity column %q not found", cols.Identity))
		}
		s.Identity = h
		return s, nil
	}

	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), identityMarker) {
			s.Identity = h
			return s, nil
		}
	}
	return Schema{}, NewSetupError(KindIdentityColumn, "",
		errors.New("no column containing \"github\" found in header row"))
}

// resolveOptional returns the configured header when set, failing if it is
// missing, and otherwise the first default that is present.
func resolveOptional(headers []string, configured string, defaults ...string) (string, error) {
	if configured != "" {
		h, ok := findHeader(headers, configured)
		if !ok {
			return "", NewSetupError(KindColumn, "", fmt.Errorf("configured column %q not found", configured))
		}
		return h, nil
	}
	for _, d := range defaults {
		if h, ok := findHeader(headers, d); ok {
			return h, nil
		}
	}
	return "", nil
}

// findHeader prefers an exact match and falls back to a case-insensitive one.
func findHeader(headers []string, name string) (string, bool) {
	for _, h := range headers {
		if h == name {
			return h, true
		}
	}
	for _, h := range headers {
		if strings.EqualFold(h, name) {
			return h, true
		}
	}
	return "", false
}

// Records converts every table row into an ApplicantRecord, in file order.
func Records(t *tabular.Table, s Schema) []model.ApplicantRecord {
	records := make([]model.ApplicantRecord, 0, t.Len())
	t.Each(func(r tabular.Row) {
		records = append(records, model.ApplicantRecord{
			ID:             strings.TrimSpace(r.Get(s.ID)),
			Name:           strings.TrimSpace(r.Get(s.Name)),
			Email:          strings.TrimSpace(r.Get(s.Email)),
			ApprovalStatus: strings.TrimSpace(r.Get(s.ApprovalStatus)),
			RawIdentity:    r.Get(s.Identity),
			Track:          r.Get(s.Track),
			BuildPlan:      r.Get(s.BuildPlan),
		})
	})
	return records
}

// Load reads the export at path and returns its records. All failures are
// returned as a *SetupError.
func Load(path string, cols Columns) ([]model.ApplicantRecord, Schema, error) {
	if path == "" {
		return nil, Schema{}, NewSetupError(KindUsage, "", errors.New("no input file provided"))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, Schema{}, NewSetupError(KindFile, path, err)
	}
	if info.IsDir() {
		return nil, Schema{}, NewSetupError(KindFile, path, errors.New("is a directory"))
	}

	table, err := tabular.LoadFile(path)
	if err != nil {
		if errors.Is(err, tabular.ErrEmpty) {
			return nil, Schema{}, NewSetupError(KindEmpty, path, err)
		}
		return nil, Schema{}, NewSetupError(KindFile, path, err)
	}
	if table.Adjusted > 0 {
		log.Debug("padded or truncated ragged rows", "path", path, "rows", table.Adjusted)
	}

	s, err := Resolve(table.Headers, cols)
	if err != nil {
		var se *SetupError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, Schema{}, err
	}

	return Records(table, s), s, nil
}
