package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spiffcs/screener/internal/constants"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultScreening(t *testing.T) {
	s := (&Config{}).GetScreening()

	if s.PacingDelay != 300*time.Millisecond {
		t.Errorf("PacingDelay = %v, want 300ms", s.PacingDelay)
	}
	if s.Workers != 1 {
		t.Errorf("Workers = %d, want 1", s.Workers)
	}
	if s.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", s.RequestTimeout)
	}
	if s.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", s.PageSize)
	}
	if len(s.ContributionEvents) != len(constants.DefaultContributionEvents) {
		t.Errorf("ContributionEvents = %v", s.ContributionEvents)
	}
}

func TestGetScreeningOverrides(t *testing.T) {
	workers := 4
	cfg := &Config{Screening: &ScreeningConfig{
		PacingDelay:        "1s",
		Workers:            &workers,
		ContributionEvents: []string{"PushEvent"},
		APIURL:             "https://ghe.example.com/api/v3/",
	}}

	s := cfg.GetScreening()
	if s.PacingDelay != time.Second || s.Workers != 4 {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.RequestTimeout != constants.DefaultRequestTimeout {
		t.Errorf("unset RequestTimeout should keep default, got %v", s.RequestTimeout)
	}
	if len(s.ContributionEvents) != 1 || s.APIURL != "https://ghe.example.com/api/v3/" {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestLoadFromMergesLocalOverGlobal(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "global.yaml", `
default_format: table
screening:
  pacing_delay: 500ms
  workers: 2
columns:
  identity: GitHub
  email: mail
`)
	local := writeFile(t, dir, "local.yaml", `
screening:
  workers: 3
columns:
  identity: Handle
`)

	cfg, err := LoadFrom(global, local)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want table", cfg.DefaultFormat)
	}
	s := cfg.GetScreening()
	if s.PacingDelay != 500*time.Millisecond {
		t.Errorf("PacingDelay = %v, want global 500ms", s.PacingDelay)
	}
	if s.Workers != 3 {
		t.Errorf("Workers = %d, want local 3", s.Workers)
	}
	cols := cfg.GetColumns()
	if cols.Identity != "Handle" || cols.Email != "mail" {
		t.Errorf("columns = %+v", cols)
	}
}

func TestLoadFromMissingFiles(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "none.yaml"), filepath.Join(dir, "none-local.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.DefaultFormat != constants.FormatJSON {
		t.Errorf("DefaultFormat = %q, want json", cfg.DefaultFormat)
	}
	if cfg.GetColumns().Identity != "" {
		t.Error("expected no column overrides")
	}
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad format", "default_format: xml\n", "default_format must be one of"},
		{"bad duration", "screening:\n  pacing_delay: soon\n", "screening.pacing_delay must be a duration"},
		{"negative delay", "screening:\n  pacing_delay: -1s\n", "screening.pacing_delay must not be negative"},
		{"zero timeout", "screening:\n  request_timeout: 0s\n", "screening.request_timeout must be greater than zero"},
		{"too many workers", "screening:\n  workers: 64\n", "screening.workers must be at most 16"},
		{"page size", "screening:\n  page_size: 0\n", "screening.page_size must be at least 1"},
		{"blank event", "screening:\n  contribution_events: [\"PushEvent\", \" \"]\n", "must not be blank"},
		{"bad url", "screening:\n  api_url: not a url\n", "screening.api_url must be a valid url"},
		{"bad yaml", "screening: [\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "config.yaml", tt.content)

			_, err := LoadFrom(path, filepath.Join(dir, "missing.yaml"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() is invalid: %v", err)
	}

	out, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error: %v", err)
	}
	for _, key := range []string{"default_format", "pacing_delay", "contribution_events", "approval_status"} {
		if !strings.Contains(out, key) {
			t.Errorf("defaults YAML missing %q", key)
		}
	}
}

func TestMinimalConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", MinimalConfig())

	if _, err := LoadFrom(path, filepath.Join(dir, "missing.yaml")); err != nil {
		t.Errorf("MinimalConfig() does not load: %v", err)
	}
}

func TestGetGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	if got := (&Config{}).GetGitHubToken(); got != "ghp_test" {
		t.Errorf("GetGitHubToken() = %q", got)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveTo(path, "default_format: table\n"); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "default_format: table\n" {
		t.Errorf("file content = %q, %v", data, err)
	}
}
