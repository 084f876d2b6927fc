package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spiffcs/screener/internal/constants"
	"github.com/spiffcs/screener/internal/schema"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty" validate:"omitempty,oneof=json table markdown"`

	Screening *ScreeningConfig `yaml:"screening,omitempty"`
	Columns   *ColumnsConfig   `yaml:"columns,omitempty"`
}

// ScreeningConfig tunes how profiles are looked up.
type ScreeningConfig struct {
	PacingDelay        string   `yaml:"pacing_delay,omitempty" validate:"omitempty,duration,nonnegative_duration"`
	Workers            *int     `yaml:"workers,omitempty" validate:"omitempty,min=1,max=16"`
	RequestTimeout     string   `yaml:"request_timeout,omitempty" validate:"omitempty,duration,positive_duration"`
	PageSize           *int     `yaml:"page_size,omitempty" validate:"omitempty,min=1,max=100"`
	ContributionEvents []string `yaml:"contribution_events,omitempty" validate:"omitempty,dive,notblank"`
	APIURL             string   `yaml:"api_url,omitempty" validate:"omitempty,url"`
}

// ColumnsConfig names the header of each applicant field explicitly.
type ColumnsConfig struct {
	ID             string `yaml:"id,omitempty"`
	Name           string `yaml:"name,omitempty"`
	Email          string `yaml:"email,omitempty"`
	ApprovalStatus string `yaml:"approval_status,omitempty"`
	Identity       string `yaml:"identity,omitempty"`
	Track          string `yaml:"track,omitempty"`
	BuildPlan      string `yaml:"build_plan,omitempty"`
}

// Screening holds resolved screening settings with defaults applied.
type Screening struct {
	PacingDelay        time.Duration
	Workers            int
	RequestTimeout     time.Duration
	PageSize           int
	ContributionEvents []string
	APIURL             string
}

// DefaultScreening returns the built-in screening settings.
func DefaultScreening() Screening {
	return Screening{
		PacingDelay:        constants.DefaultPacingDelay,
		Workers:            constants.DefaultWorkers,
		RequestTimeout:     constants.DefaultRequestTimeout,
		PageSize:           constants.DefaultPageSize,
		ContributionEvents: append([]string(nil), constants.DefaultContributionEvents...),
	}
}

// GetScreening returns screening settings with user overrides merged with
// defaults. Durations are assumed valid; see Validate.
func (c *Config) GetScreening() Screening {
	s := DefaultScreening()
	sc := c.Screening
	if sc == nil {
		return s
	}

	if d, err := time.ParseDuration(sc.PacingDelay); err == nil {
		s.PacingDelay = d
	}
	if d, err := time.ParseDuration(sc.RequestTimeout); err == nil {
		s.RequestTimeout = d
	}
	if sc.Workers != nil {
		s.Workers = *sc.Workers
	}
	if sc.PageSize != nil {
		s.PageSize = *sc.PageSize
	}
	if len(sc.ContributionEvents) > 0 {
		s.ContributionEvents = sc.ContributionEvents
	}
	s.APIURL = sc.APIURL

	return s
}

// GetColumns returns the configured column names for schema resolution.
func (c *Config) GetColumns() schema.Columns {
	if c.Columns == nil {
		return schema.Columns{}
	}
	return schema.Columns{
		ID:             c.Columns.ID,
		Name:           c.Columns.Name,
		Email:          c.Columns.Email,
		ApprovalStatus: c.Columns.ApprovalStatus,
		Identity:       c.Columns.Identity,
		Track:          c.Columns.Track,
		BuildPlan:      c.Columns.BuildPlan,
	}
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".screener"
	}
	return filepath.Join(configDir, "screener")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".screener.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .screener.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads and merges the config files at globalPath and localPath.
// Missing files are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{}

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("global config: %w", err)
	}
	if global != nil {
		cfg = global
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("local config: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = constants.FormatJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile parses path, returning nil when it does not exist.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{
		DefaultFormat: firstNonEmpty(local.DefaultFormat, global.DefaultFormat),
		Screening:     mergeScreening(global.Screening, local.Screening),
		Columns:       mergeColumns(global.Columns, local.Columns),
	}
	return result
}

func mergeScreening(global, local *ScreeningConfig) *ScreeningConfig {
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}

	result := *global
	result.PacingDelay = firstNonEmpty(local.PacingDelay, global.PacingDelay)
	result.RequestTimeout = firstNonEmpty(local.RequestTimeout, global.RequestTimeout)
	result.APIURL = firstNonEmpty(local.APIURL, global.APIURL)
	if local.Workers != nil {
		result.Workers = local.Workers
	}
	if local.PageSize != nil {
		result.PageSize = local.PageSize
	}
	if len(local.ContributionEvents) > 0 {
		result.ContributionEvents = local.ContributionEvents
	}
	return &result
}

func mergeColumns(global, local *ColumnsConfig) *ColumnsConfig {
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &ColumnsConfig{
		ID:             firstNonEmpty(local.ID, global.ID),
		Name:           firstNonEmpty(local.Name, global.Name),
		Email:          firstNonEmpty(local.Email, global.Email),
		ApprovalStatus: firstNonEmpty(local.ApprovalStatus, global.ApprovalStatus),
		Identity:       firstNonEmpty(local.Identity, global.Identity),
		Track:          firstNonEmpty(local.Track, global.Track),
		BuildPlan:      firstNonEmpty(local.BuildPlan, global.BuildPlan),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Tokens are only read from the environment. An empty token is valid and
// selects unauthenticated requests.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	s := DefaultScreening()
	workers := s.Workers
	pageSize := s.PageSize

	return &Config{
		DefaultFormat: constants.FormatJSON,
		Screening: &ScreeningConfig{
			PacingDelay:        s.PacingDelay.String(),
			Workers:            &workers,
			RequestTimeout:     s.RequestTimeout.String(),
			PageSize:           &pageSize,
			ContributionEvents: s.ContributionEvents,
			APIURL:             "https://api.github.com/",
		},
		Columns: &ColumnsConfig{
			ID:             schema.DefaultIDHeader,
			Name:           schema.DefaultNameHeader,
			Email:          schema.DefaultEmailHeader,
			ApprovalStatus: schema.DefaultStatusHeader,
			Track:          schema.DefaultTrackHeader,
			BuildPlan:      schema.DefaultBuildPlanHeader,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# Screener configuration file
# See: screener config defaults  (for all available options)

# Output format: json, table or markdown
default_format: json

# Profile lookups (optional)
# screening:
#   pacing_delay: 300ms
#   workers: 1
#   request_timeout: 10s

# Explicit header names when the export differs (optional)
# columns:
#   identity: "GitHub Username"
#   approval_status: status

# The GitHub token is read from the GITHUB_TOKEN environment variable.
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
