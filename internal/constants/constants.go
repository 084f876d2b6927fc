// Package constants provides a centralized location for all configuration
// values and magic numbers used throughout the screener application.
package constants

import "time"

// TUI update and display constants
const (
	// TUIUpdateInterval is the minimum time between TUI progress updates
	// to provide smooth progress display without excessive overhead.
	TUIUpdateInterval = 50 * time.Millisecond

	// LogThrottlePercent is the interval (in percent) at which progress
	// logs are emitted when not using the TUI.
	LogThrottlePercent = 5

	// TruncationSuffixWidth is the width of the "..." suffix when truncating strings.
	TruncationSuffixWidth = 3
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100

	// DefaultPacingDelay is the minimum interval between two profile
	// lookups when nothing else is configured.
	DefaultPacingDelay = 300 * time.Millisecond

	// DefaultWorkers is the number of concurrent profile lookups. One
	// worker is the sequential baseline.
	DefaultWorkers = 1

	// MaxWorkers caps the enricher pool size.
	MaxWorkers = 16
)

// Request constants
const (
	// DefaultRequestTimeout bounds every single request to the profile API.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultPageSize is the page size for the event feed and repository list.
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the GitHub REST API accepts.
	MaxPageSize = 100

	// UserAgent identifies screener requests to the API.
	UserAgent = "screener"
)

// Output format constants
const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
)

// DefaultContributionEvents are the event types that count as a
// contribution signal in a user's public event feed.
var DefaultContributionEvents = []string{
	"PushEvent",
	"PullRequestEvent",
	"IssuesEvent",
	"IssueCommentEvent",
	"CreateEvent",
	"ForkEvent",
}
