package model

import "fmt"

// Outcome tags the variant carried by an ActivityResult.
type Outcome string

const (
	OutcomeActive         Outcome = "active"
	OutcomeInactive       Outcome = "inactive"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeTransportError Outcome = "transport_error"

	// OutcomeNone marks an enriched record that had nothing to look up.
	// It is never stored in a Lookup.
	OutcomeNone Outcome = "none"
)

// AllOutcomes contains every outcome a Lookup entry can carry.
var AllOutcomes = []Outcome{
	OutcomeActive,
	OutcomeInactive,
	OutcomeNotFound,
	OutcomeRateLimited,
	OutcomeTransportError,
}

// IsSuccess reports whether the outcome came from a readable profile.
func (o Outcome) IsSuccess() bool {
	return o == OutcomeActive || o == OutcomeInactive
}

// IsFailure reports whether the activity signal could not be determined.
func (o Outcome) IsFailure() bool {
	return o == OutcomeNotFound || o == OutcomeRateLimited || o == OutcomeTransportError
}

// ActivityCounts are the contribution signals read from a profile.
type ActivityCounts struct {
	PublicRepos  int
	ForkedRepos  int
	RecentEvents int
}

// Any reports whether at least one signal is present.
func (c ActivityCounts) Any() bool {
	return c.PublicRepos > 0 || c.RecentEvents > 0 || c.ForkedRepos > 0
}

// ActivityResult is the classified outcome of screening one username.
// Use the constructors below; they keep counts zero for failure variants.
type ActivityResult struct {
	Outcome    Outcome
	Counts     ActivityCounts
	ProfileURL string
	Message    string // transport error detail
}

// Classify returns Active when any signal is present and Inactive otherwise.
func Classify(counts ActivityCounts, profileURL string) ActivityResult {
	if counts.Any() {
		return Active(counts, profileURL)
	}
	return Inactive(counts, profileURL)
}

// Active builds a result for a profile with contribution signals.
func Active(counts ActivityCounts, profileURL string) ActivityResult {
	return ActivityResult{Outcome: OutcomeActive, Counts: counts, ProfileURL: profileURL}
}

// Inactive builds a result for an existing profile without signals.
func Inactive(counts ActivityCounts, profileURL string) ActivityResult {
	return ActivityResult{Outcome: OutcomeInactive, Counts: counts, ProfileURL: profileURL}
}

// NotFound builds a result for a username that does not exist upstream.
func NotFound() ActivityResult {
	return ActivityResult{Outcome: OutcomeNotFound}
}

// RateLimited builds a result for a lookup lost to the API rate limit.
func RateLimited() ActivityResult {
	return ActivityResult{Outcome: OutcomeRateLimited}
}

// TransportError builds a result for a network, timeout or unexpected status failure.
func TransportError(msg string) ActivityResult {
	if msg == "" {
		msg = "unknown error"
	}
	return ActivityResult{Outcome: OutcomeTransportError, Message: msg}
}

// Err returns a human-readable description of a failure outcome, or an
// empty string for Active and Inactive results.
func (r ActivityResult) Err() string {
	switch r.Outcome {
	case OutcomeNotFound:
		return "user not found"
	case OutcomeRateLimited:
		return "rate limit exceeded"
	case OutcomeTransportError:
		return fmt.Sprintf("request failed: %s", r.Message)
	default:
		return ""
	}
}
