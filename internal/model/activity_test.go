package model

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		counts ActivityCounts
		want   Outcome
	}{
		{"no signals", ActivityCounts{}, OutcomeInactive},
		{"public repos only", ActivityCounts{PublicRepos: 3}, OutcomeActive},
		{"forks only", ActivityCounts{ForkedRepos: 1}, OutcomeActive},
		{"events only", ActivityCounts{RecentEvents: 2}, OutcomeActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.counts, "https://github.com/x")
			if got.Outcome != tt.want {
				t.Errorf("Classify(%+v) = %q, want %q", tt.counts, got.Outcome, tt.want)
			}
			if got.Counts != tt.counts {
				t.Errorf("counts not preserved: %+v", got.Counts)
			}
			if got.ProfileURL != "https://github.com/x" {
				t.Errorf("profile URL = %q", got.ProfileURL)
			}
		})
	}
}

func TestActivityResultErr(t *testing.T) {
	tests := []struct {
		name   string
		result ActivityResult
		want   string
	}{
		{"active", Active(ActivityCounts{PublicRepos: 1}, ""), ""},
		{"inactive", Inactive(ActivityCounts{}, ""), ""},
		{"not found", NotFound(), "user not found"},
		{"rate limited", RateLimited(), "rate limit exceeded"},
		{"transport", TransportError("request timed out"), "request failed: request timed out"},
		{"transport without detail", TransportError(""), "request failed: unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Err(); got != tt.want {
				t.Errorf("Err() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureVariantsCarryNoCounts(t *testing.T) {
	for _, r := range []ActivityResult{NotFound(), RateLimited(), TransportError("x")} {
		if r.Counts.Any() || r.ProfileURL != "" {
			t.Errorf("%s result carries data: %+v", r.Outcome, r)
		}
		if !r.Outcome.IsFailure() || r.Outcome.IsSuccess() {
			t.Errorf("%s should be a failure outcome", r.Outcome)
		}
	}
}

func TestOutcomeNoneIsNeither(t *testing.T) {
	if OutcomeNone.IsSuccess() || OutcomeNone.IsFailure() {
		t.Error("OutcomeNone should be neither success nor failure")
	}
}
