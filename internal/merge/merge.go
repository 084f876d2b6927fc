// Package merge joins applicant records with their screening results.
package merge

import (
	"github.com/spiffcs/screener/internal/identity"
	"github.com/spiffcs/screener/internal/model"
)

// NormalizeFunc converts a raw identity into a canonical username.
type NormalizeFunc func(raw string) string

// Merge produces one EnrichedRecord per input record, in input order, and
// the run summary computed over the same pass.
//
// Records without an identity, and identities missing from the lookup,
// get zero counts and no error. Failure outcomes always carry a non-empty
// EnrichmentError so they cannot be mistaken for an inactive profile.
func Merge(records []model.ApplicantRecord, normalize NormalizeFunc, lookup *model.Lookup) ([]model.EnrichedRecord, model.RunSummary) {
	if normalize == nil {
		normalize = identity.Normalize
	}

	out := make([]model.EnrichedRecord, 0, len(records))
	var summary model.RunSummary

	for _, rec := range records {
		enriched := enrichRecord(rec, normalize, lookup)
		summary.Add(enriched)
		out = append(out, enriched)
	}

	return out, summary
}

func enrichRecord(rec model.ApplicantRecord, normalize NormalizeFunc, lookup *model.Lookup) model.EnrichedRecord {
	username := normalize(rec.RawIdentity)
	if identity.IsSentinel(username) {
		username = ""
	}

	out := model.EnrichedRecord{
		ApplicantRecord:    rec,
		NormalizedIdentity: username,
		Outcome:            model.OutcomeNone,
	}
	if username == "" {
		return out
	}

	result, ok := lookup.Get(username)
	if !ok {
		return out
	}

	out.Outcome = result.Outcome
	switch {
	case result.Outcome.IsSuccess():
		out.HasOpenSourceActivity = result.Outcome == model.OutcomeActive
		out.PublicRepoCount = result.Counts.PublicRepos
		out.ForkedRepoCount = result.Counts.ForkedRepos
		out.RecentEventCount = result.Counts.RecentEvents
		out.ProfileURL = result.ProfileURL
	case result.Outcome.IsFailure():
		out.EnrichmentError = result.Err()
	}

	return out
}
