// Package model contains domain types for the screener application.
// These types are independent of any external GitHub library.
package model

// ApplicantRecord is one row of the applicant export.
// Records are created once by the schema layer and never mutated.
type ApplicantRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ApprovalStatus string `json:"approvalStatus"`
	RawIdentity    string `json:"rawIdentity"`
	Track          string `json:"track"`
	BuildPlan      string `json:"buildPlan"`
}

// EnrichedRecord is an ApplicantRecord joined with its activity signal.
// There is exactly one EnrichedRecord per ApplicantRecord, including
// records without an identity.
type EnrichedRecord struct {
	ApplicantRecord

	NormalizedIdentity    string  `json:"normalizedIdentity"`
	HasOpenSourceActivity bool    `json:"hasOpenSourceActivity"`
	PublicRepoCount       int     `json:"publicRepoCount"`
	ForkedRepoCount       int     `json:"forkedRepoCount"`
	RecentEventCount      int     `json:"recentEventCount"`
	ProfileURL            string  `json:"profileUrl"`
	EnrichmentError       string  `json:"enrichmentError"`
	Outcome               Outcome `json:"outcome"`
}

// HasIdentity reports whether the record resolved to a non-empty username.
func (r EnrichedRecord) HasIdentity() bool {
	return r.NormalizedIdentity != ""
}

// FilterByStatus returns the records whose approval status equals status.
// An empty status returns records unchanged.
func FilterByStatus(records []ApplicantRecord, status string) []ApplicantRecord {
	if status == "" {
		return records
	}
	filtered := make([]ApplicantRecord, 0, len(records))
	for _, r := range records {
		if r.ApprovalStatus == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
