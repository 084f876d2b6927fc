package model

// RunSummary holds the aggregate counters of one screening run.
type RunSummary struct {
	TotalRecords           int `json:"totalRecords"`
	RecordsWithIdentity    int `json:"recordsWithIdentity"`
	RecordsWithoutIdentity int `json:"recordsWithoutIdentity"`
	RecordsWithActivity    int `json:"recordsWithActivity"`

	// Failure breakdown, counted per record.
	NotFound        int `json:"notFound"`
	RateLimited     int `json:"rateLimited"`
	TransportErrors int `json:"transportErrors"`
}

// Add folds one enriched record into the summary.
func (s *RunSummary) Add(r EnrichedRecord) {
	s.TotalRecords++
	if !r.HasIdentity() {
		s.RecordsWithoutIdentity++
		return
	}
	s.RecordsWithIdentity++
	if r.HasOpenSourceActivity {
		s.RecordsWithActivity++
	}
	switch r.Outcome {
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeRateLimited:
		s.RateLimited++
	case OutcomeTransportError:
		s.TransportErrors++
	}
}

// Report is the document emitted at the end of a run.
type Report struct {
	Applicants []EnrichedRecord `json:"applicants"`
	Summary    RunSummary       `json:"summary"`
}
