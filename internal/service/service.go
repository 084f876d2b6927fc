// Package service orchestrates a screening run from input file to report.
package service

import (
	"context"
	"time"

	"github.com/spiffcs/screener/internal/constants"
	"github.com/spiffcs/screener/internal/enrich"
	"github.com/spiffcs/screener/internal/ghclient"
	"github.com/spiffcs/screener/internal/identity"
	"github.com/spiffcs/screener/internal/log"
	"github.com/spiffcs/screener/internal/merge"
	"github.com/spiffcs/screener/internal/model"
	"github.com/spiffcs/screener/internal/pacer"
	"github.com/spiffcs/screener/internal/schema"
)

// Stage identifies a step of the pipeline.
type Stage int

const (
	StageLoad    Stage = iota // Reading the export and resolving columns
	StageResolve              // Normalizing identities and deduplicating
	StageScreen               // Fetching activity per username
	StageMerge                // Joining results onto records
)

// StageStatus is the state reported for a Stage.
type StageStatus int

const (
	StageRunning StageStatus = iota
	StageComplete
	StageFailed
)

// StageFunc is called when a stage starts, finishes or fails. count is the
// number of items the stage produced.
type StageFunc func(stage Stage, status StageStatus, count int, err error)

// Options configures a Screener.
type Options struct {
	Columns     schema.Columns
	Status      string // only screen applicants with this approval status
	Workers     int
	PacingDelay time.Duration

	// Pacer overrides the limiter built from PacingDelay.
	Pacer pacer.Pacer

	OnStage    StageFunc
	OnProgress enrich.ProgressFunc
}

// Screener runs the load, normalize, enrich and merge pipeline.
type Screener struct {
	fetcher ghclient.ActivityFetcher
	opts    Options
}

// New creates a Screener that looks profiles up through fetcher.
func New(fetcher ghclient.ActivityFetcher, opts Options) *Screener {
	if opts.Pacer == nil {
		limiter := pacer.New(opts.PacingDelay)
		log.Debug("pacing profile lookups", "delay", limiter.Delay())
		opts.Pacer = limiter
	}
	if opts.Workers == 0 {
		opts.Workers = constants.DefaultWorkers
	}
	return &Screener{fetcher: fetcher, opts: opts}
}

func (s *Screener) stage(stage Stage, status StageStatus, count int, err error) {
	if s.opts.OnStage != nil {
		s.opts.OnStage(stage, status, count, err)
	}
}

// Run screens every applicant in the export at path. Input problems are
// returned as a *schema.SetupError before any profile request is made;
// per-username failures are carried in the report instead.
func (s *Screener) Run(ctx context.Context, path string) (*model.Report, error) {
	s.stage(StageLoad, StageRunning, 0, nil)
	records, sch, err := schema.Load(path, s.opts.Columns)
	if err != nil {
		s.stage(StageLoad, StageFailed, 0, err)
		return nil, err
	}
	log.Debug("resolved columns", "identity", sch.Identity, "id", sch.ID, "status", sch.ApprovalStatus)

	if s.opts.Status != "" {
		before := len(records)
		records = model.FilterByStatus(records, s.opts.Status)
		log.Info("filtered applicants by status", "status", s.opts.Status, "kept", len(records), "total", before)
	}
	s.stage(StageLoad, StageComplete, len(records), nil)

	return s.Screen(ctx, records)
}

// Screen enriches already loaded records and builds the report.
func (s *Screener) Screen(ctx context.Context, records []model.ApplicantRecord) (*model.Report, error) {
	s.stage(StageResolve, StageRunning, 0, nil)
	usernames := enrich.CollectUsernames(records, identity.Normalize)
	for _, u := range usernames {
		if !identity.IsCanonical(u) {
			log.Debug("low-confidence identity", "value", u)
		}
	}
	s.stage(StageResolve, StageComplete, len(usernames), nil)
	log.Info("collected usernames", "records", len(records), "unique", len(usernames))

	s.stage(StageScreen, StageRunning, 0, nil)
	enricher := enrich.New(s.fetcher, s.opts.Pacer,
		enrich.WithWorkers(s.opts.Workers),
		enrich.WithProgress(s.opts.OnProgress),
	)
	lookup := enricher.Enrich(ctx, usernames)
	s.stage(StageScreen, StageComplete, lookup.Len(), nil)

	if counts := lookup.CountByOutcome(); counts[model.OutcomeRateLimited] > 0 {
		log.Warn("some profiles could not be screened due to rate limiting",
			"count", counts[model.OutcomeRateLimited])
		log.Debug("rate-limited usernames", "usernames", withOutcome(lookup, model.OutcomeRateLimited))
	}

	s.stage(StageMerge, StageRunning, 0, nil)
	enriched, summary := merge.Merge(records, identity.Normalize, lookup)
	s.stage(StageMerge, StageComplete, len(enriched), nil)

	return &model.Report{Applicants: enriched, Summary: summary}, nil
}

// withOutcome lists the usernames in lookup whose result has outcome, sorted.
func withOutcome(lookup *model.Lookup, outcome model.Outcome) []string {
	var names []string
	for _, name := range lookup.Usernames() {
		if r, ok := lookup.Get(name); ok && r.Outcome == outcome {
			names = append(names, name)
		}
	}
	return names
}
