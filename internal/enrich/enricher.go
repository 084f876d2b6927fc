// Package enrich screens a deduplicated set of usernames against the
// profile API and collects the results into a lookup.
package enrich

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spiffcs/screener/internal/constants"
	"github.com/spiffcs/screener/internal/ghclient"
	"github.com/spiffcs/screener/internal/identity"
	"github.com/spiffcs/screener/internal/log"
	"github.com/spiffcs/screener/internal/model"
	"github.com/spiffcs/screener/internal/pacer"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each username has been screened.
type ProgressFunc func(completed, total int, username string, result model.ActivityResult)

// Enricher fetches activity for each unique username exactly once.
type Enricher struct {
	fetcher    ghclient.ActivityFetcher
	pacer      pacer.Pacer
	workers    int
	onProgress ProgressFunc
}

// Option is a functional option for configuring an Enricher.
type Option func(*Enricher)

// WithWorkers sets the number of concurrent lookups. Values below one
// select the sequential baseline.
func WithWorkers(n int) Option {
	return func(e *Enricher) {
		e.workers = n
	}
}

// WithProgress sets a callback invoked as lookups complete.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Enricher) {
		e.onProgress = fn
	}
}

// New creates an Enricher. The pacer is shared by all workers.
func New(fetcher ghclient.ActivityFetcher, p pacer.Pacer, opts ...Option) *Enricher {
	e := &Enricher{
		fetcher: fetcher,
		pacer:   p,
		workers: constants.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	if e.workers > constants.MaxWorkers {
		e.workers = constants.MaxWorkers
	}
	if e.pacer == nil {
		e.pacer = pacer.New(constants.DefaultPacingDelay)
	}
	return e
}

// Enrich screens every unique, non-sentinel username in usernames and
// returns a lookup with exactly one entry per username. Failures are
// recorded as their result variant. If ctx is canceled, usernames that were
// not attempted are recorded as transport errors.
func (e *Enricher) Enrich(ctx context.Context, usernames []string) *model.Lookup {
	unique := Unique(usernames)
	lookup := model.NewLookup(len(unique))
	total := len(unique)
	if total == 0 {
		return lookup
	}

	log.Info("screening profiles", "count", total, "workers", e.workers)

	var completed int32

	// Workers never fail; errgroup only bounds concurrency here.
	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	for _, name := range unique {
		g.Go(func() error {
			result := e.fetchOne(ctx, name)
			if !lookup.Insert(name, result) {
				log.Warn("duplicate screening result ignored", "username", name)
			}
			n := int(atomic.AddInt32(&completed, 1))
			if e.onProgress != nil {
				e.onProgress(n, total, name, result)
			}
			return nil
		})
	}
	_ = g.Wait()

	return lookup
}

// fetchOne waits for the pacer and screens a single username. The pacer is
// released only after the fetch has finished.
func (e *Enricher) fetchOne(ctx context.Context, username string) model.ActivityResult {
	if err := e.pacer.Wait(ctx); err != nil {
		return model.TransportError(fmt.Sprintf("not attempted: %v", err))
	}
	defer e.pacer.Done()
	return e.fetcher.FetchActivity(ctx, username)
}

// Unique returns usernames without duplicates, empty values or sentinels,
// in first-seen order.
func Unique(usernames []string) []string {
	seen := make(map[string]bool, len(usernames))
	out := make([]string, 0, len(usernames))
	for _, u := range usernames {
		if u == "" || identity.IsSentinel(u) || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// CollectUsernames normalizes every record's identity and returns the
// unique usernames worth screening.
func CollectUsernames(records []model.ApplicantRecord, normalize func(string) string) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, normalize(r.RawIdentity))
	}
	return Unique(names)
}
