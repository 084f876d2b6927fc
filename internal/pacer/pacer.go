// Package pacer enforces the minimum gap between outbound profile lookups,
// independent of how many workers issue them.
package pacer

import (
	"context"
	"time"
)

// Pacer gates profile lookups. Wait blocks until the caller may start a
// lookup; every successful Wait must be paired with a Done once the lookup
// has finished.
type Pacer interface {
	Wait(ctx context.Context) error
	Done()
}

// Limiter admits one lookup at a time and starts the next one no sooner
// than delay after the previous lookup finished. A single Limiter is shared
// by all workers, so the request rate never exceeds sequential pacing.
type Limiter struct {
	delay time.Duration

	// slot holds a token while a lookup is in flight. nil when pacing is off.
	slot chan struct{}

	// lastDone is only touched by the slot holder.
	lastDone time.Time
}

// New creates a Limiter. A zero delay disables pacing.
func New(delay time.Duration) *Limiter {
	l := &Limiter{delay: delay}
	if delay > 0 {
		l.slot = make(chan struct{}, 1)
	}
	return l
}

// Wait blocks until no other lookup is in flight and delay has passed since
// the last one finished. The first Wait returns immediately.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.slot == nil {
		return ctx.Err()
	}

	select {
	case l.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if l.lastDone.IsZero() {
		return nil
	}
	wait := time.Until(l.lastDone.Add(l.delay))
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		<-l.slot
		return ctx.Err()
	}
}

// Done records the end of the current lookup and admits the next waiter.
func (l *Limiter) Done() {
	if l.slot == nil {
		return
	}
	l.lastDone = time.Now()
	<-l.slot
}

// Delay returns the configured gap.
func (l *Limiter) Delay() time.Duration {
	return l.delay
}

// Ensure Limiter implements Pacer interface.
var _ Pacer = (*Limiter)(nil)
