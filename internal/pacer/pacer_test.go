package pacer

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFirstWaitIsImmediate(t *testing.T) {
	p := New(time.Second)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait took %v, expected no delay", elapsed)
	}
	p.Done()
}

func TestConsecutiveLookupsAreSpaced(t *testing.T) {
	const delay = 40 * time.Millisecond
	p := New(delay)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
		p.Done()
	}

	// three lookups span two gaps
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("3 lookups took %v, expected at least %v", elapsed, 2*delay)
	}
}

func TestGapStartsWhenLookupFinishes(t *testing.T) {
	const (
		delay   = 30 * time.Millisecond
		latency = 60 * time.Millisecond
	)

	tests := []struct {
		name    string
		callers int
	}{
		{name: "single caller", callers: 1},
		{name: "four callers", callers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(delay)
			const lookups = 4

			var mu sync.Mutex
			var spans [][2]time.Time

			var wg sync.WaitGroup
			next := make(chan struct{}, lookups)
			for i := 0; i < lookups; i++ {
				next <- struct{}{}
			}
			close(next)

			for c := 0; c < tt.callers; c++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range next {
						if err := p.Wait(context.Background()); err != nil {
							t.Errorf("Wait() error: %v", err)
							return
						}
						begin := time.Now()
						time.Sleep(latency)
						end := time.Now()
						mu.Lock()
						spans = append(spans, [2]time.Time{begin, end})
						mu.Unlock()
						p.Done()
					}
				}()
			}
			wg.Wait()

			if len(spans) != lookups {
				t.Fatalf("recorded %d lookups, want %d", len(spans), lookups)
			}
			for i := 1; i < len(spans); i++ {
				gap := spans[i][0].Sub(spans[i-1][1])
				if gap < delay {
					t.Errorf("lookup %d started %v after the previous one finished, want at least %v", i, gap, delay)
				}
			}
		})
	}
}

func TestZeroDelayDisablesPacing(t *testing.T) {
	p := New(0)

	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	for i := 0; i < 50; i++ {
		p.Done()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("unpaced waits took %v", elapsed)
	}
	if p.Delay() != 0 {
		t.Errorf("Delay() = %v, want 0", p.Delay())
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	tests := []struct {
		name string
		done bool
	}{
		{name: "waiting for the gap", done: true},
		{name: "waiting for the slot", done: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(time.Hour)
			if err := p.Wait(context.Background()); err != nil {
				t.Fatalf("first Wait() error: %v", err)
			}
			if tt.done {
				p.Done()
			}

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			if err := p.Wait(ctx); err == nil {
				t.Error("expected error from canceled context")
			}
		})
	}
}

func TestCanceledWaitReleasesSlot(t *testing.T) {
	const delay = 40 * time.Millisecond
	p := New(delay)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() error: %v", err)
	}
	p.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Wait(ctx)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	if err := p.Wait(waitCtx); err != nil {
		t.Fatalf("Wait() after a canceled waiter: %v", err)
	}
	p.Done()
}
