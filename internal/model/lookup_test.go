package model

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestLookupInsertIsWriteOnce(t *testing.T) {
	l := NewLookup(1)

	if !l.Insert("alice", Active(ActivityCounts{PublicRepos: 1}, "")) {
		t.Fatal("first Insert should succeed")
	}
	if l.Insert("alice", RateLimited()) {
		t.Error("second Insert should be rejected")
	}

	r, ok := l.Get("alice")
	if !ok || r.Outcome != OutcomeActive {
		t.Errorf("Get(alice) = %+v, %v; want active", r, ok)
	}
}

func TestLookupConcurrentInsert(t *testing.T) {
	l := NewLookup(0)
	var wins int32

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if l.Insert("shared", TransportError(fmt.Sprintf("attempt %d", i))) {
				atomic.AddInt32(&wins, 1)
			}
			l.Insert(fmt.Sprintf("user-%d", i), NotFound())
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("shared key written %d times, want 1", wins)
	}
	if l.Len() != 51 {
		t.Errorf("Len() = %d, want 51", l.Len())
	}
}

func TestLookupNilSafe(t *testing.T) {
	var l *Lookup

	if _, ok := l.Get("alice"); ok {
		t.Error("nil lookup should report missing keys")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if l.Usernames() != nil {
		t.Error("Usernames() on nil lookup should be nil")
	}
	if len(l.CountByOutcome()) != 0 {
		t.Error("CountByOutcome() on nil lookup should be empty")
	}
}

func TestLookupUsernamesAndCounts(t *testing.T) {
	l := NewLookup(3)
	l.Insert("carol", NotFound())
	l.Insert("alice", Active(ActivityCounts{RecentEvents: 1}, ""))
	l.Insert("bob", NotFound())

	names := l.Usernames()
	want := []string{"alice", "bob", "carol"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Usernames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	counts := l.CountByOutcome()
	if counts[OutcomeNotFound] != 2 || counts[OutcomeActive] != 1 {
		t.Errorf("CountByOutcome() = %v", counts)
	}
}
