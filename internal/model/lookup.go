package model

import (
	"sort"
	"sync"
)

// Lookup maps canonical usernames to their activity result.
// Insert is safe for concurrent use and never overwrites an existing key.
type Lookup struct {
	mu      sync.RWMutex
	results map[string]ActivityResult
}

// NewLookup creates an empty lookup sized for n usernames.
func NewLookup(n int) *Lookup {
	return &Lookup{results: make(map[string]ActivityResult, n)}
}

// Insert stores result for username if the key is not present yet.
// It returns false when the key was already written.
func (l *Lookup) Insert(username string, result ActivityResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.results[username]; ok {
		return false
	}
	l.results[username] = result
	return true
}

// Get returns the result recorded for username.
func (l *Lookup) Get(username string) (ActivityResult, bool) {
	if l == nil {
		return ActivityResult{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.results[username]
	return r, ok
}

// Len returns the number of usernames in the lookup.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.results)
}

// Usernames returns the keys in sorted order.
func (l *Lookup) Usernames() []string {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	names := make([]string, 0, len(l.results))
	for name := range l.results {
		names = append(names, name)
	}
	l.mu.RUnlock()
	sort.Strings(names)
	return names
}

// CountByOutcome tallies entries per outcome.
func (l *Lookup) CountByOutcome() map[Outcome]int {
	counts := make(map[Outcome]int, len(AllOutcomes))
	if l == nil {
		return counts
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.results {
		counts[r.Outcome]++
	}
	return counts
}
