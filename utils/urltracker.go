package utils

import (
	"net/url"
	"strings"
	"sync"
)

// URLTracker counts how many times each target URL was queued in one run.
// URLs are compared after normalisation, so "https://X/hotel/a#top" and
// "https://x/hotel/a" count as the same target.
type URLTracker struct {
	mu     sync.Mutex
	counts map[string]int
	order  []string
}

// NewURLTracker creates a new tracker
func NewURLTracker() *URLTracker {
	return &URLTracker{counts: make(map[string]int)}
}

// Add records raw and reports whether it is the first occurrence.
func (t *URLTracker) Add(raw string) bool {
	key := normalizeURL(raw)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[key]++
	if t.counts[key] == 1 {
		t.order = append(t.order, key)
		return true
	}
	return false
}

// Duplicates returns the normalised URLs seen more than once, in first-seen order.
func (t *URLTracker) Duplicates() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var dups []string
	for _, k := range t.order {
		if t.counts[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}

// Count returns the number of distinct URLs tracked
func (t *URLTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.counts)
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}
