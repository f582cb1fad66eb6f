package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// FrequencyTracker counts request hits per route in memory. The map is
// bounded: once limit distinct routes are tracked, unseen routes are
// dropped instead of grown, and individual counters expire with their
// TTL. Counts reset at process start.
type FrequencyTracker struct {
	mu      sync.Mutex
	counts  *gocache.Cache
	limit   int
	tracked int
}

func NewFrequencyTracker(limit int, ttl time.Duration) *FrequencyTracker {
	t := &FrequencyTracker{
		counts: gocache.New(ttl, 2*ttl),
		limit:  limit,
	}
	t.counts.OnEvicted(func(string, interface{}) {
		t.mu.Lock()
		t.tracked--
		t.mu.Unlock()
	})
	return t
}

// Hit bumps the counter for a route and returns the new count. Returns
// 0 when the tracker is full and the route is not yet tracked.
func (t *FrequencyTracker) Hit(route string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, found := t.counts.Get(route); found {
		next := current.(int64) + 1
		t.counts.Set(route, next, gocache.DefaultExpiration)
		return next
	}
	if t.tracked >= t.limit {
		return 0
	}
	t.tracked++
	t.counts.Set(route, int64(1), gocache.DefaultExpiration)
	return 1
}

// Count reads the current counter for a route without bumping it.
func (t *FrequencyTracker) Count(route string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if current, found := t.counts.Get(route); found {
		return current.(int64)
	}
	return 0
}
