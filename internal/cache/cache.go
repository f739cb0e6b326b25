// Package cache holds generated answers for a short window so repeat
// lookups of the same record skip the generation call. It is a latency
// optimization, not a correctness mechanism; misses are never errors.
package cache

import (
	"context"
	"sync"
	"time"
)

// AnswerKey builds the cache key for a resolved record id.
func AnswerKey(recordID string) string {
	return "ans:" + recordID
}

// AnswerCache stores generated text keyed by record id.
type AnswerCache interface {
	// Get returns the cached value and true when the key is present and
	// younger than the TTL.
	Get(ctx context.Context, key string) (string, bool)
	// Set stores the value with the current timestamp, overwriting any
	// prior entry.
	Set(ctx context.Context, key, value string)
}

type memoryEntry struct {
	value    string
	storedAt time.Time
}

// memoryCache is the process-local implementation: lazy expiry on read,
// no background eviction. Growth within a process lifetime is accepted.
type memoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an in-process answer cache with the given TTL.
func NewMemoryCache(ttl time.Duration) AnswerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

func (c *memoryCache) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, storedAt: c.now()}
}
