// Package cache provides a small capacity-bounded, TTL-evicted key-value
// cache used for search result memoization.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps keys to values that expire after a fixed TTL. When the cache is
// full, the entry closest to expiry is evicted to make room. Safe for
// concurrent use.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[K]entry[V]

	now func() time.Time
}

// New creates a cache with the given TTL and maximum entry count. A
// capacity of zero or less disables the bound.
func New[K comparable, V any](ttl time.Duration, capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[K]entry[V]),
		now:      time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting expired entries first and then, if
// still over capacity, the live entry closest to expiry.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	if c.capacity > 0 && len(c.entries) >= c.capacity {
		if _, exists := c.entries[key]; !exists {
			var oldest K
			var oldestAt time.Time
			first := true
			for k, e := range c.entries {
				if first || e.expiresAt.Before(oldestAt) {
					oldest, oldestAt, first = k, e.expiresAt, false
				}
			}
			delete(c.entries, oldest)
		}
	}

	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetClock overrides the time source. Test hook.
func (c *Cache[K, V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
