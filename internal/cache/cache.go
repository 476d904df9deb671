// Package cache provides a small in-memory TTL cache used to avoid
// recomputing insights on every request.
package cache

import (
	"sync"
	"time"
)

// Cache stores values by key with a fixed time-to-live.
type Cache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[T]
	now     func() time.Time
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// New creates a cache whose entries expire after ttl.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any existing entry.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate removes the entry for key if present.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
