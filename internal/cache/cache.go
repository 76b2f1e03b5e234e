// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/pollenboard/internal/metrics"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 5 * time.Minute

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a thread-safe in-memory cache with TTL support. Hits, misses and
// evictions are also exported to Prometheus under the cache name.
type Cache[V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	now     func() time.Time

	statsMu sync.RWMutex
	stats   Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries expire after ttl. A background goroutine
// sweeps expired entries every DefaultCleanupInterval until Close is called.
//
// Example:
//
//	c := cache.New[Catalog]("catalog", 10*time.Minute)
//	defer c.Close()
//	c.Set("models", catalog)
//	if v, ok := c.Get("models"); ok {
//	    // Use cached value
//	}
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return newCache[V](name, ttl, DefaultCleanupInterval, time.Now)
}

func newCache[V any](name string, ttl, cleanupInterval time.Duration, now func() time.Time) *Cache[V] {
	c := &Cache[V]{
		name:    name,
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     now,
		stats:   Stats{LastCleanup: now()},
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop(cleanupInterval)
	return c
}

// Name returns the metrics label of the cache.
func (c *Cache[V]) Name() string {
	return c.name
}

// Get retrieves a value if present and not expired. Expired entries are
// removed and counted as a miss and an eviction.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return zero, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// re-check under the write lock; a concurrent Set may have refreshed it
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEvictions(1)
		return zero, false
	}

	c.recordHit()
	return entry.Data, true
}

// Peek returns a value even if it has expired, without touching statistics.
// It lets callers serve stale data when a refresh fails.
func (c *Cache[V]) Peek(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry.Data, ok
}

// Set stores a value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry[V]{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}

// Delete removes a specific cache entry by key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
	if existed {
		c.recordEvictions(1)
	}
}

// Clear removes all entries from the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry[V])
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = 0
	c.statsMu.Unlock()
	c.recordEvictions(evictions)
}

// GetStats returns a snapshot of current cache statistics.
func (c *Cache[V]) GetStats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the background cleanup goroutine. It is safe to call more
// than once.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanupLoop periodically removes expired entries
func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries
func (c *Cache[V]) cleanup() {
	now := c.now()
	c.mu.Lock()
	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.stats.LastCleanup = now
	c.statsMu.Unlock()
	c.recordEvictions(evictions)
}

func (c *Cache[V]) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache[V]) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func (c *Cache[V]) recordEvictions(n int64) {
	if n == 0 {
		return
	}
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}
