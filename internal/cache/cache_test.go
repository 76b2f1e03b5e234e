// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/pollenboard/internal/metrics"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, name string, ttl time.Duration) (*Cache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := newCache[string](name, ttl, time.Hour, clock.Now)
	t.Cleanup(c.Close)
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, "basic", time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(t, "expiration", 100*time.Millisecond)

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist immediately")
	}

	clock.Advance(150 * time.Millisecond)
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestCachePeekReturnsStale(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(t, "peek", time.Second)

	c.Set("models", "stale-but-useful")
	clock.Advance(time.Hour)

	v, ok := c.Peek("models")
	if !ok || v != "stale-but-useful" {
		t.Errorf("Peek = %q, %v", v, ok)
	}
	if stats := c.GetStats(); stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("Peek should not touch stats, got %+v", stats)
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(t, "custom-ttl", time.Minute)

	c.SetWithTTL("short", "v", time.Second)
	c.Set("long", "v")
	clock.Advance(2 * time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("short entry should have expired")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("long entry should still be valid")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, "delete-clear", time.Minute)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), "v")
	}
	c.Delete("k0")
	c.Delete("missing")
	if stats := c.GetStats(); stats.TotalKeys != 4 || stats.Evictions != 1 {
		t.Errorf("after delete: %+v", stats)
	}

	c.Clear()
	stats := c.GetStats()
	if stats.TotalKeys != 0 || stats.Evictions != 5 {
		t.Errorf("after clear: %+v", stats)
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(t, "cleanup", time.Second)

	c.Set("a", "1")
	c.SetWithTTL("b", "2", time.Hour)
	clock.Advance(time.Minute)
	c.cleanup()

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("expected 1 key after cleanup, got %d", stats.TotalKeys)
	}
	if !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.Now())
	}
}

func TestCacheHitRateAndMetrics(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, "hitrate-test", time.Minute)

	if c.HitRate() != 0 {
		t.Errorf("empty cache hit rate = %v", c.HitRate())
	}

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("nope")

	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate = %v, want 75", got)
	}
	if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("hitrate-test")); got != 3 {
		t.Errorf("cache_hits_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("hitrate-test")); got != 1 {
		t.Errorf("cache_misses_total = %v, want 1", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, "concurrent", time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key%d", j%10)
				c.Set(key, fmt.Sprint(id))
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if stats := c.GetStats(); stats.TotalKeys != 10 {
		t.Errorf("expected 10 keys, got %d", stats.TotalKeys)
	}
}

func TestCacheCloseIdempotent(t *testing.T) {
	t.Parallel()
	c := New[int]("close", time.Minute)
	c.Close()
	c.Close()
	if c.Name() != "close" {
		t.Errorf("Name() = %q", c.Name())
	}
}
