// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

// Package cache provides a generic in-memory TTL cache.
//
// Each cache carries a name used as the cache_type label of the
// cache_hits_total, cache_misses_total and cache_evictions_total metrics.
// Expired entries are dropped lazily on Get and by a periodic sweep; Peek
// still returns them so callers can serve stale data when a refresh fails.
//
// The feed itself is never cached. The cache holds slow-changing reference
// data such as the model catalog.
package cache
