// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import "strconv"

// DefaultDedupeWindow is the number of keys a Deduper remembers.
const DefaultDedupeWindow = 200

// RecordKey identifies a record for duplicate suppression: its imageURL, or
// its seed when the URL is empty.
func RecordKey(r Record) string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return "seed:" + strconv.FormatInt(r.Seed, 10)
}

// Deduper remembers the most recent keys in a bounded FIFO window.
// It is not safe for concurrent use; each session or page owns one.
type Deduper struct {
	seen  map[string]struct{}
	order []string
	max   int
}

// NewDeduper creates a Deduper remembering up to size keys.
func NewDeduper(size int) *Deduper {
	if size <= 0 {
		size = DefaultDedupeWindow
	}
	return &Deduper{
		seen:  make(map[string]struct{}, size),
		order: make([]string, 0, size),
		max:   size,
	}
}

// Add records r and reports whether it was new.
func (d *Deduper) Add(r Record) bool {
	key := RecordKey(r)
	if _, ok := d.seen[key]; ok {
		return false
	}
	if len(d.order) >= d.max {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}
	d.seen[key] = struct{}{}
	d.order = append(d.order, key)
	return true
}

// Len returns the number of remembered keys.
func (d *Deduper) Len() int {
	return len(d.order)
}
