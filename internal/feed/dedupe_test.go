// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"fmt"
	"testing"
)

func TestRecordKey(t *testing.T) {
	t.Parallel()

	checkStringEqual(t, "url key", RecordKey(Record{ImageURL: "https://x/a.png", Seed: 3}), "https://x/a.png")
	checkStringEqual(t, "seed key", RecordKey(Record{Seed: 3}), "seed:3")
}

func TestDeduper(t *testing.T) {
	t.Parallel()

	d := NewDeduper(3)
	rec := func(i int) Record { return Record{ImageURL: fmt.Sprintf("https://x/%d.png", i)} }

	for i := 0; i < 3; i++ {
		if !d.Add(rec(i)) {
			t.Errorf("record %d should be new", i)
		}
	}
	if d.Add(rec(1)) {
		t.Error("record 1 should be a duplicate")
	}

	// evicts record 0
	d.Add(rec(3))
	checkIntEqual(t, "len", d.Len(), 3)
	if !d.Add(rec(0)) {
		t.Error("record 0 should have been evicted")
	}
	if d.Add(rec(3)) {
		t.Error("record 3 should still be remembered")
	}
}

func TestDeduper_DefaultWindow(t *testing.T) {
	t.Parallel()

	d := NewDeduper(0)
	for i := 0; i < DefaultDedupeWindow+50; i++ {
		d.Add(Record{Seed: int64(i)})
	}
	checkIntEqual(t, "len", d.Len(), DefaultDedupeWindow)
}
