// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"strings"
	"testing"
)

// checkStringEqual checks that got equals want, failing if not
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkIntEqual checks that got equals want
func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkDisplayable fails for every record that must not be shown
func checkDisplayable(t *testing.T, records []Record) {
	t.Helper()
	for i, r := range records {
		if !IsDisplayable(r) {
			t.Errorf("record %d is not displayable: %+v", i, r)
		}
		if strings.TrimSpace(r.Status) == "" {
			t.Errorf("record %d has empty status", i)
		}
		if r.TimingInfo == nil {
			t.Errorf("record %d has nil timingInfo", i)
		}
		if r.Width <= 0 || r.Height <= 0 {
			t.Errorf("record %d has invalid dimensions %dx%d", i, r.Width, r.Height)
		}
	}
}

// checkThemesFrom fails unless every prompt was built from a theme in pool
func checkThemesFrom(t *testing.T, records []Record, pool []string) {
	t.Helper()
	allowed := make(map[string]bool, len(pool))
	for _, theme := range pool {
		allowed[theme] = true
	}
	for i, r := range records {
		if theme := ThemeOf(r.Prompt); !allowed[theme] {
			t.Errorf("record %d prompt %q not built from expected pool", i, r.Prompt)
		}
	}
}
