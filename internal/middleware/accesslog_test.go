// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/pollenboard/internal/logging"
)

// Not parallel: replaces the global logger.
func TestAccessLog_ServerErrorLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	r := chi.NewRouter()
	r.Use(RequestID, AccessLog)
	r.Get("/boom/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom/7", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}

	checks := map[string]interface{}{
		"level":      "warn",
		"method":     "GET",
		"route":      "/boom/{id}",
		"path":       "/boom/7",
		"status":     float64(http.StatusBadGateway),
		"request_id": "req-123",
		"message":    "HTTP request",
	}
	for key, want := range checks {
		if line[key] != want {
			t.Errorf("%s = %v, want %v", key, line[key], want)
		}
	}
}

// Not parallel: replaces the global logger.
func TestAccessLog_SuccessBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fine", nil))

	// Successful requests log at debug; the default global level is info.
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
