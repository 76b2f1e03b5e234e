// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/pollenboard/internal/metrics"
)

func newMetricsRouter(status int) http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	r.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Hello"))
	})
	return r
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	router := newMetricsRouter(http.StatusTeapot)
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/v1/things/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "abc"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/things/"+id, nil))
		if rec.Code != http.StatusTeapot {
			t.Errorf("status = %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("api_requests_total delta = %v, want 3", got)
	}
}

func TestPrometheusMetrics_DefaultsTo200(t *testing.T) {
	t.Parallel()

	router := newMetricsRouter(http.StatusOK)
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/implicit", "200")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/implicit", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}
}

func TestPrometheusMetrics_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	router := newMetricsRouter(http.StatusOK)
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/path/12345", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got < 1 {
		t.Errorf("unmatched requests should be counted under one label, delta = %v", got)
	}
}

func TestRoutePattern_NoRouteContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	if got := RoutePattern(req); got != "unmatched" {
		t.Errorf("RoutePattern() = %q", got)
	}
}
