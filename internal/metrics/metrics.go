// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the feed service:
// - API endpoint latency and throughput
// - Feed page assembly (source, fallbacks, dropped records)
// - Upstream fetches and circuit breakers
// - Catalog cache efficiency
// - Live feed WebSocket sessions

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Feed Metrics
	FeedPagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pages_served_total",
			Help: "Total number of feed pages assembled",
		},
		[]string{"source", "mode"}, // source: mock, json, stream
	)

	FeedPageItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_page_items",
			Help:    "Number of records returned per feed page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	FeedRecordsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_records_collected_total",
			Help: "Total number of displayable records collected",
		},
		[]string{"source"},
	)

	FeedRecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_records_dropped_total",
			Help: "Total number of candidate records rejected before display",
		},
		[]string{"reason"},
	)

	FeedFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fallbacks_total",
			Help: "Total number of pages served from mock data after an upstream miss",
		},
		[]string{"reason"}, // "unavailable", "empty"
	)

	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Duration of upstream feed collection windows",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 4, 5, 6, 8},
		},
		[]string{"mode"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active live feed WebSocket sessions",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFeedPage records one assembled feed page.
func RecordFeedPage(source, mode string, items int) {
	FeedPagesServed.WithLabelValues(source, mode).Inc()
	FeedPageItems.Observe(float64(items))
}

// RecordUpstreamFetch records the wall time of one upstream collection window
// and how many displayable records it yielded.
func RecordUpstreamFetch(mode string, duration time.Duration, collected int) {
	UpstreamFetchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	FeedRecordsCollected.WithLabelValues(mode).Add(float64(collected))
}

// RecordDroppedRecord counts a rejected candidate under its rejection reason.
func RecordDroppedRecord(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	FeedRecordsDropped.WithLabelValues(reason).Inc()
}

// RecordFallback counts a page that was served from mock data.
func RecordFallback(reason string) {
	FeedFallbacks.WithLabelValues(reason).Inc()
}
