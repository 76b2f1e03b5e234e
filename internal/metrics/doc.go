// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with promauto at package init and exposed at
the /metrics endpoint in Prometheus text format:

	curl http://localhost:8077/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint (chi route pattern), status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)

Feed Metrics:
  - feed_pages_served_total: Pages assembled (counter)
    Labels: source (mock, json, stream), mode (configured mode)
  - feed_page_items: Records per page (histogram)
  - feed_records_collected_total: Displayable upstream records (counter)
  - feed_records_dropped_total: Rejected candidates (counter)
    Labels: reason (missing_image_url, missing_prompt, nsfw, child, mature, private, malformed)
  - feed_fallbacks_total: Pages served from mock data after an upstream miss (counter)
    Labels: reason (unavailable, empty)
  - upstream_fetch_duration_seconds: Collection window duration (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

Cache and WebSocket Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total (cache_type label)
  - websocket_connections, websocket_messages_sent_total, websocket_errors_total

Example PromQL:

	# Share of pages served from mock data
	sum(rate(feed_pages_served_total{source="mock"}[5m])) / sum(rate(feed_pages_served_total[5m]))

	# Upstream p95 collection time
	histogram_quantile(0.95, rate(upstream_fetch_duration_seconds_bucket[5m]))

# Cardinality

Endpoint labels use the chi route pattern rather than the raw path, so query
strings and path parameters never create new series.
*/
package metrics
