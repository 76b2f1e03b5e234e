// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package api provides the HTTP surface of the feed service.

Routes:

	GET /api/v1/feed              paged feed (aliases /feed, /api/pollinations-feed)
	GET /api/v1/feed/live         WebSocket live relay
	GET /api/v1/models            image models, text models and voices
	GET /api/v1/proxy/audio?url=  audio proxy for allow-listed hosts
	GET /api/v1/health[/live|/ready]
	GET /metrics                  Prometheus exposition
	GET /swagger/*                Swagger UI

Middleware:

Every request gets a request ID, real client IP, an access log line, panic
recovery and CORS. Route groups add per-IP rate limits (go-chi/httprate),
Prometheus request metrics and, for JSON routes, gzip.

Errors:

JSON endpoints answer errors as {"error": "..."} with a fixed message; the
cause is logged, never returned. The feed endpoint only fails with 500 on a
panic or an unexpected pipeline error, since upstream outages fall back to
mock records. The audio proxy answers with short text bodies and passes a
non-2xx upstream status through.

Only this package maps errors to HTTP status codes.
*/
package api
