// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package main is the entry point for the Pollenboard feed server.

Pollenboard serves a paginated community feed of generated images. Records
come from the public upstream image feed (polled as JSON or read as an event
stream) or from a deterministic mock generator, pass through the record
filter, and are returned as JSON pages or relayed live over WebSocket.

# Application Architecture

	RootSupervisor ("pollenboard")
	├── BackgroundSupervisor ("background-layer")
	│   ├── Live hub (open WebSocket sessions)
	│   └── Catalog refresh (text model list)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml, .env and environment
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Upstream client: rate limited, behind a circuit breaker
 4. Feed aggregator and mock generator
 5. Model catalog service
 6. Live hub and relay
 7. HTTP router and server
 8. Supervisor tree and signal handling

# Configuration

The most used settings:

	FEED_MODE=mock|json|stream   Source of page records (default: mock)
	UPSTREAM_FEED_URL            Upstream image feed
	HTTP_PORT                    Listen port (default: 3000)
	LOG_LEVEL / LOG_FORMAT       zerolog level and json|console output

See internal/config for the complete list.

# Endpoints

	GET /api/v1/feed              Feed page (also /feed and /api/pollinations-feed)
	GET /api/v1/feed/live         Live feed over WebSocket
	GET /api/v1/models            Image, text and voice model catalog
	GET /api/v1/proxy/audio       Audio proxy (also /api/proxy-audio)
	GET /api/v1/health[/live|/ready]
	GET /metrics                  Prometheus metrics
	GET /swagger/                 API documentation

# Signal Handling

SIGINT and SIGTERM cancel the root context. Readiness starts failing, open
live sessions are closed, and in-flight requests get ShutdownTimeout to
finish.
*/
package main
