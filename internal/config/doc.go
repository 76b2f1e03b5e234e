// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package config provides centralized configuration management for Pollenboard.

# Configuration Sources

Configuration is layered with Koanf v2, later layers winning:
  - Struct defaults (defaultConfig)
  - An optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/pollenboard/config.yaml
  - Environment variables, including those read from a .env file

Only environment variables listed in the mapping table are read. Variables
loaded from .env never replace ones already present in the environment.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (or PORT): bind address (default: 0.0.0.0:3000)
  - READ_TIMEOUT, WRITE_TIMEOUT, SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging, production

Feed:
  - FEED_MODE: mock, json, stream (default: mock)
  - FEED_OVERFETCH, FEED_OFFSET_MULTIPLIER, FEED_PAGE_CEILING
  - FEED_DEFAULT_LIMIT, FEED_MAX_LIMIT
  - FEED_JSON_BUDGET, FEED_STREAM_BUDGET, FEED_FIRST_RECORD_TIMEOUT
  - FEED_LIVE_SESSION

Upstream:
  - UPSTREAM_FEED_URL, UPSTREAM_API_KEY
  - UPSTREAM_RATE_PER_SECOND, UPSTREAM_BURST

Catalog and proxy:
  - CATALOG_TEXT_MODELS_URL, CATALOG_CACHE_TTL, CATALOG_REFRESH_INTERVAL, CATALOG_TIMEOUT
  - PROXY_ALLOWED_HOSTS (comma-separated), PROXY_TIMEOUT

Security and logging:
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load returns an error when a value is out of range: an unknown feed mode,
an overfetch outside 2..3, a stream budget outside 3s..6s, a non-HTTP
upstream URL, a placeholder API key, or an unknown log level.
*/
package config
