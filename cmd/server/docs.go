// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

// Package main provides the Pollenboard HTTP server
//
// @title Pollenboard Feed API
// @version 1.0
// @description Community feed of generated images with a live relay, model catalog and audio proxy.
// @description
// @description ## Feed Sources
// @description
// @description Pages are assembled from the upstream image feed (JSON poll or event stream)
// @description or from the built-in mock generator. When the upstream is unavailable or yields
// @description nothing displayable, mock records are served instead and the `X-Feed-Source`
// @description response header reports `mock`.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 120 requests per minute per IP address.
// @description Rate limit headers are included in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description { "error": "Human-readable error message" }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/pollenboard/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Feed
// @tag.description Paginated and live community feed of generated images
//
// @tag.name Models
// @tag.description Image, text and voice model catalog
//
// @tag.name Proxy
// @tag.description Same-origin proxy for generated audio
//
// @tag.name Health
// @tag.description Liveness, readiness and dependency status
package main
