// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/pollenboard/internal/catalog"
	"github.com/tomtom215/pollenboard/internal/config"
	"github.com/tomtom215/pollenboard/internal/feed"
	"github.com/tomtom215/pollenboard/internal/logging"
	ws "github.com/tomtom215/pollenboard/internal/websocket"
)

// FeedBuilder assembles feed pages.
type FeedBuilder interface {
	BuildPage(ctx context.Context, req feed.Request) (feed.Page, error)
	Mode() feed.SourceMode
}

// LiveRelay runs live feed sessions on upgraded connections.
type LiveRelay interface {
	Serve(ctx context.Context, conn *websocket.Conn, mode feed.SourceMode) ws.EndReason
}

// ModelLister returns the model catalog.
type ModelLister interface {
	Models(ctx context.Context) catalog.Models
}

// BreakerReporter exposes a circuit breaker state for health output.
type BreakerReporter interface {
	BreakerState() string
}

// Dependencies groups the components the handlers call into. Feed and
// Models are required; Relay may be nil, which disables the live endpoint.
type Dependencies struct {
	Feed   FeedBuilder
	Relay  LiveRelay
	Models ModelLister

	// Breakers are reported by the health endpoint, keyed by name.
	Breakers map[string]BreakerReporter

	// ProxyClient fetches audio. Defaults to a client with the configured
	// proxy timeout that refuses redirects to hosts outside the allow-list.
	ProxyClient *http.Client
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrader
//   - handlers_helpers.go: shared response and parameter helpers
//   - handlers_feed.go: paged feed and live relay
//   - handlers_models.go: model catalog
//   - handlers_proxy.go: audio proxy
//   - handlers_health.go: health probes
type Handler struct {
	config       *config.Config
	feed         FeedBuilder
	relay        LiveRelay
	models       ModelLister
	breakers     map[string]BreakerReporter
	proxyClient  *http.Client
	allowedHosts map[string]struct{}
	startTime    time.Time
	draining     atomic.Bool
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(cfg, api.Dependencies{Feed: aggregator, Relay: relay, Models: catalogSvc})
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":3000", router.SetupChi())
func NewHandler(cfg *config.Config, deps Dependencies) *Handler {
	h := &Handler{
		config:       cfg,
		feed:         deps.Feed,
		relay:        deps.Relay,
		models:       deps.Models,
		breakers:     deps.Breakers,
		allowedHosts: make(map[string]struct{}, len(cfg.Proxy.AllowedHosts)),
		startTime:    time.Now(),
	}
	for _, host := range cfg.Proxy.AllowedHosts {
		h.allowedHosts[normalizeHost(host)] = struct{}{}
	}

	h.proxyClient = deps.ProxyClient
	if h.proxyClient == nil {
		h.proxyClient = &http.Client{
			Timeout:       cfg.Proxy.Timeout,
			CheckRedirect: h.checkProxyRedirect,
		}
	}
	return h
}

// SetDraining marks the server as shutting down; readiness then fails so
// load balancers stop routing new traffic.
func (h *Handler) SetDraining(draining bool) {
	h.draining.Store(draining)
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// CORS origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Legitimate browser WebSockets always include Origin.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", logging.SanitizeValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
