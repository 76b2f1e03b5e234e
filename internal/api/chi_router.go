// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/pollenboard/internal/config"
	"github.com/tomtom215/pollenboard/internal/middleware"
)

// compressionLevel is the gzip level used by chi's Compress middleware.
const compressionLevel = 5

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router using the security settings from cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Feed Endpoints
	// ========================
	// Compression is scoped to JSON routes; it would buffer WebSocket
	// upgrades and already-compressed audio for nothing.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

		r.Get("/api/v1/feed", router.handler.Feed)
		r.Get("/feed", router.handler.Feed)
		r.Get("/api/pollinations-feed", router.handler.Feed)
		r.Get("/api/v1/models", router.handler.Models)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWebSocket())
		r.Use(middleware.PrometheusMetrics)
		r.Get("/api/v1/feed/live", router.handler.LiveFeed)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitProxy())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Get("/api/v1/proxy/audio", router.handler.AudioProxy)
		r.Get("/api/proxy-audio", router.handler.AudioProxy)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
