// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"net/http"
	"time"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/pollenboard/internal/api.Version=...".
var Version = "dev"

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status   string            `json:"status" example:"healthy"`
	Version  string            `json:"version" example:"1.0.0"`
	FeedMode string            `json:"feed_mode" example:"stream"`
	Breakers map[string]string `json:"breakers"`
	Uptime   float64           `json:"uptime"`
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Reports the feed mode and the state of each upstream circuit breaker. The service degrades to mock records rather than failing, so an open breaker reports "degraded" but still returns 200.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthStatus "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	breakers := make(map[string]string, len(h.breakers))
	status := "healthy"
	for name, b := range h.breakers {
		state := b.BreakerState()
		breakers[name] = state
		if state != "closed" {
			status = "degraded"
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, HealthStatus{
		Status:   status,
		Version:  Version,
		FeedMode: h.feed.Mode().String(),
		Breakers: breakers,
		Uptime:   time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
//
// Upstream outages do not make the service unready since the feed falls back
// to mock records; only draining during shutdown does.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is shutting down"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := !h.draining.Load()
	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "draining"
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, statusCode, map[string]interface{}{
		"status":         status,
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	})
}
