// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/pollenboard/internal/logging"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub tracks live sessions so they can be ended together on shutdown.
type Hub struct {
	mu       sync.Mutex
	sessions map[uint64]context.CancelFunc
	closed   bool
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[uint64]context.CancelFunc)}
}

// add registers a session. It returns false once the hub has shut down.
func (h *Hub) add(id uint64, cancel context.CancelFunc) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[id] = cancel
	return true
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

// SessionCount returns the number of live sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Serve blocks until ctx is done, then ends every live session and refuses
// new ones. It implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	<-ctx.Done()

	count := h.closeAll()
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("sessions_closed", count).
		Msg("websocket hub stopped")
	return ctx.Err()
}

// String names the service in supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// closeAll cancels sessions in ID order and returns how many there were.
func (h *Hub) closeAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true

	ids := make([]uint64, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		h.sessions[id]()
		delete(h.sessions, id)
	}
	return len(ids)
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}
