// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/pollenboard/internal/feed"
	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/metrics"
)

// EndReason says why a live session ended.
type EndReason string

const (
	EndSessionTimeout EndReason = "session_timeout"
	EndClientClosed   EndReason = "client_closed"
	EndUpstreamEnded  EndReason = "upstream_ended"
	EndFallback       EndReason = "fallback"
	EndMockComplete   EndReason = "mock_complete"
	EndShutdown       EndReason = "shutdown"
)

// MockSource produces filtered mock records.
type MockSource interface {
	MockBatch(count int, variant bool) []feed.Record
}

// RelayConfig tunes live sessions.
type RelayConfig struct {
	// SessionTimeout bounds every session. Default: 60s
	SessionTimeout time.Duration

	// FirstRecordTimeout is how long to wait for the first upstream record
	// before falling back to mock records. Default: 3s
	FirstRecordTimeout time.Duration

	// JSONBudget bounds the single fetch made in JSON mode. Default: 3s
	JSONBudget time.Duration

	// FallbackBatch is the number of mock records sent on fallback. Default: 10
	FallbackBatch int

	// DedupeWindow is the number of recent keys remembered. Default: 200
	DedupeWindow int
}

// DefaultRelayConfig returns the production tuning.
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		SessionTimeout:     60 * time.Second,
		FirstRecordTimeout: 3 * time.Second,
		JSONBudget:         3 * time.Second,
		FallbackBatch:      10,
		DedupeWindow:       feed.DefaultDedupeWindow,
	}
}

// Relay forwards displayable upstream records to WebSocket clients, one
// upstream connection per session.
type Relay struct {
	cfg      RelayConfig
	upstream feed.Upstream
	mock     MockSource
	hub      *Hub
}

// NewRelay creates a Relay. upstream may be nil, in which case every
// non-mock session falls back immediately. hub may be nil.
func NewRelay(cfg RelayConfig, upstream feed.Upstream, mock MockSource, hub *Hub) *Relay {
	def := DefaultRelayConfig()
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = def.SessionTimeout
	}
	if cfg.FirstRecordTimeout <= 0 {
		cfg.FirstRecordTimeout = def.FirstRecordTimeout
	}
	if cfg.JSONBudget <= 0 {
		cfg.JSONBudget = def.JSONBudget
	}
	if cfg.FallbackBatch <= 0 {
		cfg.FallbackBatch = def.FallbackBatch
	}
	if cfg.DedupeWindow <= 0 {
		cfg.DedupeWindow = def.DedupeWindow
	}
	return &Relay{cfg: cfg, upstream: upstream, mock: mock, hub: hub}
}

// Serve runs one live session on an upgraded connection and blocks until it
// ends. The connection is closed on return.
func (r *Relay) Serve(ctx context.Context, conn *websocket.Conn, mode feed.SourceMode) EndReason {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.SessionTimeout)
	defer cancel()

	s := newSession(conn)
	if r.hub != nil {
		if !r.hub.add(s.id, cancel) {
			s.start()
			s.finish()
			return EndShutdown
		}
		defer r.hub.remove(s.id)
	}

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	log := logging.Ctx(ctx).With().Uint64("session_id", s.id).Str("mode", mode.String()).Logger()
	log.Debug().Msg("Live session started")
	start := time.Now()

	s.start()
	var reason EndReason
	switch mode {
	case feed.ModeMock:
		reason = r.relayMock(ctx, s)
	case feed.ModeJSONPoll:
		reason = r.relayJSON(ctx, s)
	default:
		reason = r.relayStream(ctx, s)
	}
	s.finish()

	log.Debug().Str("reason", string(reason)).Dur("duration", time.Since(start)).Msg("Live session ended")
	return reason
}

func (r *Relay) relayMock(ctx context.Context, s *session) EndReason {
	for _, rec := range r.mock.MockBatch(r.cfg.FallbackBatch, true) {
		if !s.enqueue(ctx, Message{Type: MessageTypeRecord, Data: rec}) {
			return interruptedReason(ctx, s)
		}
	}
	return EndMockComplete
}

func (r *Relay) relayJSON(ctx context.Context, s *session) EndReason {
	if r.upstream == nil {
		return r.fallback(ctx, s)
	}
	candidates, err := r.upstream.FetchJSON(ctx, r.cfg.JSONBudget)
	if err != nil {
		if ctx.Err() != nil {
			return interruptedReason(ctx, s)
		}
		return r.fallback(ctx, s)
	}

	dedupe := feed.NewDeduper(r.cfg.DedupeWindow)
	sent := 0
	for _, cand := range candidates {
		rec, ok := feed.AcceptCandidate(cand, dedupe)
		if !ok {
			continue
		}
		if !s.enqueue(ctx, Message{Type: MessageTypeRecord, Data: rec}) {
			return interruptedReason(ctx, s)
		}
		sent++
	}
	if sent == 0 {
		return r.fallback(ctx, s)
	}
	return EndUpstreamEnded
}

func (r *Relay) relayStream(ctx context.Context, s *session) EndReason {
	if r.upstream == nil {
		return r.fallback(ctx, s)
	}
	streamCtx, cancelStream := context.WithCancel(ctx)
	defer cancelStream()

	stream, err := r.upstream.Stream(streamCtx, r.cfg.SessionTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return interruptedReason(ctx, s)
		}
		return r.fallback(ctx, s)
	}

	firstRecord := time.NewTimer(r.cfg.FirstRecordTimeout)
	defer firstRecord.Stop()
	firstC := firstRecord.C

	dedupe := feed.NewDeduper(r.cfg.DedupeWindow)
	received := false
	for {
		select {
		case <-ctx.Done():
			return interruptedReason(ctx, s)
		case <-s.clientGone:
			return EndClientClosed
		case <-s.writerGone:
			return EndClientClosed
		case <-firstC:
			return r.fallback(ctx, s)
		case cand, ok := <-stream:
			if !ok {
				if ctx.Err() != nil {
					return interruptedReason(ctx, s)
				}
				if !received {
					return r.fallback(ctx, s)
				}
				return EndUpstreamEnded
			}
			received = true
			firstC = nil
			rec, ok := feed.AcceptCandidate(cand, dedupe)
			if !ok {
				continue
			}
			if !s.enqueue(ctx, Message{Type: MessageTypeRecord, Data: rec}) {
				return interruptedReason(ctx, s)
			}
		}
	}
}

// fallback sends one mock batch tagged as a fallback. The session ends
// afterwards.
func (r *Relay) fallback(ctx context.Context, s *session) EndReason {
	metrics.RecordFallback(feed.FallbackUnavailable)
	batch := r.mock.MockBatch(r.cfg.FallbackBatch, false)
	if !s.enqueue(ctx, Message{Type: MessageTypeFallback, Data: batch}) {
		return interruptedReason(ctx, s)
	}
	return EndFallback
}

func interruptedReason(ctx context.Context, s *session) EndReason {
	select {
	case <-s.clientGone:
		return EndClientClosed
	case <-s.writerGone:
		return EndClientClosed
	default:
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return EndSessionTimeout
	}
	return EndShutdown
}
