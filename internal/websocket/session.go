// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Message types for WebSocket communication
const (
	MessageTypeRecord   = "record"
	MessageTypeFallback = "fallback"
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// sessionIDCounter hands out monotonically increasing session IDs.
var sessionIDCounter atomic.Uint64

// session owns one upgraded connection. The relay goroutine produces into
// send; writePump is the only writer on conn and readPump the only reader.
type session struct {
	id   uint64
	conn *websocket.Conn
	send chan Message

	// done tells writePump to flush and close.
	done     chan struct{}
	doneOnce sync.Once

	// clientGone closes when readPump exits.
	clientGone chan struct{}
	// writerGone closes when writePump exits.
	writerGone chan struct{}
}

func newSession(conn *websocket.Conn) *session {
	return &session{
		id:         sessionIDCounter.Add(1),
		conn:       conn,
		send:       make(chan Message, sendBuffer),
		done:       make(chan struct{}),
		clientGone: make(chan struct{}),
		writerGone: make(chan struct{}),
	}
}

func (s *session) start() {
	go s.writePump()
	go s.readPump()
}

// enqueue hands msg to writePump, giving up when ctx ends or the writer
// has exited.
func (s *session) enqueue(ctx context.Context, msg Message) bool {
	select {
	case s.send <- msg:
		return true
	case <-ctx.Done():
		return false
	case <-s.writerGone:
		return false
	}
}

// finish flushes queued messages, sends a close frame and closes the
// connection. It blocks until writePump has exited.
func (s *session) finish() {
	s.doneOnce.Do(func() { close(s.done) })
	<-s.writerGone
	_ = s.conn.Close() // Explicitly ignore error - best-effort cleanup
}

// readPump watches the connection for client pings and for the client
// going away.
func (s *session) readPump() {
	defer close(s.clientGone)

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logging.Debug().Err(err).Uint64("session_id", s.id).Msg("unexpected websocket close error")
				metrics.WSErrors.WithLabelValues("read").Inc()
			}
			return
		}

		var msg Message
		if json.Unmarshal(data, &msg) != nil {
			continue
		}
		if msg.Type == MessageTypePing {
			select {
			case s.send <- Message{Type: MessageTypePong}:
			default:
			}
		}
	}
}

// writePump writes queued messages and keeps the connection alive with
// pings until done is closed, then drains the queue and sends a close frame.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(s.writerGone)
	}()

	for {
		select {
		case msg := <-s.send:
			if !s.write(msg) {
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				metrics.WSErrors.WithLabelValues("ping").Inc()
				return
			}

		case <-s.done:
			for {
				select {
				case msg := <-s.send:
					if !s.write(msg) {
						return
					}
				default:
					_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = s.conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

func (s *session) write(msg Message) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		logging.Error().Err(err).Str("type", msg.Type).Msg("failed to encode websocket message")
		metrics.WSErrors.WithLabelValues("encode").Inc()
		return true
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		metrics.WSErrors.WithLabelValues("write").Inc()
		return false
	}
	metrics.WSMessagesSent.Inc()
	return true
}
