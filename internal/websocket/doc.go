// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package websocket relays the live image feed to browser clients.

Each WebSocket session opens its own upstream connection and forwards every
displayable record as it arrives. Records pass the same normalization as the
paged feed and are deduplicated by imageURL (or seed) over a window of 200
keys.

Key Components:

  - Relay: runs one session per upgraded connection
  - Hub: tracks live sessions so shutdown can end them together
  - Message: the JSON envelope written to clients

Each session has two goroutines besides the relay loop:
  - readPump: reads client pings and notices the client going away
  - writePump: the only writer on the connection; sends queued messages and
    keepalive pings, then a close frame when the session ends

Message Types:

  - record: one feed record in data
  - fallback: a batch of mock records, sent when the upstream is unavailable
    or produces nothing within the first-record timeout; the session then ends
  - pong: reply to a client {"type":"ping"}

A session ends when the session timeout elapses, the client closes the
socket, the upstream stream ends, or the server shuts down.

Usage Example:

	relay := websocket.NewRelay(websocket.DefaultRelayConfig(), upstream, aggregator, hub)

	r.Get("/api/v1/feed/live", func(w http.ResponseWriter, r *http.Request) {
	    conn, err := upgrader.Upgrade(w, r, nil)
	    if err != nil {
	        return
	    }
	    relay.Serve(r.Context(), conn, feed.ModeEventStream)
	})
*/
package websocket
