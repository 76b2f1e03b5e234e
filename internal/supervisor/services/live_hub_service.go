// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package services

import (
	"context"
)

// SessionHub matches *websocket.Hub.
//
// Declared here so this package does not import the websocket package.
type SessionHub interface {
	Serve(ctx context.Context) error
	SessionCount() int
}

// LiveHubService wraps the live feed session hub as a supervised service.
//
// The hub's Serve method blocks until shutdown and then ends every open
// live session, so this wrapper only delegates and provides a name for
// logging.
//
// Example usage:
//
//	hub := websocket.NewHub()
//	tree.AddBackgroundService(services.NewLiveHubService(hub))
type LiveHubService struct {
	hub  SessionHub
	name string
}

// NewLiveHubService creates a new live hub service wrapper.
func NewLiveHubService(hub SessionHub) *LiveHubService {
	return &LiveHubService{
		hub:  hub,
		name: "live-hub",
	}
}

// Serve implements suture.Service. It returns ctx.Err() on normal shutdown.
func (l *LiveHubService) Serve(ctx context.Context) error {
	return l.hub.Serve(ctx)
}

// String implements fmt.Stringer for logging.
func (l *LiveHubService) String() string {
	return l.name
}
