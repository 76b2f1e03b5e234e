// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package supervisor provides process supervision for Pollenboard using suture v4.

The supervisor tree manages the lifecycle of every long-running service in the
process, with automatic restart, failure isolation and graceful shutdown.

# Overview

Services are grouped into two layers:

	RootSupervisor ("pollenboard")
	├── BackgroundSupervisor ("background-layer")
	│   ├── LiveHubService (websocket.Hub)
	│   └── CatalogRefreshService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing catalog refresh is restarted with backoff inside the background
layer and never takes the HTTP listener down with it.

# Usage Example

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddBackgroundService(hub)
	tree.AddBackgroundService(services.NewCatalogRefreshService(catalogSvc, 5*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

# Logging

Supervisor events (service panics, restarts, backoff) are forwarded to slog
through sutureslog. The slog handler is backed by the zerolog global logger,
so events share the process's log format.

# Shutdown

Canceling the context passed to Serve stops every service. Services that do
not return within TreeConfig.ShutdownTimeout are listed by
UnstoppedServiceReport.
*/
package supervisor
