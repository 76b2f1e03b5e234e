// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package services provides suture.Service wrappers for Pollenboard components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so the supervisor can name it in log events.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the ListenAndServe pattern to Serve
  - Marks the API handler as draining before Shutdown so /health/ready fails

Live Hub (LiveHubService):
  - Wraps websocket.Hub
  - Ends every open live feed session on shutdown

Catalog Refresh (CatalogRefreshService):
  - Refreshes the model catalog cache on an interval
  - Logs failures and keeps the last good catalog

Wrappers depend on small interfaces declared here, not on the wrapped
packages, so tests use in-package doubles.
*/
package services
