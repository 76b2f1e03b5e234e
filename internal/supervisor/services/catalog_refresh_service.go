// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package services

import (
	"context"
	"time"

	"github.com/tomtom215/pollenboard/internal/logging"
)

// Refresher matches *catalog.Service.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefreshService keeps the model catalog cache warm.
//
// It refreshes once on start and then on every tick. A failed refresh is
// logged and retried on the next tick; the catalog keeps serving its last
// good value (or the built-in fallback) in the meantime, so failures are
// not reported to the supervisor.
type CatalogRefreshService struct {
	refresher Refresher
	interval  time.Duration
	name      string
}

// NewCatalogRefreshService creates a refresher that runs every interval.
// A non-positive interval defaults to five minutes.
func NewCatalogRefreshService(refresher Refresher, interval time.Duration) *CatalogRefreshService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CatalogRefreshService{
		refresher: refresher,
		interval:  interval,
		name:      "catalog-refresh",
	}
}

// Serve implements suture.Service.
func (c *CatalogRefreshService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(c.name)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if err := c.refresher.Refresh(ctx); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Dur("retry_in", c.interval).Msg("Model catalog refresh failed")
		} else if err == nil {
			logger.Debug().Msg("Model catalog refreshed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String implements fmt.Stringer for logging.
func (c *CatalogRefreshService) String() string {
	return c.name
}
