// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/pollenboard/docs" // Import generated swagger docs
	"github.com/tomtom215/pollenboard/internal/api"
	"github.com/tomtom215/pollenboard/internal/catalog"
	"github.com/tomtom215/pollenboard/internal/config"
	"github.com/tomtom215/pollenboard/internal/feed"
	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/metrics"
	"github.com/tomtom215/pollenboard/internal/supervisor"
	"github.com/tomtom215/pollenboard/internal/supervisor/services"
	ws "github.com/tomtom215/pollenboard/internal/websocket"
)

// app holds the wired components shared by the HTTP server and the
// supervisor tree.
type app struct {
	handler *api.Handler
	router  http.Handler
	hub     *ws.Hub
	catalog *catalog.Service
}

// buildApp wires every component from cfg. It performs no network I/O.
func buildApp(cfg *config.Config) (*app, error) {
	mode, err := feed.ParseSourceMode(cfg.Feed.Mode)
	if err != nil {
		return nil, fmt.Errorf("feed mode: %w", err)
	}

	// The upstream client is created even in mock mode so live sessions can
	// request json or stream explicitly.
	upstream := feed.NewUpstreamClient(feed.UpstreamConfig{
		FeedURL:       cfg.Upstream.FeedURL,
		APIKey:        cfg.Upstream.APIKey,
		RatePerSecond: cfg.Upstream.RatePerSecond,
		Burst:         cfg.Upstream.Burst,
	})

	aggregator := feed.NewAggregator(feed.Options{
		Mode:               mode,
		Overfetch:          cfg.Feed.Overfetch,
		OffsetMultiplier:   cfg.Feed.OffsetMultiplier,
		PageCeiling:        cfg.Feed.PageCeiling,
		DefaultLimit:       cfg.Feed.DefaultLimit,
		JSONBudget:         cfg.Feed.JSONBudget,
		StreamBudget:       cfg.Feed.StreamBudget,
		FirstRecordTimeout: cfg.Feed.FirstRecordTimeout,
	}, upstream, feed.NewMockGenerator())

	catalogSvc := catalog.NewService(catalog.Config{
		TextModelsURL: cfg.Catalog.TextModelsURL,
		CacheTTL:      cfg.Catalog.CacheTTL,
		Timeout:       cfg.Catalog.Timeout,
	})

	hub := ws.NewHub()
	relay := ws.NewRelay(ws.RelayConfig{
		SessionTimeout:     cfg.Feed.LiveSession,
		FirstRecordTimeout: cfg.Feed.FirstRecordTimeout,
		JSONBudget:         cfg.Feed.JSONBudget,
	}, upstream, aggregator, hub)

	handler := api.NewHandler(cfg, api.Dependencies{
		Feed:   aggregator,
		Relay:  relay,
		Models: catalogSvc,
		Breakers: map[string]api.BreakerReporter{
			"upstream_feed": upstream,
			"text_models":   catalogSvc,
		},
	})

	return &app{
		handler: handler,
		router:  api.NewRouter(handler, cfg).SetupChi(),
		hub:     hub,
		catalog: catalogSvc,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("feed_mode", cfg.Feed.Mode).
		Str("upstream", cfg.Upstream.FeedURL).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Pollenboard with supervisor tree")
	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS allows any origin in production; live feed sessions accept every Origin")
	}

	application, err := buildApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.catalog.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridges zerolog to slog for sutureslog
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddBackgroundService(services.NewLiveHubService(application.hub))
	tree.AddBackgroundService(services.NewCatalogRefreshService(application.catalog, cfg.Catalog.RefreshInterval))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           application.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).WithDrainer(application.handler))

	logging.Info().
		Str("addr", server.Addr).
		Msg("HTTP server configured")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		application.handler.SetDraining(true)
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	reportUnstopped(tree)
	logging.Info().Msg("Server stopped")
}

// reportUnstopped logs services that ignored the shutdown timeout.
func reportUnstopped(tree *supervisor.SupervisorTree) {
	unstopped, err := tree.UnstoppedServiceReport()
	if err != nil {
		logging.Warn().Err(err).Msg("Could not build unstopped service report")
		return
	}
	if len(unstopped) == 0 {
		return
	}
	logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}
}
