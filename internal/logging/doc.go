// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

// Package logging provides centralized zerolog-based structured logging.
//
// A single global logger is configured once at startup and shared by every
// package. Request handlers log through Ctx so that request_id and
// correlation_id travel with every line.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Upstream request failed")
//	logging.Ctx(ctx).Debug().Int("page", page).Msg("Feed page assembled")
//
// # Configuration
//
// Environment Variables (mapped through the config package):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// # slog Bridge
//
// NewSlogLogger returns a *slog.Logger whose records are written through
// zerolog. The supervisor tree uses it for sutureslog event hooks.
//
// Always terminate event chains with .Msg() or .Send(); an unterminated chain
// is never written.
package logging
