// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

// Package catalog serves the list of image models, text models and voices
// offered by the studio.
//
// Image models are a fixed allow-list. Text models and voices are read from
// the upstream text models document through the "text-models" circuit
// breaker and kept in a named TTL cache. The background refresher in the
// supervisor tree calls Refresh on an interval so requests rarely see a
// miss. When nothing has ever been fetched, Models serves a fallback with
// the audio model and six default voices.
package catalog
