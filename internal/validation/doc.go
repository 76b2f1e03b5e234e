// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once (struct metadata is cached per
// type) and shared by all handlers. Failures are returned as
// *RequestValidationError, which ToAPIError converts into a
// VALIDATION_ERROR payload with human-readable messages.
//
// # Request Types
//
//   - FeedQuery: page and limit of a feed request, after defaulting
//   - AudioProxyRequest: the upstream URL of an audio proxy request
//   - LiveFeedQuery: the optional mode override of a live session
//
// # Custom Tags
//
//   - abs_http_url: absolute http/https URL with a host and no user info
//   - feed_mode: one of mock, json, stream
//
// # Usage
//
//	q := validation.FeedQuery{Page: page, Limit: limit}
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Message)
//	    return
//	}
package validation
