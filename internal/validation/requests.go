// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package validation

// Feed query bounds. They match the FeedQuery tags so callers can clamp
// before validating.
const (
	MaxFeedPage  = 100000
	MaxFeedLimit = 1000
)

// FeedQuery is the defaulted query of a feed page request.
type FeedQuery struct {
	Page    int `validate:"min=1,max=100000"`
	Limit   int `validate:"min=1,max=1000"`
	Refresh bool
}

// AudioProxyRequest is the query of an audio proxy request.
type AudioProxyRequest struct {
	URL string `validate:"required,max=4096,abs_http_url"`
}

// LiveFeedQuery is the query of a live feed session.
type LiveFeedQuery struct {
	Mode string `validate:"omitempty,feed_mode"`
}
