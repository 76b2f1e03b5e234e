// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/pollenboard/internal/feed"
	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/validation"
)

const (
	defaultFeedPage = 1

	// fallbackFeedLimit applies only when feed.default_limit is unset.
	fallbackFeedLimit = 10

	feedCacheControl = "public, max-age=30, stale-while-revalidate=60"

	// FeedSourceHeader names the source that filled the page.
	FeedSourceHeader = "X-Feed-Source"

	feedFailureMessage = "Failed to fetch feed"
)

// Feed returns one page of the community image feed.
//
// @Summary Get a feed page
// @Description Returns displayable image records from the configured source. When the upstream is unavailable or returns nothing displayable, mock records are served instead; the X-Feed-Source header says which.
// @Tags Feed
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items requested (default feed.default_limit, capped at feed.max_limit)"
// @Param refresh query bool false "true or 1 to draw from the variant theme pool"
// @Success 200 {object} feed.Page "Feed page"
// @Header 200 {string} X-Feed-Source "mock, json or stream"
// @Failure 500 {object} ErrorResponse "Failed to fetch feed"
// @Router /feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	log := logging.Ctx(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("panic", fmt.Sprint(rec)).Msg("Feed handler panicked")
			respondError(w, http.StatusInternalServerError, feedFailureMessage)
		}
	}()

	query := h.feedQuery(r)
	if msg := validateRequest(&query); msg != "" {
		log.Warn().Str("reason", msg).Msg("Feed query out of range, using defaults")
		query.Page, query.Limit = defaultFeedPage, h.defaultFeedLimit()
	}

	page, err := h.feed.BuildPage(r.Context(), feed.Request{
		Page:    query.Page,
		Limit:   query.Limit,
		Refresh: query.Refresh,
	})
	if err != nil {
		log.Error().Err(err).Int("page", query.Page).Int("limit", query.Limit).Msg("Failed to build feed page")
		respondError(w, http.StatusInternalServerError, feedFailureMessage)
		return
	}

	w.Header().Set("Cache-Control", feedCacheControl)
	w.Header().Set(FeedSourceHeader, page.Source.String())
	respondJSON(w, http.StatusOK, page)
}

// feedQuery reads page, limit and refresh. Unusable values fall back to
// defaults and oversized ones are clamped, so a feed request never fails on
// its query.
func (h *Handler) feedQuery(r *http.Request) validation.FeedQuery {
	query := validation.FeedQuery{
		Page:    getPositiveIntParam(r, "page", defaultFeedPage),
		Limit:   getPositiveIntParam(r, "limit", h.defaultFeedLimit()),
		Refresh: getBoolParam(r, "refresh"),
	}
	maxLimit := h.config.Feed.MaxLimit
	if maxLimit <= 0 || maxLimit > validation.MaxFeedLimit {
		maxLimit = validation.MaxFeedLimit
	}
	query.Limit = min(query.Limit, maxLimit)
	query.Page = min(query.Page, validation.MaxFeedPage)
	return query
}

func (h *Handler) defaultFeedLimit() int {
	if limit := h.config.Feed.DefaultLimit; limit > 0 {
		return limit
	}
	return fallbackFeedLimit
}

// LiveFeed upgrades to a WebSocket and relays new records as they arrive.
//
// @Summary Live feed over WebSocket
// @Description Relays displayable records as {"type":"record","data":{...}} messages. When the upstream is unavailable, one {"type":"fallback","data":[...]} batch of mock records is sent and the session ends.
// @Tags Feed
// @Param mode query string false "mock, json or stream (default: the server's feed mode)"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} ErrorResponse "Invalid mode"
// @Failure 503 {object} ErrorResponse "Live feed unavailable"
// @Router /feed/live [get]
func (h *Handler) LiveFeed(w http.ResponseWriter, r *http.Request) {
	if h.relay == nil {
		respondError(w, http.StatusServiceUnavailable, "Live feed unavailable")
		return
	}

	query := validation.LiveFeedQuery{Mode: r.URL.Query().Get("mode")}
	if msg := validateRequest(&query); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	mode := h.liveMode(query.Mode)

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.relay.Serve(r.Context(), conn, mode)
}

// liveMode resolves the requested mode, defaulting to the feed mode.
func (h *Handler) liveMode(requested string) feed.SourceMode {
	if requested == "" {
		return h.feed.Mode()
	}
	// Already validated as one of the accepted names.
	mode, _ := feed.ParseSourceMode(requested)
	return mode
}
