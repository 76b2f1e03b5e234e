// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/validation"
)

// ErrHostNotAllowed is returned when a proxied URL, or a redirect it leads
// to, points outside the allow-list.
var ErrHostNotAllowed = errors.New("audio host not allowed")

const maxProxyRedirects = 5

// passthroughHeaders are copied from the upstream audio response.
var passthroughHeaders = []string{
	"Content-Length",
	"Cache-Control",
	"ETag",
	"Last-Modified",
	"Accept-Ranges",
}

// AudioProxy streams generated audio from an allow-listed host so the
// browser can play it same-origin.
//
// @Summary Proxy generated audio
// @Description Fetches audio from an allow-listed host and streams it back as audio/mpeg. A non-2xx upstream status is passed through.
// @Tags Proxy
// @Produce audio/mpeg
// @Param url query string true "Absolute http(s) URL of the audio"
// @Success 200 {file} binary "Audio stream"
// @Failure 400 {string} string "Audio URL is required or invalid"
// @Failure 403 {string} string "Audio host not allowed"
// @Failure 500 {string} string "Internal Server Error"
// @Router /proxy/audio [get]
func (h *Handler) AudioProxy(w http.ResponseWriter, r *http.Request) {
	log := logging.Ctx(r.Context())

	req := validation.AudioProxyRequest{URL: r.URL.Query().Get("url")}
	if msg := validateRequest(&req); msg != "" {
		if req.URL == "" {
			msg = "Audio URL is required"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	target, err := url.Parse(req.URL)
	if err != nil {
		http.Error(w, "Audio URL is invalid", http.StatusBadRequest)
		return
	}
	if !h.hostAllowed(target) {
		log.Warn().Str("host", logging.SanitizeValue(target.Host)).Msg("Audio proxy host rejected")
		http.Error(w, "Audio host not allowed", http.StatusForbidden)
		return
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	upstreamReq.Header.Set("Accept", "audio/*")
	if rng := r.Header.Get("Range"); rng != "" {
		upstreamReq.Header.Set("Range", rng)
	}

	resp, err := h.proxyClient.Do(upstreamReq)
	if err != nil {
		if errors.Is(err, ErrHostNotAllowed) {
			http.Error(w, "Audio host not allowed", http.StatusForbidden)
			return
		}
		log.Error().Err(err).Msg("Error proxying audio")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		http.Error(w, "Failed to fetch audio", resp.StatusCode)
		return
	}

	for _, name := range passthroughHeaders {
		if v := resp.Header.Get(name); v != "" {
			w.Header().Set(name, v)
		}
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are gone; the client sees a truncated body.
		log.Debug().Err(err).Msg("Audio proxy copy interrupted")
	}
}

// hostAllowed reports whether u's host is on the allow-list.
func (h *Handler) hostAllowed(u *url.URL) bool {
	_, ok := h.allowedHosts[normalizeHost(u.Hostname())]
	return ok
}

// checkProxyRedirect keeps redirects on allow-listed hosts.
func (h *Handler) checkProxyRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxProxyRedirects {
		return fmt.Errorf("stopped after %d redirects", maxProxyRedirects)
	}
	if !h.hostAllowed(req.URL) {
		return fmt.Errorf("redirect to %q: %w", req.URL.Hostname(), ErrHostNotAllowed)
	}
	return nil
}

func normalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}
