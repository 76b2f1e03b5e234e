// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/pollenboard/internal/breaker"
	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/metrics"
)

// ErrUpstreamUnavailable covers every way the upstream feed can fail to
// produce a usable response: transport errors, timeouts, non-2xx statuses,
// unexpected content types, undecodable bodies and an open circuit breaker.
var ErrUpstreamUnavailable = errors.New("upstream feed unavailable")

// DefaultFeedURL is the public image feed.
const DefaultFeedURL = "https://image.pollinations.ai/feed"

// maxJSONBody bounds the JSON-mode response body.
const maxJSONBody = 16 << 20

// UpstreamConfig configures an UpstreamClient.
type UpstreamConfig struct {
	FeedURL       string
	APIKey        string
	RatePerSecond float64
	Burst         int
	UserAgent     string

	// HTTPClient defaults to a client without a global timeout; budgets are
	// applied per call through the context.
	HTTPClient *http.Client

	// Breaker overrides the circuit breaker tuning. The name is always
	// "upstream-feed" unless set.
	Breaker breaker.Settings
}

// UpstreamClient talks to the upstream feed in JSON or event-stream mode.
// It holds no per-request state and is safe for concurrent use.
type UpstreamClient struct {
	feedURL   string
	apiKey    string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *breaker.Breaker[*http.Response]
}

// NewUpstreamClient creates a client, applying defaults for zero values.
func NewUpstreamClient(cfg UpstreamConfig) *UpstreamClient {
	if cfg.FeedURL == "" {
		cfg.FeedURL = DefaultFeedURL
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "pollenboard/1.0"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker.Name = "upstream-feed"
	}
	return &UpstreamClient{
		feedURL:   cfg.FeedURL,
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		client:    cfg.HTTPClient,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker:   breaker.New[*http.Response](cfg.Breaker),
	}
}

// BreakerState exposes the circuit state for health reporting.
func (c *UpstreamClient) BreakerState() string {
	return c.breaker.State()
}

// FetchJSON performs one JSON request within budget and returns the decoded
// candidates. Elements of the array that are not objects are skipped.
func (c *UpstreamClient) FetchJSON(ctx context.Context, budget time.Duration) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	start := time.Now()
	resp, err := c.open(ctx, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !hasMediaType(resp, "application/json") {
		return nil, fmt.Errorf("%w: unexpected content type %q", ErrUpstreamUnavailable, resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}
	candidates, skipped, err := DecodeCandidates(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	for range skipped {
		metrics.RecordDroppedRecord(ReasonDecode)
	}
	metrics.RecordUpstreamFetch(ModeJSONPoll.String(), time.Since(start), len(candidates))
	return candidates, nil
}

// Stream opens the event stream and returns a channel of decoded candidates.
//
// The channel is closed when the budget expires, ctx is cancelled or the
// upstream ends the stream. The producer always releases the connection
// before closing the channel. Callers that stop reading early must cancel ctx.
func (c *UpstreamClient) Stream(ctx context.Context, budget time.Duration) (<-chan Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)

	start := time.Now()
	resp, err := c.open(ctx, "text/event-stream")
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan Candidate)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		defer cancel()

		log := logging.Ctx(ctx)
		collected := 0
		defer func() {
			metrics.RecordUpstreamFetch(ModeEventStream.String(), time.Since(start), collected)
		}()

		dec := NewEventDecoder(resp.Body)
		for {
			payload, err := dec.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					log.Debug().Err(err).Msg("Upstream event stream ended with error")
				}
				return
			}
			cand, err := DecodeCandidate(payload)
			if err != nil {
				metrics.RecordDroppedRecord(ReasonDecode)
				log.Debug().Err(err).Str("payload", logging.SanitizeValue(string(payload))).Msg("Skipping malformed stream record")
				continue
			}
			select {
			case out <- cand:
				collected++
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// open issues the GET through the rate limiter and circuit breaker. Every
// failure is reported as ErrUpstreamUnavailable.
func (c *UpstreamClient) open(ctx context.Context, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", accept)
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("User-Agent", c.userAgent)
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

func hasMediaType(resp *http.Response, want string) bool {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mediaType == want
}
