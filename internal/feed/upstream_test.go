// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newHangingServer accepts requests and never answers until the test ends.
func newHangingServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func newTestClient(url string) *UpstreamClient {
	return NewUpstreamClient(UpstreamConfig{FeedURL: url, RatePerSecond: 1000, Burst: 1000})
}

// ========================================
// JSON mode
// ========================================

func TestFetchJSON_Success(t *testing.T) {
	t.Parallel()

	var gotAccept, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		fmt.Fprint(w, `[{"imageURL":"https://x/1.png","prompt":"one"}, 17, {"imageURL":"https://x/2.png","prompt":"two"}]`)
	}))
	defer srv.Close()

	client := NewUpstreamClient(UpstreamConfig{FeedURL: srv.URL, APIKey: "secret"})
	candidates, err := client.FetchJSON(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("FetchJSON: %v", err)
	}
	checkIntEqual(t, "candidates", len(candidates), 2)
	checkStringEqual(t, "Accept", gotAccept, "application/json")
	checkStringEqual(t, "Authorization", gotAuth, "Bearer secret")
}

func TestFetchJSON_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
	}{
		{"service unavailable", http.StatusServiceUnavailable, "application/json", `{"error":"down"}`},
		{"not found", http.StatusNotFound, "text/plain", "nope"},
		{"html content type", http.StatusOK, "text/html", "<html></html>"},
		{"undecodable body", http.StatusOK, "application/json", `[{"prompt":`},
		{"object instead of array", http.StatusOK, "application/json", `{"items":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).FetchJSON(context.Background(), time.Second)
			if !errors.Is(err, ErrUpstreamUnavailable) {
				t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchJSON_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).FetchJSON(context.Background(), time.Second)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestFetchJSON_BudgetAgainstHangingUpstream(t *testing.T) {
	t.Parallel()

	srv := newHangingServer(t)
	start := time.Now()
	_, err := newTestClient(srv.URL).FetchJSON(context.Background(), 100*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if elapsed > time.Second {
		t.Errorf("expected return shortly after the 100ms budget, took %v", elapsed)
	}
}

// ========================================
// Event-stream mode
// ========================================

func TestStream_DeliversRecordsAndCloses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept: expected text/event-stream, got %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "data: {\"imageURL\":\"https://x/1.png\",\"prompt\":\"one\"}\n\n")
		flusher.Flush()
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, ": keepalive\n\n")
		fmt.Fprint(w, "data: {\"imageURL\":\"https://x/2.png\",\"prompt\":\"two\"}\r\n\r\n")
		flusher.Flush()
	}))
	defer srv.Close()

	stream, err := newTestClient(srv.URL).Stream(context.Background(), 2*time.Second)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	var prompts []string
	for cand := range stream {
		prompts = append(prompts, cand.Prompt.Value)
	}
	checkIntEqual(t, "candidates", len(prompts), 2)
	if len(prompts) == 2 {
		checkStringEqual(t, "first", prompts[0], "one")
		checkStringEqual(t, "second", prompts[1], "two")
	}
}

func TestStream_BudgetClosesChannel(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"imageURL\":\"https://x/1.png\",\"prompt\":\"one\"}\n\n")
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	stream, err := newTestClient(srv.URL).Stream(context.Background(), 150*time.Millisecond)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	count := 0
	for range stream {
		count++
	}
	checkIntEqual(t, "candidates", count, 1)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("channel should close soon after budget, took %v", elapsed)
	}
}

func TestStream_ConsumerCancel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for i := 0; ; i++ {
			if _, err := fmt.Fprintf(w, "data: {\"imageURL\":\"https://x/%d.png\",\"prompt\":\"p\"}\n\n", i); err != nil {
				return
			}
			w.(http.Flusher).Flush()
			select {
			case <-r.Context().Done():
				return
			case <-time.After(5 * time.Millisecond):
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := newTestClient(srv.URL).Stream(ctx, 5*time.Second)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	<-stream
	cancel()

	done := make(chan struct{})
	go func() {
		for range stream {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestStream_OpenFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Stream(context.Background(), time.Second); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestUpstreamClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewUpstreamClient(UpstreamConfig{})
	checkStringEqual(t, "feedURL", c.feedURL, DefaultFeedURL)
	checkStringEqual(t, "breaker state", c.BreakerState(), "closed")
	if c.limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %d", c.limiter.Burst())
	}
}
