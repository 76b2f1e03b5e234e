// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/pollenboard/internal/catalog"
	"github.com/tomtom215/pollenboard/internal/config"
	"github.com/tomtom215/pollenboard/internal/feed"
	ws "github.com/tomtom215/pollenboard/internal/websocket"
)

// ===================================================================================================
// Test Doubles
// ===================================================================================================

// stubFeed is a FeedBuilder returning a canned page or error.
type stubFeed struct {
	mu       sync.Mutex
	mode     feed.SourceMode
	page     feed.Page
	err      error
	panicMsg string
	requests []feed.Request
}

func (s *stubFeed) BuildPage(ctx context.Context, req feed.Request) (feed.Page, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return feed.Page{}, s.err
	}
	page := s.page
	page.Page = req.Page
	return page, nil
}

func (s *stubFeed) Mode() feed.SourceMode {
	return s.mode
}

func (s *stubFeed) lastRequest(t *testing.T) feed.Request {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("BuildPage was not called")
	}
	return s.requests[len(s.requests)-1]
}

// stubModels is a ModelLister returning fixed models.
type stubModels struct {
	models catalog.Models
}

func (s stubModels) Models(ctx context.Context) catalog.Models {
	return s.models
}

// stubBreaker reports a fixed state.
type stubBreaker string

func (b stubBreaker) BreakerState() string {
	return string(b)
}

// recordingRelay sends one record message and records the mode it served.
type recordingRelay struct {
	modes chan feed.SourceMode
}

func newRecordingRelay() *recordingRelay {
	return &recordingRelay{modes: make(chan feed.SourceMode, 4)}
}

func (r *recordingRelay) Serve(ctx context.Context, conn *websocket.Conn, mode feed.SourceMode) ws.EndReason {
	defer conn.Close()
	r.modes <- mode
	_ = conn.WriteJSON(ws.Message{Type: ws.MessageTypeRecord, Data: sampleRecord()})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return ws.EndMockComplete
}

var errBuildFailed = errors.New("collect json feed: boom")

// ===================================================================================================
// Fixtures
// ===================================================================================================

func sampleRecord() feed.Record {
	return feed.Record{
		Width:    1024,
		Height:   1024,
		Seed:     42,
		Model:    "flux",
		ImageURL: "https://image.pollinations.ai/prompt/a%20lighthouse?seed=42",
		Prompt:   "a lighthouse",
		Status:   "end_generating",
	}
}

// testConfig returns a config with rate limiting disabled and the upstream
// hosts replaced by the loopback address used by httptest servers.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Feed: config.FeedConfig{
			Mode:         "mock",
			PageCeiling:  10,
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Proxy: config.ProxyConfig{
			AllowedHosts: []string{"127.0.0.1", "text.pollinations.ai"},
			Timeout:      5 * time.Second,
		},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://pollenboard.example"},
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

func defaultStubFeed() *stubFeed {
	return &stubFeed{
		mode: feed.ModeMock,
		page: feed.Page{
			Items:     []feed.Record{sampleRecord()},
			Timestamp: "2026-10-15T12:00:00.000Z",
			HasMore:   true,
			Source:    feed.ModeMock,
		},
	}
}

func defaultDeps() Dependencies {
	return Dependencies{
		Feed:   defaultStubFeed(),
		Models: stubModels{models: catalog.Fallback()},
	}
}

// newTestRouter builds the full chi router over deps.
func newTestRouter(t *testing.T, cfg *config.Config, deps Dependencies) (*Handler, http.Handler) {
	t.Helper()
	handler := NewHandler(cfg, deps)
	return handler, NewRouter(handler, cfg).SetupChi()
}

// ===================================================================================================
// Assertions
// ===================================================================================================

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func assertHeader(t *testing.T, rec *httptest.ResponseRecorder, name, want string) {
	t.Helper()
	if got := rec.Header().Get(name); got != want {
		t.Errorf("header %s = %q, want %q", name, got, want)
	}
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	if body.Error != want {
		t.Errorf("error = %q, want %q", body.Error, want)
	}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}
