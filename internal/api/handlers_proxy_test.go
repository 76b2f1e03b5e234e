// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// proxyPath builds the proxy request path for target.
func proxyPath(target string) string {
	return "/api/v1/proxy/audio?url=" + url.QueryEscape(target)
}

func newAudioServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestAudioProxy_StreamsAudio(t *testing.T) {
	t.Parallel()
	audio := newAudioServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("voice") != "nova" {
			t.Errorf("upstream query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("ETag", `"clip-1"`)
		w.Header().Set("X-Upstream-Secret", "leak")
		_, _ = w.Write([]byte("ID3-audio-bytes"))
	})
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	rec := doGet(t, router, proxyPath(audio.URL+"/hello?model=openai-audio&voice=nova"))
	assertStatus(t, rec, http.StatusOK)
	assertHeader(t, rec, "Content-Type", "audio/mpeg")
	assertHeader(t, rec, "ETag", `"clip-1"`)
	assertHeader(t, rec, "X-Upstream-Secret", "")
	if rec.Body.String() != "ID3-audio-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAudioProxy_LegacyPath(t *testing.T) {
	t.Parallel()
	audio := newAudioServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	rec := doGet(t, router, "/api/proxy-audio?url="+url.QueryEscape(audio.URL))
	assertStatus(t, rec, http.StatusOK)
}

func TestAudioProxy_ForwardsRange(t *testing.T) {
	t.Parallel()
	audio := newAudioServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Range"); got != "bytes=0-3" {
			t.Errorf("Range = %q", got)
		}
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("ID3-"))
	})
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	req := httptest.NewRequest(http.MethodGet, proxyPath(audio.URL+"/clip.mp3"), nil)
	req.Header.Set("Range", "bytes=0-3")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertStatus(t, rec, http.StatusPartialContent)
	assertHeader(t, rec, "Accept-Ranges", "bytes")
	assertHeader(t, rec, "Content-Type", "audio/mpeg")
}

func TestAudioProxy_BadRequests(t *testing.T) {
	t.Parallel()
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing url", "/api/v1/proxy/audio", "Audio URL is required"},
		{"empty url", "/api/v1/proxy/audio?url=", "Audio URL is required"},
		{"relative url", proxyPath("/clip.mp3"), "URL must be an absolute http or https URL"},
		{"ftp url", proxyPath("ftp://text.pollinations.ai/clip.mp3"), "URL must be an absolute http or https URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, tt.path)
			assertStatus(t, rec, http.StatusBadRequest)
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAudioProxy_HostNotAllowed(t *testing.T) {
	t.Parallel()
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	for _, target := range []string{
		"https://evil.example/clip.mp3",
		"https://text.pollinations.ai.evil.example/clip.mp3",
		"http://169.254.169.254/latest/meta-data",
	} {
		rec := doGet(t, router, proxyPath(target))
		assertStatus(t, rec, http.StatusForbidden)
		if got := strings.TrimSpace(rec.Body.String()); got != "Audio host not allowed" {
			t.Errorf("%s: body = %q", target, got)
		}
	}
}

func TestAudioProxy_HostMatchIgnoresCaseAndTrailingDot(t *testing.T) {
	t.Parallel()
	h := NewHandler(testConfig(), defaultDeps())

	for _, raw := range []string{
		"https://TEXT.pollinations.ai/x",
		"https://text.pollinations.ai./x",
		"https://text.pollinations.ai:8443/x",
	} {
		u, _ := url.Parse(raw)
		if !h.hostAllowed(u) {
			t.Errorf("hostAllowed(%s) = false", raw)
		}
	}
}

func TestAudioProxy_RedirectOffAllowList(t *testing.T) {
	t.Parallel()
	// localhost resolves to the same server but is not on the allow-list.
	var audio *httptest.Server
	audio = newAudioServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/clip.mp3" {
			_, _ = w.Write([]byte("should not be reached"))
			return
		}
		target := strings.Replace(audio.URL, "127.0.0.1", "localhost", 1) + "/clip.mp3"
		http.Redirect(w, r, target, http.StatusFound)
	})
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	rec := doGet(t, router, proxyPath(audio.URL+"/redirect"))
	assertStatus(t, rec, http.StatusForbidden)
}

func TestAudioProxy_RedirectOnAllowList(t *testing.T) {
	t.Parallel()
	audio := newAudioServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/clip.mp3" {
			_, _ = w.Write([]byte("audio"))
			return
		}
		http.Redirect(w, r, "/clip.mp3", http.StatusFound)
	})
	_, router := newTestRouter(t, testConfig(), defaultDeps())

	rec := doGet(t, router, proxyPath(audio.URL+"/redirect"))
	assertStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "audio" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAudioProxy_UpstreamStatusPassedThrough(t *testing.T) {
	t.Parallel()
	for _, status := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusBadGateway} {
		audio := newAudioServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream detail", status)
		})
		_, router := newTestRouter(t, testConfig(), defaultDeps())

		rec := doGet(t, router, proxyPath(audio.URL+"/clip.mp3"))
		assertStatus(t, rec, status)
		if got := strings.TrimSpace(rec.Body.String()); got != "Failed to fetch audio" {
			t.Errorf("status %d: body = %q", status, got)
		}
	}
}

func TestAudioProxy_UpstreamUnreachable(t *testing.T) {
	t.Parallel()
	audio := httptest.NewServer(http.NotFoundHandler())
	target := audio.URL + "/clip.mp3"
	audio.Close()

	_, router := newTestRouter(t, testConfig(), defaultDeps())

	rec := doGet(t, router, proxyPath(target))
	assertStatus(t, rec, http.StatusInternalServerError)
	if got := strings.TrimSpace(rec.Body.String()); got != "Internal Server Error" {
		t.Errorf("body = %q", got)
	}
}
