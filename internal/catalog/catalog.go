// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pollenboard/internal/breaker"
	"github.com/tomtom215/pollenboard/internal/cache"
	"github.com/tomtom215/pollenboard/internal/logging"
)

// DefaultTextModelsURL lists the text models and their voices.
const DefaultTextModelsURL = "https://text.pollinations.ai/models"

// AudioModel is the text model whose entry carries the voice list.
const AudioModel = "openai-audio"

const (
	cacheKey         = "models"
	maxCatalogBody   = 4 << 20
	defaultCacheTTL  = 10 * time.Minute
	defaultTimeout   = 5 * time.Second
	breakerName      = "text-models"
	defaultUserAgent = "pollenboard/1.0"
)

// ErrCatalogUnavailable is returned by Refresh when the text model list
// could not be fetched or decoded.
var ErrCatalogUnavailable = errors.New("model catalog unavailable")

// imageModels is the fixed allow-list of image models offered to clients.
var imageModels = []string{"flux", "zimage", "turbo"}

// Voice is a selectable text-to-speech voice.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Models is the catalog returned to clients.
type Models struct {
	ImageModels []string `json:"imageModels"`
	TextModels  []string `json:"textModels"`
	Voices      []Voice  `json:"voices"`
}

// ImageModels returns a copy of the image model allow-list.
func ImageModels() []string {
	return append([]string(nil), imageModels...)
}

// DefaultVoices returns the voices served when the upstream list is
// unavailable.
func DefaultVoices() []Voice {
	ids := []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
	voices := make([]Voice, len(ids))
	for i, id := range ids {
		voices[i] = Voice{ID: id, Name: VoiceName(id)}
	}
	return voices
}

// Fallback returns the catalog served when no upstream data is available.
func Fallback() Models {
	return Models{
		ImageModels: ImageModels(),
		TextModels:  []string{AudioModel},
		Voices:      DefaultVoices(),
	}
}

// VoiceName capitalizes the first letter of a voice id.
func VoiceName(id string) string {
	r, size := utf8.DecodeRuneInString(id)
	if r == utf8.RuneError {
		return id
	}
	return string(unicode.ToUpper(r)) + id[size:]
}

// Config configures a Service.
type Config struct {
	TextModelsURL string
	CacheTTL      time.Duration
	Timeout       time.Duration
	UserAgent     string
	HTTPClient    *http.Client
	Breaker       breaker.Settings
}

// Service serves the model catalog from a TTL cache, refreshing it from the
// text models endpoint on a miss.
type Service struct {
	url       string
	userAgent string
	timeout   time.Duration
	client    *http.Client
	breaker   *breaker.Breaker[Models]
	cache     *cache.Cache[Models]
	log       zerolog.Logger
}

// NewService creates a catalog service, applying defaults for zero values.
// Call Close to stop the cache's cleanup goroutine.
func NewService(cfg Config) *Service {
	if cfg.TextModelsURL == "" {
		cfg.TextModelsURL = DefaultTextModelsURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = breaker.DefaultSettings(breakerName)
	}

	return &Service{
		url:       cfg.TextModelsURL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		client:    cfg.HTTPClient,
		breaker:   breaker.New[Models](cfg.Breaker),
		cache:     cache.New[Models]("catalog", cfg.CacheTTL),
		log:       logging.WithComponent("catalog"),
	}
}

// Close releases the cache.
func (s *Service) Close() {
	s.cache.Close()
}

// BreakerState reports the text-models breaker state.
func (s *Service) BreakerState() string {
	return s.breaker.State()
}

// Models returns the catalog. It never fails: a cache miss triggers a
// refresh, a failed refresh serves the last good catalog if one exists, and
// otherwise the fallback catalog.
func (s *Service) Models(ctx context.Context) Models {
	if m, ok := s.cache.Get(cacheKey); ok {
		return m
	}

	m, err := s.fetch(ctx)
	if err == nil {
		s.cache.Set(cacheKey, m)
		return m
	}

	if stale, ok := s.cache.Peek(cacheKey); ok {
		logging.Ctx(ctx).Warn().Err(err).Msg("Serving stale model catalog")
		return stale
	}
	logging.Ctx(ctx).Warn().Err(err).Msg("Serving fallback model catalog")
	return Fallback()
}

// Refresh fetches the catalog and stores it in the cache. On failure the
// cache is left untouched.
func (s *Service) Refresh(ctx context.Context) error {
	m, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(cacheKey, m)
	s.log.Debug().
		Int("text_models", len(m.TextModels)).
		Int("voices", len(m.Voices)).
		Msg("Model catalog refreshed")
	return nil
}

func (s *Service) fetch(ctx context.Context) (Models, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	m, err := s.breaker.Execute(func() (Models, error) {
		return s.fetchOnce(ctx)
	})
	if err != nil {
		return Models{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return m, nil
}

func (s *Service) fetchOnce(ctx context.Context) (Models, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return Models{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Models{}, fmt.Errorf("fetch text models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Models{}, fmt.Errorf("fetch text models: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return Models{}, fmt.Errorf("read text models: %w", err)
	}
	return ParseTextModels(body)
}

// ParseTextModels decodes the text models document, a JSON object keyed by
// model id. Model ids are returned sorted. Voices come from the audio
// model's "voices" array; an audio entry without voices yields none.
func ParseTextModels(body []byte) (Models, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return Models{}, fmt.Errorf("decode text models: %w", err)
	}
	if entries == nil {
		return Models{}, errors.New("decode text models: not an object")
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	voices := []Voice{}
	if raw, ok := entries[AudioModel]; ok {
		var audio struct {
			Voices []string `json:"voices"`
		}
		// A malformed audio entry only costs the voice list.
		if err := json.Unmarshal(raw, &audio); err == nil {
			for _, id := range audio.Voices {
				if id = strings.TrimSpace(id); id != "" {
					voices = append(voices, Voice{ID: id, Name: VoiceName(id)})
				}
			}
		}
	}

	return Models{
		ImageModels: ImageModels(),
		TextModels:  ids,
		Voices:      voices,
	}, nil
}
