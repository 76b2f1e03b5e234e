// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// A .env file in the working directory is read into the process environment
// before step 3 without replacing variables that are already set.
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	fmt.Println(cfg.Feed.Mode, cfg.Upstream.FeedURL)
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Feed     FeedConfig     `koanf:"feed"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Proxy    ProxyConfig    `koanf:"proxy"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// FeedConfig holds page assembly settings.
//
// Environment Variables:
//   - FEED_MODE: mock, json or stream (default: mock)
//   - FEED_OVERFETCH: limit multiplier for collection, 2 or 3 (default: 2)
//   - FEED_PAGE_CEILING: last page reporting hasMore=true is ceiling-1 (default: 10)
//   - FEED_MAX_LIMIT: largest accepted limit (default: 50)
//   - FEED_JSON_BUDGET: JSON fetch budget (default: 3s)
//   - FEED_STREAM_BUDGET: event-stream collection window (default: 5s)
//   - FEED_FIRST_RECORD_TIMEOUT: abort a silent stream after (default: 3s)
//   - FEED_LIVE_SESSION: live relay session length (default: 60s)
type FeedConfig struct {
	Mode               string        `koanf:"mode"`
	Overfetch          int           `koanf:"overfetch"`
	OffsetMultiplier   int           `koanf:"offset_multiplier"`
	PageCeiling        int           `koanf:"page_ceiling"`
	DefaultLimit       int           `koanf:"default_limit"`
	MaxLimit           int           `koanf:"max_limit"`
	JSONBudget         time.Duration `koanf:"json_budget"`
	StreamBudget       time.Duration `koanf:"stream_budget"`
	FirstRecordTimeout time.Duration `koanf:"first_record_timeout"`
	LiveSession        time.Duration `koanf:"live_session"`
}

// UpstreamConfig holds the upstream feed connection settings
type UpstreamConfig struct {
	FeedURL       string  `koanf:"feed_url"`
	APIKey        string  `koanf:"api_key"`
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`
}

// CatalogConfig holds model catalog settings
type CatalogConfig struct {
	TextModelsURL   string        `koanf:"text_models_url"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	Timeout         time.Duration `koanf:"timeout"`
}

// ProxyConfig holds audio proxy settings
type ProxyConfig struct {
	AllowedHosts []string      `koanf:"allowed_hosts"`
	Timeout      time.Duration `koanf:"timeout"`
}

// SecurityConfig holds CORS and inbound rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
