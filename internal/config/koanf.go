// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pollenboard/config.yaml",
	"/etc/pollenboard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file location.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second, // live sessions and audio streams outlast a page request
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Feed: FeedConfig{
			Mode:               "mock",
			Overfetch:          2,
			OffsetMultiplier:   10000,
			PageCeiling:        10,
			DefaultLimit:       10,
			MaxLimit:           50,
			JSONBudget:         3 * time.Second,
			StreamBudget:       5 * time.Second,
			FirstRecordTimeout: 3 * time.Second,
			LiveSession:        60 * time.Second,
		},
		Upstream: UpstreamConfig{
			FeedURL:       "https://image.pollinations.ai/feed",
			APIKey:        "",
			RatePerSecond: 5,
			Burst:         10,
		},
		Catalog: CatalogConfig{
			TextModelsURL:   "https://text.pollinations.ai/models",
			CacheTTL:        10 * time.Minute,
			RefreshInterval: 5 * time.Minute,
			Timeout:         5 * time.Second,
		},
		Proxy: ProxyConfig{
			AllowedHosts: []string{"text.pollinations.ai", "audio.pollinations.ai"},
			Timeout:      30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Variables from a .env file are merged into the environment before layer 3.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// FEED_MODE -> feed.mode
	// UPSTREAM_API_KEY -> upstream.api_key
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads DOTENV_PATH (or ./.env) into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"proxy.allowed_hosts",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unlisted variables are ignored so unrelated environment does not leak in.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"port":             "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Feed
	"feed_mode":                 "feed.mode",
	"feed_overfetch":            "feed.overfetch",
	"feed_offset_multiplier":    "feed.offset_multiplier",
	"feed_page_ceiling":         "feed.page_ceiling",
	"feed_default_limit":        "feed.default_limit",
	"feed_max_limit":            "feed.max_limit",
	"feed_json_budget":          "feed.json_budget",
	"feed_stream_budget":        "feed.stream_budget",
	"feed_first_record_timeout": "feed.first_record_timeout",
	"feed_live_session":         "feed.live_session",

	// Upstream
	"upstream_feed_url":        "upstream.feed_url",
	"upstream_api_key":         "upstream.api_key",
	"upstream_rate_per_second": "upstream.rate_per_second",
	"upstream_burst":           "upstream.burst",

	// Catalog
	"catalog_text_models_url":  "catalog.text_models_url",
	"catalog_cache_ttl":        "catalog.cache_ttl",
	"catalog_refresh_interval": "catalog.refresh_interval",
	"catalog_timeout":          "catalog.timeout",

	// Proxy
	"proxy_allowed_hosts": "proxy.allowed_hosts",
	"proxy_timeout":       "proxy.timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - FEED_MODE -> feed.mode
//   - UPSTREAM_API_KEY -> upstream.api_key
//   - HTTP_PORT -> server.port
//   - CORS_ORIGINS -> security.cors_origins
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
