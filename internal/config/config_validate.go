// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateFeed(); err != nil {
		return err
	}

	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateProxy(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("READ_TIMEOUT and WRITE_TIMEOUT must be positive")
	}
	return nil
}

// validFeedModes defines the accepted FEED_MODE values
var validFeedModes = map[string]bool{
	"mock":   true,
	"json":   true,
	"stream": true,
}

// Feed budget bounds
const (
	minStreamBudget = 3 * time.Second
	maxStreamBudget = 6 * time.Second
	maxJSONBudget   = 30 * time.Second
	minLiveSession  = 5 * time.Second
	maxLiveSession  = 30 * time.Minute
)

// validateFeed validates page assembly settings
func (c *Config) validateFeed() error {
	f := c.Feed
	c.Feed.Mode = strings.ToLower(strings.TrimSpace(f.Mode))
	if !validFeedModes[c.Feed.Mode] {
		return fmt.Errorf("FEED_MODE must be one of: mock, json, stream")
	}
	if f.Overfetch < 2 || f.Overfetch > 3 {
		return fmt.Errorf("FEED_OVERFETCH must be 2 or 3")
	}
	if f.OffsetMultiplier < 1 {
		return fmt.Errorf("FEED_OFFSET_MULTIPLIER must be positive")
	}
	if f.PageCeiling < 1 {
		return fmt.Errorf("FEED_PAGE_CEILING must be at least 1")
	}
	if f.MaxLimit < 1 {
		return fmt.Errorf("FEED_MAX_LIMIT must be at least 1")
	}
	if f.DefaultLimit < 1 || f.DefaultLimit > f.MaxLimit {
		return fmt.Errorf("FEED_DEFAULT_LIMIT must be between 1 and FEED_MAX_LIMIT (%d)", f.MaxLimit)
	}
	if f.JSONBudget <= 0 || f.JSONBudget > maxJSONBudget {
		return fmt.Errorf("FEED_JSON_BUDGET must be between 0 and %v", maxJSONBudget)
	}
	if f.StreamBudget < minStreamBudget || f.StreamBudget > maxStreamBudget {
		return fmt.Errorf("FEED_STREAM_BUDGET must be between %v and %v", minStreamBudget, maxStreamBudget)
	}
	if f.FirstRecordTimeout <= 0 || f.FirstRecordTimeout > f.StreamBudget {
		return fmt.Errorf("FEED_FIRST_RECORD_TIMEOUT must be positive and no longer than FEED_STREAM_BUDGET")
	}
	if f.LiveSession < minLiveSession || f.LiveSession > maxLiveSession {
		return fmt.Errorf("FEED_LIVE_SESSION must be between %v and %v", minLiveSession, maxLiveSession)
	}
	return nil
}

// validateUpstream validates the upstream feed connection
func (c *Config) validateUpstream() error {
	if err := validateHTTPURL(c.Upstream.FeedURL, "UPSTREAM_FEED_URL"); err != nil {
		return err
	}
	if c.Upstream.RatePerSecond <= 0 {
		return fmt.Errorf("UPSTREAM_RATE_PER_SECOND must be positive")
	}
	if c.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1")
	}
	if c.Upstream.APIKey != "" && containsPlaceholder(c.Upstream.APIKey) {
		return fmt.Errorf("UPSTREAM_API_KEY contains a placeholder value; set a real key or leave it empty")
	}
	return nil
}

// validateCatalog validates model catalog settings
func (c *Config) validateCatalog() error {
	if err := validateHTTPURL(c.Catalog.TextModelsURL, "CATALOG_TEXT_MODELS_URL"); err != nil {
		return err
	}
	if c.Catalog.CacheTTL <= 0 || c.Catalog.RefreshInterval <= 0 || c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL, CATALOG_REFRESH_INTERVAL and CATALOG_TIMEOUT must be positive")
	}
	return nil
}

// validateProxy validates audio proxy settings
func (c *Config) validateProxy() error {
	if len(c.Proxy.AllowedHosts) == 0 {
		return fmt.Errorf("PROXY_ALLOWED_HOSTS must list at least one host")
	}
	for _, host := range c.Proxy.AllowedHosts {
		if strings.Contains(host, "/") || strings.Contains(host, "*") {
			return fmt.Errorf("PROXY_ALLOWED_HOSTS entries must be bare host names, got %q", host)
		}
	}
	if c.Proxy.Timeout <= 0 {
		return fmt.Errorf("PROXY_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * to allow all)")
	}
	return c.validateRateLimits()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true when a production deployment accepts
// every origin; the feed is public, so this is a warning, not an error.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.HasWildcardCORS()
}

// validLogLevels defines allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
