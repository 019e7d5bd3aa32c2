// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minJWTSecretLength is the shortest HMAC secret accepted for signing tokens.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.Server.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	// bcrypt.MinCost..bcrypt.MaxCost
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs <= 0 || c.Security.RateLimitWindow <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.SongsPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Catalog.MoodAffinityPath == "" {
		return fmt.Errorf("MOOD_AFFINITY_PATH is required")
	}
	if c.Catalog.MoodInstrumentPath == "" {
		return fmt.Errorf("MOOD_INSTRUMENT_PATH is required")
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if c.Classifier.URL == "" {
		if c.Classifier.StaticMood == "" {
			return fmt.Errorf("CLASSIFIER_STATIC_MOOD is required when CLASSIFIER_URL is empty")
		}
		return nil
	}
	if err := validateHTTPURL(c.Classifier.URL); err != nil {
		return fmt.Errorf("CLASSIFIER_URL is invalid: %w", err)
	}
	if c.Classifier.LabelPath == "" {
		return fmt.Errorf("CLASSIFIER_LABEL_PATH is required")
	}
	if c.Classifier.Timeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
	}
	if c.Classifier.RatePerSecond <= 0 || c.Classifier.Burst <= 0 {
		return fmt.Errorf("CLASSIFIER_RATE and CLASSIFIER_BURST must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.InstrumentPhaseLikes < 1 {
		return fmt.Errorf("RECOMMEND_INSTRUMENT_LIKES must be at least 1")
	}
	if r.InstrumentPhaseLikes >= r.FallbackPhaseLikes {
		return fmt.Errorf("RECOMMEND_INSTRUMENT_LIKES (%d) must be less than RECOMMEND_FALLBACK_LIKES (%d)",
			r.InstrumentPhaseLikes, r.FallbackPhaseLikes)
	}
	if r.SeedCount < 1 || r.PlaylistSize < 1 || r.MinLikedForPlaylist < 1 {
		return fmt.Errorf("seed count, playlist size and minimum liked songs must be positive")
	}
	if r.FuzzyThreshold <= 0 || r.FuzzyThreshold > 1 {
		return fmt.Errorf("RECOMMEND_FUZZY_THRESHOLD must be in (0, 1], got %v", r.FuzzyThreshold)
	}
	if r.TopMoods < 1 || r.TopInstruments < 1 {
		return fmt.Errorf("recommend.top_moods and recommend.top_instruments must be positive")
	}
	if r.MinMoodOverlap < 1 || r.MinMoodOverlap > r.TopMoods {
		return fmt.Errorf("recommend.min_mood_overlap must be between 1 and recommend.top_moods")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
