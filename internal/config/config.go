// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (LoadWithKoanf):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/moodswipe/config.yaml)
//  3. Environment variables, including a .env file if present
//
// Config is immutable after loading and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Recommend  RecommendConfig  `koanf:"recommend"`
}

// ServerConfig configures the HTTP listener and upload handling.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MaxUploadBytes bounds the multipart body accepted by POST /photo.
	MaxUploadBytes int64    `koanf:"max_upload_bytes"`
	UploadDir      string   `koanf:"upload_dir"`
	CORSOrigins    []string `koanf:"cors_origins"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// CheckpointInterval is how often the WAL is folded into the database
	// file. Zero disables the periodic checkpoint.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// SecurityConfig configures token issuance, password hashing and rate limiting.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig points at the three read-only data files loaded at startup.
type CatalogConfig struct {
	SongsPath          string `koanf:"songs_path"`
	MoodAffinityPath   string `koanf:"mood_affinity_path"`
	MoodInstrumentPath string `koanf:"mood_instrument_path"`
}

// ClassifierConfig configures the external image mood classifier.
// An empty URL selects the static classifier, which always answers StaticMood.
type ClassifierConfig struct {
	URL           string        `koanf:"url"`
	APIKey        string        `koanf:"api_key"`
	LabelPath     string        `koanf:"label_path"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`
	StaticMood    string        `koanf:"static_mood"`
	CacheDir      string        `koanf:"cache_dir"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CacheSize     int64         `koanf:"cache_size"`
}

// RecommendConfig tunes the exploration engine, seeding and synthesis.
type RecommendConfig struct {
	// Seed fixes the random source. Zero means seed from the clock.
	Seed                 int64   `koanf:"seed"`
	InstrumentPhaseLikes int     `koanf:"instrument_phase_likes"`
	FallbackPhaseLikes   int     `koanf:"fallback_phase_likes"`
	SeedCount            int     `koanf:"seed_count"`
	PlaylistSize         int     `koanf:"playlist_size"`
	MinLikedForPlaylist  int     `koanf:"min_liked_for_playlist"`
	FallbackSeedEnabled  bool    `koanf:"fallback_seed_enabled"`
	FuzzyThreshold       float64 `koanf:"fuzzy_threshold"`
	TopMoods             int     `koanf:"top_moods"`
	TopInstruments       int     `koanf:"top_instruments"`
	MinMoodOverlap       int     `koanf:"min_mood_overlap"`
}
