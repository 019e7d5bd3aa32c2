// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

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

// ConfigPathEnvVar names the environment variable holding an explicit config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodswipe/config.yaml",
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
			UploadDir:       "./data/uploads",
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Path:               "./data/moodswipe.duckdb",
			MaxMemory:          "512MB",
			Threads:            0,
			CheckpointInterval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			TokenTTL:        15 * time.Minute,
			BcryptCost:      12,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			SongsPath:          "./data/songs.json",
			MoodAffinityPath:   "./data/mood_affinity.json",
			MoodInstrumentPath: "./data/mood_instrument_affinity.json",
		},
		Classifier: ClassifierConfig{
			LabelPath:     "mood",
			Timeout:       20 * time.Second,
			RatePerSecond: 2,
			Burst:         4,
			StaticMood:    "calm",
			CacheTTL:      24 * time.Hour,
			CacheSize:     1000,
		},
		Recommend: RecommendConfig{
			InstrumentPhaseLikes: 3,
			FallbackPhaseLikes:   5,
			SeedCount:            3,
			PlaylistSize:         10,
			MinLikedForPlaylist:  3,
			FallbackSeedEnabled:  true,
			FuzzyThreshold:       0.85,
			TopMoods:             3,
			TopInstruments:       2,
			MinMoodOverlap:       2,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// the environment, in increasing order of precedence, then validates it.
func LoadWithKoanf() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

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

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
// Values that came from YAML are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names (lowercased) to config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"max_upload_bytes": "server.max_upload_bytes",
	"upload_dir":       "server.upload_dir",
	"cors_origins":     "server.cors_origins",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"duckdb_checkpoint": "database.checkpoint_interval",

	"jwt_secret":         "security.jwt_secret",
	"token_ttl":          "security.token_ttl",
	"bcrypt_cost":        "security.bcrypt_cost",
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"catalog_path":         "catalog.songs_path",
	"mood_affinity_path":   "catalog.mood_affinity_path",
	"mood_instrument_path": "catalog.mood_instrument_path",

	"classifier_url":         "classifier.url",
	"classifier_api_key":     "classifier.api_key",
	"classifier_label_path":  "classifier.label_path",
	"classifier_timeout":     "classifier.timeout",
	"classifier_rate":        "classifier.rate_per_second",
	"classifier_burst":       "classifier.burst",
	"classifier_static_mood": "classifier.static_mood",
	"classifier_cache_dir":   "classifier.cache_dir",
	"classifier_cache_ttl":   "classifier.cache_ttl",
	"classifier_cache_size":  "classifier.cache_size",

	"recommend_seed":             "recommend.seed",
	"recommend_instrument_likes": "recommend.instrument_phase_likes",
	"recommend_fallback_likes":   "recommend.fallback_phase_likes",
	"recommend_seed_count":       "recommend.seed_count",
	"recommend_playlist_size":    "recommend.playlist_size",
	"recommend_min_liked":        "recommend.min_liked_for_playlist",
	"recommend_fallback_seed":    "recommend.fallback_seed_enabled",
	"recommend_fuzzy_threshold":  "recommend.fuzzy_threshold",
}

// envTransformFunc maps an environment variable name to a koanf path.
//
//   - JWT_SECRET -> security.jwt_secret
//   - CATALOG_PATH -> catalog.songs_path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
