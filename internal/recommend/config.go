// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import "fmt"

// Config tunes exploration, seeding and synthesis.
type Config struct {
	// InstrumentPhaseLikes is the liked-song count at which exploration
	// switches from moods to instruments.
	InstrumentPhaseLikes int

	// FallbackPhaseLikes is the liked-song count at which exploration
	// stops steering and picks uniformly at random.
	FallbackPhaseLikes int

	// SeedCount is the number of related moods used to seed a session.
	SeedCount int

	// PlaylistSize caps the number of recommended songs.
	PlaylistSize int

	// MinLikedForPlaylist is the liked-song count synthesis requires.
	MinLikedForPlaylist int

	// FallbackSeedEnabled substitutes a random sample of unliked songs when
	// too few songs are liked. When false, ErrInsufficientSignal is returned.
	FallbackSeedEnabled bool

	// FuzzyThreshold is the minimum Jaro-Winkler similarity for approximate
	// mood matching.
	FuzzyThreshold float64

	TopMoods       int
	TopInstruments int

	// MinMoodOverlap is how many of the top moods a recommended song must carry.
	MinMoodOverlap int

	// Seed fixes the random source. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
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
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.InstrumentPhaseLikes < 1 {
		return fmt.Errorf("instrument phase likes must be at least 1, got %d", c.InstrumentPhaseLikes)
	}
	if c.FallbackPhaseLikes <= c.InstrumentPhaseLikes {
		return fmt.Errorf("fallback phase likes (%d) must exceed instrument phase likes (%d)",
			c.FallbackPhaseLikes, c.InstrumentPhaseLikes)
	}
	if c.SeedCount < 1 {
		return fmt.Errorf("seed count must be positive")
	}
	if c.PlaylistSize < 1 {
		return fmt.Errorf("playlist size must be positive")
	}
	if c.MinLikedForPlaylist < 1 {
		return fmt.Errorf("minimum liked songs must be positive")
	}
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be in (0, 1], got %v", c.FuzzyThreshold)
	}
	if c.TopMoods < 1 || c.TopInstruments < 1 {
		return fmt.Errorf("top moods and top instruments must be positive")
	}
	if c.MinMoodOverlap < 1 || c.MinMoodOverlap > c.TopMoods {
		return fmt.Errorf("mood overlap must be between 1 and %d, got %d", c.TopMoods, c.MinMoodOverlap)
	}
	return nil
}
