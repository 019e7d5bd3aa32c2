// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodswipe/internal/catalog"
)

// Engine holds the read-only catalog and the random source. Every operation
// is a pure function of its arguments plus random draws, so an Engine is safe
// for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	config  *Config
	logger  zerolog.Logger

	rng   *rand.Rand
	rngMu sync.Mutex
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand injects the random source. Tests use a fixed seed.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// NewEngine creates an engine over cat. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewEngine(cat *catalog.Catalog, cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		catalog: cat,
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // selection randomness, not security
	}
	return e, nil
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// pick returns one element of candidates uniformly at random.
func (e *Engine) pick(candidates []int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return candidates[e.rng.Intn(len(candidates))]
}

// sample draws up to k distinct elements of candidates uniformly at random,
// without modifying candidates.
func (e *Engine) sample(candidates []int, k int) []int {
	if k > len(candidates) {
		k = len(candidates)
	}
	pool := make([]int, len(candidates))
	copy(pool, candidates)

	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	for i := 0; i < k; i++ {
		j := i + e.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
