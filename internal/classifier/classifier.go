// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/moodswipe/internal/config"
	"github.com/tomtom215/moodswipe/internal/logging"
)

// ErrClassification is matched by every *ClassificationError.
var ErrClassification = errors.New("classification failed")

// Classifier maps image bytes to a mood label.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (string, error)
}

// ClassificationError reports which step of classification failed.
type ClassificationError struct {
	Op  string
	Err error
}

func (e *ClassificationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("classification failed: %s", e.Op)
	}
	return fmt.Sprintf("classification failed: %s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrClassification and the underlying cause.
func (e *ClassificationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrClassification}
	}
	return []error{ErrClassification, e.Err}
}

func classificationError(op string, err error) error {
	return &ClassificationError{Op: op, Err: err}
}

// StaticClassifier always answers the same label.
type StaticClassifier struct {
	Mood string
}

// Classify returns the fixed label, failing only for an empty image.
func (s StaticClassifier) Classify(_ context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", classificationError("read", errors.New("empty image"))
	}
	return s.Mood, nil
}

// New builds the configured classifier stack. The returned CachedClassifier
// must be closed to release the disk cache.
func New(cfg *config.ClassifierConfig) (*CachedClassifier, error) {
	var inner Classifier
	if cfg.URL == "" {
		logging.Warn().Str("mood", cfg.StaticMood).Msg("No classifier URL configured, using static classifier")
		inner = StaticClassifier{Mood: cfg.StaticMood}
	} else {
		inner = NewHTTPClassifier(cfg)
	}

	cached, err := NewCachedClassifier(inner, CacheOptions{
		Size: cfg.CacheSize,
		TTL:  cfg.CacheTTL,
		Dir:  cfg.CacheDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier cache: %w", err)
	}
	return cached, nil
}
