// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package classifier turns an uploaded image into a mood label.
//
// The production stack is a CachedClassifier in front of an HTTPClassifier:
//
//	CachedClassifier (ccache hot tier, optional badger disk tier)
//	  -> HTTPClassifier (rate limiter, circuit breaker, gjson label extraction)
//
// Every failure to produce a label is a *ClassificationError, which matches
// ErrClassification under errors.Is. Cache failures are logged and bypassed.
// When no classifier URL is configured, StaticClassifier answers a fixed
// label so the rest of the application can run without the external service.
package classifier
