// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package metrics defines the Prometheus metrics exported on /metrics.
//
// Metrics are package-level promauto collectors registered with the default
// registry at init. Label cardinality is bounded: paths are chi route
// patterns, never raw URLs.
package metrics
