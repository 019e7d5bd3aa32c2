// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package middleware provides HTTP middleware shared by every route.
//
// All middleware here uses the func(http.HandlerFunc) http.HandlerFunc shape;
// the api package adapts it to chi's r.Use.
//
//   - RequestID assigns X-Request-ID and seeds the logging context
//   - PrometheusMetrics records request counts, latency and in-flight requests
//   - AccessLog writes one structured log line per request
//
// Metric labels use the chi route pattern (e.g. /api/v1/songs/{id}) rather
// than the raw path so label cardinality stays bounded.
package middleware
