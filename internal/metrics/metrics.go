// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodswipe_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodswipe_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodswipe_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_swipes_total",
			Help: "Total number of recorded swipes",
		},
		[]string{"liked"},
	)

	ExplorationPhase = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_exploration_phase_total",
			Help: "Next-candidate selections by exploration phase and whether the uniform fallback picked the song",
		},
		[]string{"phase", "random"},
	)

	SeedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_seed_requests_total",
			Help: "Seed selections by whether the mood label matched exactly",
		},
		[]string{"exact"},
	)

	PlaylistsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_playlists_generated_total",
			Help: "Synthesized playlists by fallback policy used",
		},
		[]string{"seed_fallback", "pool_fallback"},
	)

	// Classifier Metrics
	ClassifierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_classifier_requests_total",
			Help: "Image classification calls by result",
		},
		[]string{"result"}, // "success", "error", "circuit_open", "rate_limited"
	)

	ClassifierDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodswipe_classifier_duration_seconds",
			Help:    "Duration of external classifier calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	ClassifierCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_classifier_cache_total",
			Help: "Classifier cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: "memory", "disk"; result: "hit", "miss", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moodswipe_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodswipe_auth_attempts_total",
			Help: "Signup and login attempts by outcome",
		},
		[]string{"action", "result"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, path, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordClassification records the outcome and latency of a classifier call.
func RecordClassification(result string, duration time.Duration) {
	ClassifierRequests.WithLabelValues(result).Inc()
	if duration > 0 {
		ClassifierDuration.Observe(duration.Seconds())
	}
}

// RecordCacheLookup records a classifier cache lookup.
func RecordCacheLookup(tier, result string) {
	ClassifierCache.WithLabelValues(tier, result).Inc()
}

// RecordAuthAttempt records a signup or login outcome.
func RecordAuthAttempt(action string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttempts.WithLabelValues(action, result).Inc()
}
