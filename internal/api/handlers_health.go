// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moodswipe/internal/models"
)

const readinessTimeout = 2 * time.Second

// HealthLive returns 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady returns 200 when the database answers, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := models.HealthStatus{
		Status:       "ready",
		CatalogSongs: h.recommend.Engine().Catalog().Len(),
		Uptime:       time.Since(h.startTime).Seconds(),
	}

	if err := h.health.Ping(ctx); err != nil {
		status.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     status,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    "NOT_READY",
				Message: "Database is not reachable",
			},
		})
		return
	}
	status.DatabaseConnected = true
	if v, err := h.health.CurrentSchemaVersion(ctx); err == nil {
		status.SchemaVersion = v
	}

	respondSuccess(w, http.StatusOK, status, start)
}
