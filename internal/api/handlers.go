// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moodswipe/internal/auth"
	"github.com/tomtom215/moodswipe/internal/classifier"
	"github.com/tomtom215/moodswipe/internal/config"
	"github.com/tomtom215/moodswipe/internal/models"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

// UploadStore records photo uploads. Implemented by *database.DB.
type UploadStore interface {
	RecordPhotoUpload(ctx context.Context, userID int64, imagePath, mood string) (models.PhotoUpload, error)
	LatestPhotoUpload(ctx context.Context, userID int64) (models.PhotoUpload, error)
}

// HealthChecker reports database health. Implemented by *database.DB.
type HealthChecker interface {
	Ping(ctx context.Context) error
	CurrentSchemaVersion(ctx context.Context) (int, error)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_auth.go: signup and login
//   - handlers_recommend.go: photo, mood, swipe, next, playlist, history, songs
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	recommend  *recommend.Service
	auth       *auth.Service
	classifier classifier.Classifier
	uploads    UploadStore
	health     HealthChecker
	config     *config.Config
	startTime  time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	cfg *config.Config,
	svc *recommend.Service,
	authSvc *auth.Service,
	cls classifier.Classifier,
	uploads UploadStore,
	health HealthChecker,
) *Handler {
	return &Handler{
		recommend:  svc,
		auth:       authSvc,
		classifier: cls,
		uploads:    uploads,
		health:     health,
		config:     cfg,
		startTime:  time.Now(),
	}
}
