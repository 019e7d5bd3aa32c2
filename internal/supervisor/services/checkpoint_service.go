// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const checkpointTimeout = time.Minute

// Checkpointer flushes the write-ahead log. Implemented by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the database on a fixed interval so the WAL
// stays small between restarts. Failures are logged and retried on the next
// tick; they never restart the service.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	logger   zerolog.Logger
}

// NewCheckpointService creates the service. A non-positive interval makes
// Serve idle until canceled.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewCheckpointService(db Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("service", "checkpoint").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("Periodic checkpoint disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkpoint(ctx)
		}
	}
}

func (s *CheckpointService) checkpoint(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkpointTimeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Checkpoint(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Checkpoint failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Checkpoint complete")
}

func (s *CheckpointService) String() string {
	return "duckdb-checkpoint"
}
