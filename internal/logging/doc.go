// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package logging provides the process-wide zerolog logger for moodswipe.
//
// Call Init once from main with the values loaded by internal/config, then log
// through the package functions:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("listening")
//	logging.Error().Err(err).Msg("catalog load failed")
//
// Request-scoped logging goes through Ctx, which adds the request id,
// correlation id and authenticated user stored in the context by the HTTP
// middleware:
//
//	logging.Ctx(r.Context()).Info().Int("song_id", id).Msg("swipe recorded")
//
// Components that need a long-lived logger derive one with WithComponent.
// Libraries that only speak log/slog (the suture supervisor) get an adapter
// from NewSlogLogger.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
