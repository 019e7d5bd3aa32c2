// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/moodswipe/internal/auth"
	"github.com/tomtom215/moodswipe/internal/classifier"
	"github.com/tomtom215/moodswipe/internal/database"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors is checked in order with errors.Is.
var serviceErrors = []errorMapping{
	{recommend.ErrInvalidMood, http.StatusUnprocessableEntity, "INVALID_MOOD", "Mood does not match any known mood"},
	{classifier.ErrClassification, http.StatusBadGateway, "CLASSIFICATION_FAILED", "Could not classify the image"},
	{recommend.ErrNotFound, http.StatusNotFound, "NO_MORE_CANDIDATES", "Every song has been swiped"},
	{recommend.ErrInsufficientSignal, http.StatusConflict, "INSUFFICIENT_SIGNAL", "Like more songs before building a playlist"},
	{recommend.ErrUnknownSong, http.StatusNotFound, "SONG_NOT_FOUND", "Song not found"},
	{database.ErrUserExists, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password"},
}

// respondServiceError maps domain errors to HTTP responses. Anything
// unrecognized is a 500 whose detail is only logged.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			var logged error
			if m.status >= http.StatusInternalServerError {
				logged = err
			}
			respondError(w, r, m.status, m.code, m.message, logged)
			return
		}
	}
	respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
}
