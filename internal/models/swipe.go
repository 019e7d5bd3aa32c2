// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package models

import "time"

// SwipeEvent records one decision. Events are append-only; exactly one is
// written per swipe.
type SwipeEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SongID    int       `json:"song_id"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// SwipeRequest is the body of POST /api/v1/swipe.
type SwipeRequest struct {
	SongID int   `json:"song_id" validate:"min=1"`
	Liked  *bool `json:"liked" validate:"required"`
}

// SwipeResponse carries the next song to present.
type SwipeResponse struct {
	Song       *Song  `json:"song"`
	Phase      string `json:"phase"`
	LikedCount int    `json:"liked_count"`
}
