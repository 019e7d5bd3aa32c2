// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package models

import "time"

// PlaylistRecord is a write-once snapshot of a synthesized playlist.
// Songs holds the recommended songs in the order they were sampled.
type PlaylistRecord struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	SourceImage string    `json:"source_image"`
	Songs       []Song    `json:"songs"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaylistResponse is the body of GET /api/v1/playlist.
type PlaylistResponse struct {
	Liked       []Song `json:"liked"`
	Recommended []Song `json:"recommended"`
	Fallback    bool   `json:"fallback"`
	RecordID    int64  `json:"record_id,omitempty"`
}
