// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodswipe/internal/models"
)

// SavePlaylist stores the recommended songs of a synthesized playlist.
func (db *DB) SavePlaylist(ctx context.Context, userID int64, imageRef string, songs []models.Song) (rec models.PlaylistRecord, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("insert", "playlist_history", start, err) }()

	if songs == nil {
		songs = []models.Song{}
	}
	payload, err := json.Marshal(songs)
	if err != nil {
		return models.PlaylistRecord{}, fmt.Errorf("failed to encode playlist songs: %w", err)
	}

	rec = models.PlaylistRecord{
		UserID:      userID,
		SourceImage: imageRef,
		Songs:       songs,
		CreatedAt:   time.Now().UTC(),
	}
	err = withWriteRetry(ctx, func() error {
		return db.conn.QueryRowContext(ctx,
			`INSERT INTO playlist_history (user_id, source_image, songs_json, created_at)
			 VALUES (?, ?, ?, ?) RETURNING id`,
			rec.UserID, nullString(imageRef), string(payload), rec.CreatedAt,
		).Scan(&rec.ID)
	})
	if err != nil {
		return models.PlaylistRecord{}, fmt.Errorf("failed to save playlist: %w", err)
	}
	return rec, nil
}

// ListPlaylists returns the user's playlists, newest first.
func (db *DB) ListPlaylists(ctx context.Context, userID int64) (records []models.PlaylistRecord, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("select", "playlist_history", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, source_image, songs_json, created_at
		 FROM playlist_history WHERE user_id = ? ORDER BY id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer closeWithLog(rows, "playlist rows")

	for rows.Next() {
		var (
			rec     models.PlaylistRecord
			image   sql.NullString
			payload string
		)
		if err = rows.Scan(&rec.ID, &rec.UserID, &image, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		rec.SourceImage = image.String
		if err = json.Unmarshal([]byte(payload), &rec.Songs); err != nil {
			return nil, fmt.Errorf("failed to decode playlist %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlists: %w", err)
	}
	return records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
