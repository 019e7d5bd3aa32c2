// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

/*
schema.go - Database Schema Management

Tables:
  - users: accounts keyed by a unique email
  - swipe_history: append-only like/dislike ledger, one row per swipe
  - photo_uploads: stored images and the mood they were classified as
  - playlist_history: synthesized playlists with the recommended songs as JSON

Row ids come from sequences so concurrent inserts never race on MAX(id)+1.
Timestamps are written by the application in UTC.
*/
//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequences and core tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS swipe_history_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS photo_uploads_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS playlist_history_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			email TEXT NOT NULL UNIQUE,
			hashed_password TEXT NOT NULL,
			nickname TEXT,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS swipe_history (
			id BIGINT PRIMARY KEY DEFAULT nextval('swipe_history_id_seq'),
			user_id BIGINT NOT NULL,
			song_id INTEGER NOT NULL,
			liked BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS photo_uploads (
			id BIGINT PRIMARY KEY DEFAULT nextval('photo_uploads_id_seq'),
			user_id BIGINT NOT NULL,
			image_path TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS playlist_history (
			id BIGINT PRIMARY KEY DEFAULT nextval('playlist_history_id_seq'),
			user_id BIGINT NOT NULL,
			source_image TEXT,
			songs_json TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}
}

// createIndexes creates the lookup indexes used by per-user queries
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_swipe_history_user ON swipe_history(user_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_photo_uploads_user ON photo_uploads(user_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_playlist_history_user ON playlist_history(user_id, id)`,
	}
	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
