// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/moodswipe/internal/models"
)

// RecordPhotoUpload stores a saved image and the mood it was classified as.
func (db *DB) RecordPhotoUpload(ctx context.Context, userID int64, imagePath, mood string) (upload models.PhotoUpload, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("insert", "photo_uploads", start, err) }()

	upload = models.PhotoUpload{
		UserID:    userID,
		ImagePath: imagePath,
		Mood:      mood,
		CreatedAt: time.Now().UTC(),
	}
	err = withWriteRetry(ctx, func() error {
		return db.conn.QueryRowContext(ctx,
			`INSERT INTO photo_uploads (user_id, image_path, mood, created_at)
			 VALUES (?, ?, ?, ?) RETURNING id`,
			upload.UserID, upload.ImagePath, nullString(mood), upload.CreatedAt,
		).Scan(&upload.ID)
	})
	if err != nil {
		return models.PhotoUpload{}, fmt.Errorf("failed to record photo upload: %w", err)
	}
	return upload, nil
}

// LatestPhotoUpload returns the user's most recent upload, or
// ErrUploadNotFound.
func (db *DB) LatestPhotoUpload(ctx context.Context, userID int64) (models.PhotoUpload, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		upload models.PhotoUpload
		mood   sql.NullString
	)
	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, image_path, mood, created_at
		 FROM photo_uploads WHERE user_id = ? ORDER BY id DESC LIMIT 1`,
		userID,
	).Scan(&upload.ID, &upload.UserID, &upload.ImagePath, &mood, &upload.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		observe("select", "photo_uploads", start, nil)
		return models.PhotoUpload{}, ErrUploadNotFound
	}
	observe("select", "photo_uploads", start, err)
	if err != nil {
		return models.PhotoUpload{}, fmt.Errorf("failed to query photo upload: %w", err)
	}
	upload.Mood = mood.String
	return upload, nil
}
