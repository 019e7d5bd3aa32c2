// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/moodswipe/internal/models"
)

// AppendSwipe records one swipe. It is the only write to swipe_history.
func (db *DB) AppendSwipe(ctx context.Context, userID int64, songID int, liked bool) (ev models.SwipeEvent, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("insert", "swipe_history", start, err) }()

	ev = models.SwipeEvent{
		UserID:    userID,
		SongID:    songID,
		Liked:     liked,
		CreatedAt: time.Now().UTC(),
	}
	err = withWriteRetry(ctx, func() error {
		return db.conn.QueryRowContext(ctx,
			`INSERT INTO swipe_history (user_id, song_id, liked, created_at)
			 VALUES (?, ?, ?, ?) RETURNING id`,
			ev.UserID, ev.SongID, ev.Liked, ev.CreatedAt,
		).Scan(&ev.ID)
	})
	if err != nil {
		return models.SwipeEvent{}, fmt.Errorf("failed to append swipe: %w", err)
	}
	return ev, nil
}

// ListSwipes returns the user's full ledger in insertion order.
func (db *DB) ListSwipes(ctx context.Context, userID int64) ([]models.SwipeEvent, error) {
	return db.listSwipes(ctx, userID, false)
}

// ListLikedSwipes returns only the liked events, in insertion order.
func (db *DB) ListLikedSwipes(ctx context.Context, userID int64) ([]models.SwipeEvent, error) {
	return db.listSwipes(ctx, userID, true)
}

func (db *DB) listSwipes(ctx context.Context, userID int64, likedOnly bool) (events []models.SwipeEvent, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("select", "swipe_history", start, err) }()

	query := `SELECT id, user_id, song_id, liked, created_at FROM swipe_history WHERE user_id = ?`
	if likedOnly {
		query += ` AND liked`
	}
	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes: %w", err)
	}
	defer closeWithLog(rows, "swipe rows")

	for rows.Next() {
		var ev models.SwipeEvent
		if err = rows.Scan(&ev.ID, &ev.UserID, &ev.SongID, &ev.Liked, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swipe: %w", err)
		}
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate swipes: %w", err)
	}
	return events, nil
}

// SwipeCounts returns the number of swipes and likes recorded for a user.
func (db *DB) SwipeCounts(ctx context.Context, userID int64) (total, liked int, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("count", "swipe_history", start, err) }()

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE liked) FROM swipe_history WHERE user_id = ?`,
		userID,
	).Scan(&total, &liked)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count swipes: %w", err)
	}
	return total, liked, nil
}
