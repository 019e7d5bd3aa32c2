// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package database persists users, swipe ledgers, photo uploads and playlist
// history in an embedded DuckDB file.
//
// # Architecture
//
//   - database.go: connection lifecycle, initialization and checkpointing
//   - schema.go: table, sequence and index creation
//   - migrations.go: versioned schema migrations
//   - connection.go: pool configuration and error classification
//   - swipes.go: the append-only swipe ledger
//   - playlists.go: playlist history
//   - users.go: accounts
//   - uploads.go: photo uploads and their classified mood
//
// # Swipe Ledger
//
// swipe_history is append-only. Rows are never updated or deleted, and the
// recommendation engine derives every set it needs from the full ledger.
// Listing returns rows in insertion order.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	ev, err := db.AppendSwipe(ctx, userID, songID, true)
//
// # Thread Safety
//
// DB is safe for concurrent use. Concurrent writers may hit DuckDB
// transaction conflicts, which are retried with a short backoff.
package database
