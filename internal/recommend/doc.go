// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package recommend implements the swipe exploration engine, mood seeding and
// playlist synthesis.
//
// # Exploration
//
// NextCandidate picks the next song to show from the user's swipe ledger.
// The phase depends only on how many songs the user has liked:
//
//   - Mood phase: a random song carrying the broadest mood that no swiped
//     song carries yet. Breadth is the number of related moods.
//   - Instrument phase: the first unswiped song in catalog order that carries
//     one of the two instruments scoring highest for the liked moods.
//   - Fallback phase: a uniformly random unswiped song.
//
// When a phase finds nothing it falls back to a random unswiped song. A song
// is never offered twice, and ErrNotFound is returned once the catalog is
// exhausted.
//
// # Seeding
//
// SeedSongs maps a classifier label onto a mood key (exact, then Jaro-Winkler
// similarity) and returns one song per top related mood.
//
// # Synthesis
//
// Synthesize takes the most frequent moods and instruments of the liked songs
// and samples recommendations that share enough of both.
//
// # Usage
//
//	cat, err := catalog.Load(ctx, paths)
//	engine, err := recommend.NewEngine(cat, recommend.DefaultConfig(), logger)
//	svc := recommend.NewService(engine, db, db)
//
//	sel, err := svc.Swipe(ctx, userID, songID, true)
//
// # Thread Safety
//
// Engine holds no per-user state and is safe for concurrent use. The random
// source is guarded by a mutex. Service serializes swipes per user so each
// append is observed by the read that follows it.
package recommend
