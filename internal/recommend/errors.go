// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import "errors"

var (
	// ErrInvalidMood means a classifier label matched no mood key, exactly
	// or approximately. It is a client input error.
	ErrInvalidMood = errors.New("mood does not match any known mood")

	// ErrNotFound means every catalog song has been swiped. It is a terminal
	// state of exploration, not a failure.
	ErrNotFound = errors.New("no unswiped songs remain")

	// ErrInsufficientSignal is returned by Synthesize when too few songs are
	// liked and the fallback seed sample is disabled.
	ErrInsufficientSignal = errors.New("not enough liked songs to build a playlist")

	// ErrUnknownSong means a swipe referenced a song id outside the catalog.
	ErrUnknownSong = errors.New("song is not in the catalog")
)
