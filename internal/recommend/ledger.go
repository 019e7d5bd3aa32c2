// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"github.com/tomtom215/moodswipe/internal/models"
)

// Ledger is a read view over one user's swipe history, in append order.
// The swiped and liked sets are derived on construction.
type Ledger struct {
	events  []models.SwipeEvent
	swiped  map[int]struct{}
	liked   map[int]struct{}
	likeSeq []int
}

// NewLedger derives the swiped and liked sets from events.
func NewLedger(events []models.SwipeEvent) Ledger {
	l := Ledger{
		events: events,
		swiped: make(map[int]struct{}, len(events)),
		liked:  make(map[int]struct{}),
	}
	for _, ev := range events {
		l.swiped[ev.SongID] = struct{}{}
		if !ev.Liked {
			continue
		}
		if _, seen := l.liked[ev.SongID]; !seen {
			l.liked[ev.SongID] = struct{}{}
			l.likeSeq = append(l.likeSeq, ev.SongID)
		}
	}
	return l
}

// Events returns the underlying events.
func (l Ledger) Events() []models.SwipeEvent {
	return l.events
}

// Swiped reports whether the song has been acted on.
func (l Ledger) Swiped(songID int) bool {
	_, ok := l.swiped[songID]
	return ok
}

// Liked reports whether the song has been liked.
func (l Ledger) Liked(songID int) bool {
	_, ok := l.liked[songID]
	return ok
}

// SwipedCount is the number of distinct songs acted on.
func (l Ledger) SwipedCount() int {
	return len(l.swiped)
}

// LikedIDs returns liked song ids in the order they were first liked.
func (l Ledger) LikedIDs() []int {
	out := make([]int, len(l.likeSeq))
	copy(out, l.likeSeq)
	return out
}
