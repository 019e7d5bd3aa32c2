// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodswipe/internal/catalog"
	"github.com/tomtom215/moodswipe/internal/models"
)

func song(id int, moods, instruments []string) models.Song {
	tags := models.Tags{}
	if len(moods) > 0 {
		tags[models.CategoryMood] = moods
	}
	if len(instruments) > 0 {
		tags[models.CategoryInstrument] = instruments
	}
	return models.Song{ID: id, Title: "song", Artist: "artist", Tags: tags}
}

func related(pairs ...interface{}) []catalog.RelatedMood {
	var out []catalog.RelatedMood
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, catalog.RelatedMood{Mood: pairs[i].(string), Score: pairs[i+1].(float64)})
	}
	return out
}

func newTestEngine(t *testing.T, songs []models.Song, moods catalog.MoodAffinity, inst catalog.MoodInstrumentAffinity, cfg *Config, seed int64) *Engine {
	t.Helper()
	cat, err := catalog.New(songs, moods, inst)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	e, err := NewEngine(cat, cfg, zerolog.New(io.Discard), WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// ledgerOf builds a ledger from alternating song id / liked pairs.
func ledgerOf(swipes ...interface{}) Ledger {
	var events []models.SwipeEvent
	for i := 0; i+1 < len(swipes); i += 2 {
		events = append(events, models.SwipeEvent{
			ID:        int64(len(events) + 1),
			UserID:    1,
			SongID:    swipes[i].(int),
			Liked:     swipes[i+1].(bool),
			CreatedAt: time.Unix(int64(i), 0),
		})
	}
	return NewLedger(events)
}

func ids(songs []models.Song) []int {
	out := make([]int, len(songs))
	for i, s := range songs {
		out[i] = s.ID
	}
	return out
}
