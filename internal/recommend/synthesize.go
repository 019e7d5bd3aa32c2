// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"github.com/samber/lo"

	"github.com/tomtom215/moodswipe/internal/models"
)

// Playlist is the result of Synthesize.
type Playlist struct {
	// Liked is the working liked-set: the user's liked songs, or the random
	// substitute sample when SeedFallback is set.
	Liked       []models.Song
	Recommended []models.Song

	TopMoods       []string
	TopInstruments []string

	// SeedFallback is set when too few songs were liked and a random sample
	// of unliked songs stood in for them.
	SeedFallback bool

	// PoolFallback is set when no song passed the mood and instrument filter
	// and recommendations were drawn from every eligible song instead.
	PoolFallback bool
}

// Synthesize aggregates the tags of the liked songs and samples up to
// PlaylistSize recommendations that share at least MinMoodOverlap of the top
// moods and at least one of the top instruments. ledger only needs to hold
// the liked events.
func (e *Engine) Synthesize(ledger Ledger) (Playlist, error) {
	var p Playlist

	working := e.likedIndices(ledger)
	if len(working) < e.config.MinLikedForPlaylist {
		if !e.config.FallbackSeedEnabled {
			return p, ErrInsufficientSignal
		}
		var unliked []int
		for i, s := range e.catalog.Songs() {
			if !ledger.Liked(s.ID) {
				unliked = append(unliked, i)
			}
		}
		working = e.sample(unliked, e.config.MinLikedForPlaylist)
		p.SeedFallback = true
	}

	excluded := make(map[int]struct{}, len(working))
	for _, i := range working {
		excluded[i] = struct{}{}
	}
	for _, id := range ledger.LikedIDs() {
		if i, ok := e.catalog.Index(id); ok {
			excluded[i] = struct{}{}
		}
	}

	moodFreq := make(map[string]float64)
	instFreq := make(map[string]float64)
	for _, i := range working {
		for tag := range e.catalog.Tags(i) {
			if e.catalog.IsMood(tag) {
				moodFreq[tag]++
			} else {
				instFreq[tag]++
			}
		}
	}
	p.TopMoods = topTags(moodFreq, e.config.TopMoods)
	p.TopInstruments = topTags(instFreq, e.config.TopInstruments)

	topMoods := make(models.TagSet)
	topMoods.Add(p.TopMoods...)
	topInst := make(models.TagSet)
	topInst.Add(p.TopInstruments...)

	var eligible, pool []int
	for i := range e.catalog.Songs() {
		if _, skip := excluded[i]; skip {
			continue
		}
		eligible = append(eligible, i)
		tags := e.catalog.Tags(i)
		if tags.CountIn(topMoods) >= e.config.MinMoodOverlap && tags.CountIn(topInst) >= 1 {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		pool = eligible
		p.PoolFallback = true
	}

	p.Liked = e.songsAt(working)
	p.Recommended = e.songsAt(e.sample(pool, e.config.PlaylistSize))

	e.logger.Debug().
		Strs("top_moods", p.TopMoods).
		Strs("top_instruments", p.TopInstruments).
		Int("pool", len(pool)).
		Bool("seed_fallback", p.SeedFallback).
		Bool("pool_fallback", p.PoolFallback).
		Msg("playlist synthesized")
	return p, nil
}

// topTags returns the n most frequent tags, ties broken by name.
func topTags(freq map[string]float64, n int) []string {
	ranked := rankScores(freq)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return lo.Map(ranked, func(st ScoredTag, _ int) string { return st.Tag })
}

func (e *Engine) songsAt(indices []int) []models.Song {
	songs := e.catalog.Songs()
	out := make([]models.Song, 0, len(indices))
	for _, i := range indices {
		out = append(out, songs[i])
	}
	return out
}
