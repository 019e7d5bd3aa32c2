// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/moodswipe/internal/models"
)

// Jaro-Winkler parameters: boost applies above 0.7, common prefix up to 4.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// NormalizeMood reduces an untrusted label to lowercase ASCII letters.
// Accents are stripped first so "Mélancolie" becomes "melancolie".
func NormalizeMood(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MoodMatch describes how a label resolved to a mood key.
type MoodMatch struct {
	Label      string  `json:"label"`
	Normalized string  `json:"normalized"`
	Mood       string  `json:"mood"`
	Exact      bool    `json:"exact"`
	Similarity float64 `json:"similarity"`
}

// ResolveMood maps a classifier label to a mood key: exact match after
// normalization, otherwise the most similar key at or above the fuzzy
// threshold. Equal similarities resolve to the alphabetically first key.
func (e *Engine) ResolveMood(label string) (MoodMatch, error) {
	m := MoodMatch{Label: label, Normalized: NormalizeMood(label)}
	if m.Normalized == "" {
		return m, fmt.Errorf("%w: %q normalizes to an empty string", ErrInvalidMood, label)
	}

	affinity := e.catalog.MoodAffinity()
	if affinity.Has(m.Normalized) {
		m.Mood, m.Exact, m.Similarity = m.Normalized, true, 1
		return m, nil
	}

	best, bestScore := "", 0.0
	for _, key := range affinity.Moods() {
		score := smetrics.JaroWinkler(m.Normalized, key, jwBoostThreshold, jwPrefixSize)
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	if best == "" || bestScore < e.config.FuzzyThreshold {
		return m, fmt.Errorf("%w: %q", ErrInvalidMood, label)
	}

	m.Mood, m.Similarity = best, bestScore
	e.logger.Debug().
		Str("label", m.Normalized).
		Str("mood", best).
		Float64("similarity", bestScore).
		Msg("mood resolved approximately")
	return m, nil
}

// SeedSongs resolves label and picks one random song for each of the top
// related moods, skipping moods with no song left. Songs are returned in the
// order their moods were considered; no song appears twice.
func (e *Engine) SeedSongs(label string) (MoodMatch, []models.Song, error) {
	match, err := e.ResolveMood(label)
	if err != nil {
		return match, nil, err
	}

	chosen := make(map[int]struct{}, e.config.SeedCount)
	songs := make([]models.Song, 0, e.config.SeedCount)
	for _, related := range e.catalog.MoodAffinity().Top(match.Mood, e.config.SeedCount) {
		var pool []int
		for _, i := range e.catalog.IndicesWithTag(related.Mood) {
			if _, taken := chosen[i]; !taken {
				pool = append(pool, i)
			}
		}
		if len(pool) == 0 {
			continue
		}
		i := e.pick(pool)
		chosen[i] = struct{}{}
		songs = append(songs, e.catalog.Songs()[i])
	}
	return match, songs, nil
}
