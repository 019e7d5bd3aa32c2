// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"sort"

	"github.com/tomtom215/moodswipe/internal/models"
)

// Phase is the exploration stage, chosen only by the number of liked songs.
type Phase string

const (
	PhaseMood       Phase = "mood"
	PhaseInstrument Phase = "instrument"
	PhaseFallback   Phase = "fallback"
)

// Selection is the result of NextCandidate.
type Selection struct {
	Song  models.Song
	Phase Phase

	// Random is true when the song came from the uniform fallback, either
	// because Phase is PhaseFallback or because the phase found nothing.
	Random bool

	LikedCount int
}

// ScoredTag pairs a tag with an aggregated score.
type ScoredTag struct {
	Tag   string
	Score float64
}

// PhaseFor returns the exploration phase for a liked-song count.
func (e *Engine) PhaseFor(liked int) Phase {
	switch {
	case liked < e.config.InstrumentPhaseLikes:
		return PhaseMood
	case liked < e.config.FallbackPhaseLikes:
		return PhaseInstrument
	default:
		return PhaseFallback
	}
}

// NextCandidate selects the next song to present given the full ledger. It
// never returns a swiped song and fails with ErrNotFound once every catalog
// song has been swiped.
func (e *Engine) NextCandidate(ledger Ledger) (Selection, error) {
	unswiped := e.unswiped(ledger)
	if len(unswiped) == 0 {
		return Selection{}, ErrNotFound
	}

	likedCount := len(e.likedIndices(ledger))
	sel := Selection{Phase: e.PhaseFor(likedCount), LikedCount: likedCount}

	idx := -1
	switch sel.Phase {
	case PhaseMood:
		idx = e.exploreMoods(ledger)
	case PhaseInstrument:
		idx = e.exploreInstruments(ledger)
	}
	if idx < 0 {
		idx = e.pick(unswiped)
		sel.Random = true
	}

	sel.Song = e.catalog.Songs()[idx]
	e.logger.Debug().
		Str("phase", string(sel.Phase)).
		Bool("random", sel.Random).
		Int("liked", likedCount).
		Int("song_id", sel.Song.ID).
		Msg("next candidate selected")
	return sel, nil
}

// exploreMoods returns a random unswiped song carrying the broadest mood not
// yet seen on any swiped song, or -1.
func (e *Engine) exploreMoods(ledger Ledger) int {
	exclude := e.swipedTags(ledger)
	for _, mood := range e.CandidateMoods(exclude) {
		var pool []int
		for _, i := range e.catalog.IndicesWithTag(mood) {
			if !ledger.Swiped(e.catalog.Songs()[i].ID) {
				pool = append(pool, i)
			}
		}
		if len(pool) > 0 {
			return e.pick(pool)
		}
	}
	return -1
}

// CandidateMoods returns the mood keys absent from exclude, broadest first.
// Moods with equal breadth are ordered by name.
func (e *Engine) CandidateMoods(exclude models.TagSet) []string {
	affinity := e.catalog.MoodAffinity()
	var moods []string
	for _, m := range affinity.Moods() {
		if !exclude.Has(m) {
			moods = append(moods, m)
		}
	}
	sort.SliceStable(moods, func(i, j int) bool {
		return affinity.Breadth(moods[i]) > affinity.Breadth(moods[j])
	})
	return moods
}

// exploreInstruments returns the first unswiped song in catalog order that
// carries one of the top instruments for the liked moods, or -1.
func (e *Engine) exploreInstruments(ledger Ledger) int {
	top := e.InstrumentScores(e.likedTags(ledger))
	if len(top) > e.config.TopInstruments {
		top = top[:e.config.TopInstruments]
	}
	if len(top) == 0 {
		return -1
	}

	wanted := make(models.TagSet, len(top))
	for _, st := range top {
		wanted.Add(st.Tag)
	}
	for i, s := range e.catalog.Songs() {
		if ledger.Swiped(s.ID) {
			continue
		}
		if e.catalog.Tags(i).CountIn(wanted) > 0 {
			return i
		}
	}
	return -1
}

// InstrumentScores sums the instrument scores of every tag in liked that is a
// key of the mood-instrument table. The result is sorted by score descending,
// then by instrument name.
func (e *Engine) InstrumentScores(liked models.TagSet) []ScoredTag {
	table := e.catalog.MoodInstrumentAffinity()
	totals := make(map[string]float64)
	for _, tag := range liked.Sorted() {
		for inst, score := range table[tag] {
			totals[inst] += score
		}
	}
	return rankScores(totals)
}

func rankScores(totals map[string]float64) []ScoredTag {
	out := make([]ScoredTag, 0, len(totals))
	for tag, score := range totals {
		out = append(out, ScoredTag{Tag: tag, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func (e *Engine) unswiped(ledger Ledger) []int {
	songs := e.catalog.Songs()
	out := make([]int, 0, len(songs))
	for i := range songs {
		if !ledger.Swiped(songs[i].ID) {
			out = append(out, i)
		}
	}
	return out
}

// likedIndices returns catalog indices of liked songs. Liked ids missing
// from the catalog are ignored.
func (e *Engine) likedIndices(ledger Ledger) []int {
	var out []int
	for _, id := range ledger.LikedIDs() {
		if i, ok := e.catalog.Index(id); ok {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) likedTags(ledger Ledger) models.TagSet {
	set := make(models.TagSet)
	for _, id := range ledger.LikedIDs() {
		set.Union(e.catalog.TagsOf(id))
	}
	return set
}

func (e *Engine) swipedTags(ledger Ledger) models.TagSet {
	set := make(models.TagSet)
	for _, ev := range ledger.Events() {
		set.Union(e.catalog.TagsOf(ev.SongID))
	}
	return set
}
