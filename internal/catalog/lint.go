// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package catalog

import (
	"sort"

	"github.com/samber/lo"
)

// Report summarizes data quality problems that do not prevent loading but
// usually mean the tables and the catalog disagree.
type Report struct {
	Songs             int      `json:"songs"`
	Moods             int      `json:"moods"`
	InstrumentMoods   int      `json:"instrument_moods"`
	UnknownRelated    []string `json:"unknown_related_moods,omitempty"`
	UnknownInstrument []string `json:"unknown_instrument_moods,omitempty"`
	UntaggedMoodSongs []int    `json:"songs_without_mood,omitempty"`
	MoodsWithoutSongs []string `json:"moods_without_songs,omitempty"`
}

// Lint inspects the catalog for dangling references.
func (c *Catalog) Lint() Report {
	r := Report{
		Songs:           len(c.songs),
		Moods:           len(c.moods),
		InstrumentMoods: len(c.moodInstrument),
	}

	unknown := map[string]struct{}{}
	for _, related := range c.moods {
		for _, rm := range related {
			if !c.moods.Has(rm.Mood) {
				unknown[rm.Mood] = struct{}{}
			}
		}
	}
	r.UnknownRelated = sortedKeys(unknown)

	r.UnknownInstrument = lo.Filter(sortedKeys(c.moodInstrument), func(m string, _ int) bool {
		return !c.moods.Has(m)
	})

	for i, s := range c.songs {
		hasMood := false
		for tag := range c.flat[i] {
			if c.moods.Has(tag) {
				hasMood = true
				break
			}
		}
		if !hasMood {
			r.UntaggedMoodSongs = append(r.UntaggedMoodSongs, s.ID)
		}
	}

	r.MoodsWithoutSongs = lo.Filter(c.moods.Moods(), func(m string, _ int) bool {
		return len(c.byTag[m]) == 0
	})
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
