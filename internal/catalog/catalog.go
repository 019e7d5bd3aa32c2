// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package catalog

import (
	"fmt"
	"strings"

	"github.com/tomtom215/moodswipe/internal/models"
)

// Catalog is the immutable song collection plus both similarity tables.
// It is built once at startup and shared by all requests without locking.
type Catalog struct {
	songs          []models.Song
	flat           []models.TagSet
	byID           map[int]int
	byTag          map[string][]int
	moods          MoodAffinity
	moodInstrument MoodInstrumentAffinity
}

// New validates songs and builds the lookup indexes. The song slice order
// is the catalog order used by every first-match scan.
func New(songs []models.Song, moods MoodAffinity, moodInstrument MoodInstrumentAffinity) (*Catalog, error) {
	if len(songs) == 0 {
		return nil, fmt.Errorf("catalog has no songs")
	}
	if moods == nil {
		moods = MoodAffinity{}
	}
	moods.normalize()
	if moodInstrument == nil {
		moodInstrument = MoodInstrumentAffinity{}
	}

	c := &Catalog{
		songs:          make([]models.Song, len(songs)),
		flat:           make([]models.TagSet, len(songs)),
		byID:           make(map[int]int, len(songs)),
		byTag:          make(map[string][]int),
		moods:          moods,
		moodInstrument: moodInstrument,
	}
	copy(c.songs, songs)

	for i := range c.songs {
		s := &c.songs[i]
		if s.ID <= 0 {
			return nil, fmt.Errorf("song at index %d has invalid id %d", i, s.ID)
		}
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("song %d has no title", s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate song id %d", s.ID)
		}
		c.byID[s.ID] = i
		c.flat[i] = s.FlattenTags()
		for _, tag := range c.flat[i].Sorted() {
			c.byTag[tag] = append(c.byTag[tag], i)
		}
	}
	return c, nil
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	return len(c.songs)
}

// Songs returns the songs in catalog order. Callers must not modify them.
func (c *Catalog) Songs() []models.Song {
	return c.songs
}

// Song returns the song with the given id.
func (c *Catalog) Song(id int) (models.Song, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Song{}, false
	}
	return c.songs[i], true
}

// Index returns the catalog position of the song with the given id.
func (c *Catalog) Index(id int) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Tags returns the flattened tag set of the song at catalog index i.
func (c *Catalog) Tags(i int) models.TagSet {
	return c.flat[i]
}

// TagsOf returns the flattened tags of the song with the given id.
func (c *Catalog) TagsOf(id int) models.TagSet {
	i, ok := c.byID[id]
	if !ok {
		return models.TagSet{}
	}
	return c.flat[i]
}

// IndicesWithTag returns the catalog indices of songs carrying tag, in catalog order.
func (c *Catalog) IndicesWithTag(tag string) []int {
	return c.byTag[tag]
}

// MoodAffinity returns the mood to related-moods table.
func (c *Catalog) MoodAffinity() MoodAffinity {
	return c.moods
}

// MoodInstrumentAffinity returns the mood to instrument-score table.
func (c *Catalog) MoodInstrumentAffinity() MoodInstrumentAffinity {
	return c.moodInstrument
}

// IsMood reports whether tag is a key of the mood affinity table.
func (c *Catalog) IsMood(tag string) bool {
	return c.moods.Has(tag)
}
