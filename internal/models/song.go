// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package models

import "sort"

// Conventional tag categories. The set of categories is data, not code:
// algorithms only ever look at FlattenTags.
const (
	CategoryMood       = "mood"
	CategoryInstrument = "instrument"
	CategoryGenre      = "genre"
)

// Tags maps a category name to the tag strings in that category.
type Tags map[string][]string

// Song is one catalog entry.
type Song struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url,omitempty"`
	Tags   Tags   `json:"tags"`
}

// TagSet is a set of tag strings.
type TagSet map[string]struct{}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Add inserts every tag in tags.
func (s TagSet) Add(tags ...string) {
	for _, t := range tags {
		s[t] = struct{}{}
	}
}

// Union adds every member of other to s.
func (s TagSet) Union(other TagSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// CountIn returns how many members of s are also in other.
func (s TagSet) CountIn(other TagSet) int {
	n := 0
	for t := range s {
		if other.Has(t) {
			n++
		}
	}
	return n
}

// FlattenTags returns the union of every category's tags, ignoring category.
func (s *Song) FlattenTags() TagSet {
	set := make(TagSet)
	for _, tags := range s.Tags {
		set.Add(tags...)
	}
	return set
}

// HasTag reports whether any category of the song carries tag.
func (s *Song) HasTag(tag string) bool {
	for _, tags := range s.Tags {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
	}
	return false
}
