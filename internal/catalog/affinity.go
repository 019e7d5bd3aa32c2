// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package catalog

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// RelatedMood is one entry of a mood's association list.
type RelatedMood struct {
	Mood  string  `json:"mood"`
	Score float64 `json:"score"`
}

// MoodAffinity maps a mood tag to its related moods, sorted by score
// descending with ties broken by mood name ascending. Scores are only
// comparable within one mood's list.
type MoodAffinity map[string][]RelatedMood

// MoodInstrumentAffinity maps a mood tag to instrument scores.
type MoodInstrumentAffinity map[string]map[string]float64

// Has reports whether mood is a key of the table.
func (a MoodAffinity) Has(mood string) bool {
	_, ok := a[mood]
	return ok
}

// Moods returns every key in ascending order.
func (a MoodAffinity) Moods() []string {
	keys := lo.Keys(a)
	sort.Strings(keys)
	return keys
}

// Breadth is the length of the mood's related list.
func (a MoodAffinity) Breadth(mood string) int {
	return len(a[mood])
}

// Top returns at most n related moods with the highest scores.
func (a MoodAffinity) Top(mood string, n int) []RelatedMood {
	related := a[mood]
	if n < len(related) {
		related = related[:n]
	}
	out := make([]RelatedMood, len(related))
	copy(out, related)
	return out
}

func (a MoodAffinity) normalize() {
	for mood, related := range a {
		sortRelated(related)
		a[mood] = related
	}
}

func sortRelated(related []RelatedMood) {
	sort.SliceStable(related, func(i, j int) bool {
		if related[i].Score != related[j].Score {
			return related[i].Score > related[j].Score
		}
		return related[i].Mood < related[j].Mood
	})
}

// UnmarshalJSON accepts three shapes per mood:
//
//	{"calm": [["peaceful", 0.9], ["sad", 0.4]]}
//	{"calm": [{"mood": "peaceful", "score": 0.9}]}
//	{"calm": {"peaceful": 0.9, "sad": 0.4}}
func (a *MoodAffinity) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("mood affinity must be an object: %w", err)
	}

	out := make(MoodAffinity, len(raw))
	for mood, value := range raw {
		related, err := decodeRelated(value)
		if err != nil {
			return fmt.Errorf("mood %q: %w", mood, err)
		}
		out[mood] = related
	}
	out.normalize()
	*a = out
	return nil
}

func decodeRelated(value json.RawMessage) ([]RelatedMood, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '{':
		var scores map[string]float64
		if err := json.Unmarshal(trimmed, &scores); err != nil {
			return nil, fmt.Errorf("decode mood score map: %w", err)
		}
		related := make([]RelatedMood, 0, len(scores))
		for m, s := range scores {
			related = append(related, RelatedMood{Mood: m, Score: s})
		}
		return related, nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode related list: %w", err)
		}
		related := make([]RelatedMood, 0, len(items))
		for i, item := range items {
			rm, err := decodeRelatedItem(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			related = append(related, rm)
		}
		return related, nil

	default:
		return nil, fmt.Errorf("related moods must be a list or an object")
	}
}

func decodeRelatedItem(item json.RawMessage) (RelatedMood, error) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var rm RelatedMood
		if err := json.Unmarshal(trimmed, &rm); err != nil {
			return RelatedMood{}, err
		}
		if rm.Mood == "" {
			return RelatedMood{}, fmt.Errorf("missing mood name")
		}
		return rm, nil
	}

	var pair []interface{}
	if err := json.Unmarshal(trimmed, &pair); err != nil {
		return RelatedMood{}, fmt.Errorf("expected [mood, score] pair: %w", err)
	}
	if len(pair) != 2 {
		return RelatedMood{}, fmt.Errorf("expected [mood, score] pair, got %d elements", len(pair))
	}
	mood, ok := pair[0].(string)
	if !ok || mood == "" {
		return RelatedMood{}, fmt.Errorf("pair mood must be a non-empty string")
	}
	score, ok := pair[1].(float64)
	if !ok {
		return RelatedMood{}, fmt.Errorf("pair score must be a number")
	}
	return RelatedMood{Mood: mood, Score: score}, nil
}
