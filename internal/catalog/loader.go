// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moodswipe/internal/models"
)

// Paths locates the three data files.
type Paths struct {
	Songs          string
	MoodAffinity   string
	MoodInstrument string
}

// Load reads and validates the catalog and both similarity tables. The files
// are read concurrently. Any missing or malformed file is an error; callers
// treat it as fatal.
func Load(ctx context.Context, p Paths) (*Catalog, error) {
	var (
		songs          []models.Song
		moods          MoodAffinity
		moodInstrument MoodInstrumentAffinity
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return decodeFile(p.Songs, "catalog", &songs)
	})
	g.Go(func() error {
		return decodeFile(p.MoodAffinity, "mood affinity", &moods)
	})
	g.Go(func() error {
		return decodeFile(p.MoodInstrument, "mood-instrument affinity", &moodInstrument)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for mood, scores := range moodInstrument {
		if scores == nil {
			return nil, fmt.Errorf("mood-instrument affinity: mood %q has no instrument scores", mood)
		}
	}

	c, err := New(songs, moods, moodInstrument)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", p.Songs, err)
	}
	return c, nil
}

func decodeFile(path, what string, v interface{}) error {
	if path == "" {
		return fmt.Errorf("%s path is empty", what)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s file: %w", what, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s file %s: %w", what, path, err)
	}
	return nil
}
