// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package main

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/tomtom215/moodswipe/internal/catalog"
	"github.com/tomtom215/moodswipe/internal/logging"
	"github.com/tomtom215/moodswipe/internal/models"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

type seedOutput struct {
	Match recommend.MoodMatch `json:"match"`
	Songs []models.Song       `json:"songs"`
}

type synthesizeOutput struct {
	Liked          []models.Song `json:"liked"`
	Recommended    []models.Song `json:"recommended"`
	TopMoods       []string      `json:"top_moods"`
	TopInstruments []string      `json:"top_instruments"`
	SeedFallback   bool          `json:"seed_fallback"`
	PoolFallback   bool          `json:"pool_fallback"`
}

func loadCatalog(c *cli.Context) (*catalog.Catalog, error) {
	cat, err := catalog.Load(c.Context, catalog.Paths{
		Songs:          c.String(flagSongs),
		MoodAffinity:   c.String(flagMoods),
		MoodInstrument: c.String(flagInstruments),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func newEngine(c *cli.Context) (*recommend.Engine, error) {
	cat, err := loadCatalog(c)
	if err != nil {
		return nil, err
	}
	cfg := recommend.DefaultConfig()
	cfg.Seed = c.Int64(flagSeed)
	return recommend.NewEngine(cat, cfg, logging.WithComponent("moodctl"))
}

func validateAction(c *cli.Context) error {
	cat, err := loadCatalog(c)
	if err != nil {
		return err
	}
	report := cat.Lint()
	logging.Debug().Int("songs", report.Songs).Msg("Catalog validated")
	return writeJSON(c, report)
}

func seedAction(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	match, songs, err := engine.SeedSongs(c.String(flagMood))
	if err != nil {
		return fmt.Errorf("seed %q: %w", c.String(flagMood), err)
	}
	return writeJSON(c, seedOutput{Match: match, Songs: songs})
}

func synthesizeAction(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	ledger, err := likedLedger(engine.Catalog(), c.IntSlice(flagLike))
	if err != nil {
		return err
	}
	pl, err := engine.Synthesize(ledger)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	return writeJSON(c, synthesizeOutput{
		Liked:          pl.Liked,
		Recommended:    pl.Recommended,
		TopMoods:       pl.TopMoods,
		TopInstruments: pl.TopInstruments,
		SeedFallback:   pl.SeedFallback,
		PoolFallback:   pl.PoolFallback,
	})
}

// likedLedger builds a ledger in which every id in ids was liked, in order.
func likedLedger(cat *catalog.Catalog, ids []int) (recommend.Ledger, error) {
	now := time.Now().UTC()
	events := make([]models.SwipeEvent, 0, len(ids))
	for i, id := range ids {
		if _, ok := cat.Song(id); !ok {
			return recommend.Ledger{}, fmt.Errorf("song %d: %w", id, recommend.ErrUnknownSong)
		}
		events = append(events, models.SwipeEvent{
			ID:        int64(i + 1),
			SongID:    id,
			Liked:     true,
			CreatedAt: now,
		})
	}
	return recommend.NewLedger(events), nil
}

func writeJSON(c *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}
