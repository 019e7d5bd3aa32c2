// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Command moodctl is the operator tool for the catalog data files. It loads
// the same files the server does and runs the seeding and synthesis logic
// offline, without a database or a classifier.
//
//	moodctl validate --songs songs.json --moods moods.json --instruments instruments.json
//	moodctl seed --mood calm --seed 7
//	moodctl synthesize --like 1,2,3 --seed 7
package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/tomtom215/moodswipe/internal/logging"
)

// version is set with -ldflags at build time.
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Fatal().Err(err).Msg("Failed to load .env file")
	}

	logging.Init(logging.Config{
		Level:     "warn",
		Format:    "console",
		Timestamp: false,
		Output:    os.Stderr,
	})

	if err := newApp().Run(os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logging.Fatal().Err(err).Msg("moodctl failed")
	}
}

const (
	flagSongs       = "songs"
	flagMoods       = "moods"
	flagInstruments = "instruments"
	flagMood        = "mood"
	flagLike        = "like"
	flagSeed        = "seed"
	flagVerbose     = "verbose"
)

func newApp() *cli.App {
	catalogFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     flagSongs,
			Usage:    "song catalog JSON file",
			EnvVars:  []string{"CATALOG_PATH"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagMoods,
			Usage:    "mood affinity JSON file",
			EnvVars:  []string{"MOOD_AFFINITY_PATH"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagInstruments,
			Usage:    "mood to instrument affinity JSON file",
			EnvVars:  []string{"MOOD_INSTRUMENT_PATH"},
			Required: true,
		},
	}
	seedFlag := &cli.Int64Flag{
		Name:  flagSeed,
		Usage: "random seed; 0 seeds from the clock",
	}

	//nolint:exhaustruct
	return &cli.App{
		Name:    "moodctl",
		Usage:   "inspect catalog data and preview recommendations",
		Version: version,
		Suggest: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: flagVerbose, Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagVerbose) {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "load the data files and report counts and dangling references",
				Flags:  catalogFlags,
				Action: validateAction,
			},
			{
				Name:  "seed",
				Usage: "resolve a mood label and print the seed songs",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: flagMood, Aliases: []string{"m"}, Usage: "mood label", Required: true},
					seedFlag,
				}, catalogFlags...),
				Action: seedAction,
			},
			{
				Name:  "synthesize",
				Usage: "build a playlist from a list of liked song ids",
				Flags: append([]cli.Flag{
					&cli.IntSliceFlag{Name: flagLike, Aliases: []string{"l"}, Usage: "liked song ids, comma separated"},
					seedFlag,
				}, catalogFlags...),
				Action: synthesizeAction,
			},
		},
	}
}
