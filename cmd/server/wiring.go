// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package main

import (
	"net/http"

	"github.com/tomtom215/moodswipe/internal/catalog"
	"github.com/tomtom215/moodswipe/internal/config"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

// catalogPaths maps the catalog section of the configuration to loader paths.
func catalogPaths(cfg *config.CatalogConfig) catalog.Paths {
	return catalog.Paths{
		Songs:          cfg.SongsPath,
		MoodAffinity:   cfg.MoodAffinityPath,
		MoodInstrument: cfg.MoodInstrumentPath,
	}
}

// recommendConfig translates the recommend section of the configuration into
// engine settings. Unset tuning knobs keep the engine defaults.
func recommendConfig(cfg *config.RecommendConfig) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Seed = cfg.Seed
	rc.FallbackSeedEnabled = cfg.FallbackSeedEnabled

	setInt := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	setInt(&rc.InstrumentPhaseLikes, cfg.InstrumentPhaseLikes)
	setInt(&rc.FallbackPhaseLikes, cfg.FallbackPhaseLikes)
	setInt(&rc.SeedCount, cfg.SeedCount)
	setInt(&rc.PlaylistSize, cfg.PlaylistSize)
	setInt(&rc.MinLikedForPlaylist, cfg.MinLikedForPlaylist)
	setInt(&rc.TopMoods, cfg.TopMoods)
	setInt(&rc.TopInstruments, cfg.TopInstruments)
	setInt(&rc.MinMoodOverlap, cfg.MinMoodOverlap)
	if cfg.FuzzyThreshold > 0 {
		rc.FuzzyThreshold = cfg.FuzzyThreshold
	}
	return rc
}

// newHTTPServer applies the server timeouts from cfg.
func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * cfg.ReadTimeout,
	}
}
