// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package config loads moodswipe configuration with koanf.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml or /etc/moodswipe/config.yaml
//  3. Environment variables, after loading ./.env into the process environment
//
// Environment variables use flat legacy-style names mapped onto config paths
// (JWT_SECRET -> security.jwt_secret, CATALOG_PATH -> catalog.songs_path, ...).
// Variables without a mapping are ignored.
//
// Example config.yaml:
//
//	server:
//	  port: 8000
//	  upload_dir: /var/lib/moodswipe/uploads
//	catalog:
//	  songs_path: /srv/data/songs.json
//	  mood_affinity_path: /srv/data/mood_affinity.json
//	  mood_instrument_path: /srv/data/mood_instrument_affinity.json
//	classifier:
//	  url: https://vision.internal/v1/classify
//	  label_path: result.mood
//	recommend:
//	  playlist_size: 10
package config
