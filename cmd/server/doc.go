// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

/*
Package main is the entry point for the Moodswipe server.

Moodswipe turns a photo into a music discovery session: the image is
classified into a mood, a few songs tagged with related moods seed the
session, the user swipes through candidates chosen by a phased exploration
strategy, and the liked songs are synthesized into a playlist.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("moodswipe")
	├── DataSupervisor ("data-layer")
	│   └── DuckDB checkpoint service
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON or console output
 3. Catalog: songs and both affinity tables, validated and fatal on error
 4. Recommendation engine and service
 5. Database: embedded DuckDB with versioned migrations
 6. Classifier: HTTP or static backend behind a two-tier cache
 7. Authentication: JWT with bcrypt password hashing
 8. Supervisor Tree and HTTP Server: chi router with middleware stack

# Configuration

Common environment variables:
  - HTTP_PORT: listen port (default 8000)
  - DUCKDB_PATH: database file
  - JWT_SECRET: 32+ character token signing secret (required)
  - CATALOG_PATH, MOOD_AFFINITY_PATH, MOOD_INSTRUMENT_PATH: catalog files
  - CLASSIFIER_URL: image classifier endpoint; empty selects the static mood

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server gracefully, then the remaining services, and the database is closed
last.

# Example Usage

	export JWT_SECRET=$(openssl rand -base64 32)
	export CATALOG_PATH=./data/songs.json
	export MOOD_AFFINITY_PATH=./data/mood_affinity.json
	export MOOD_INSTRUMENT_PATH=./data/mood_instrument.json
	./moodswipe
*/
package main
