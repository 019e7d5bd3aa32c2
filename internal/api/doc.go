// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package api exposes the recommender over HTTP using the chi router.
//
// Routes (all JSON, wrapped in models.APIResponse):
//
//	GET  /health/live            liveness, no dependencies checked
//	GET  /health/ready           readiness, pings DuckDB
//	GET  /metrics                Prometheus exposition
//	POST /api/v1/auth/signup     create account, returns a bearer token
//	POST /api/v1/auth/login      JSON or form (username/password)
//	POST /api/v1/photo           multipart "file", classify then seed
//	POST /api/v1/mood            seed from a typed mood
//	POST /api/v1/swipe           record a swipe, return the next song
//	GET  /api/v1/next            next song without recording anything
//	GET  /api/v1/playlist        synthesize and store a playlist
//	GET  /api/v1/history         stored playlists, newest first
//	GET  /api/v1/songs/{id}      one catalog song
//
// Everything under /api/v1 except /auth requires a bearer token.
//
// Errors from the recommender map onto status codes in respondServiceError:
// an unknown mood is 422, a classifier failure 502, exhausted exploration 404
// and too few likes for a playlist 409.
package api
