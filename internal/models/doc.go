// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

/*
Package models defines the data structures shared across moodswipe.

Domain models:

  - Song: a catalog entry with categorized tags (mood, instrument, genre, ...)
  - SwipeEvent: one like/dislike decision in a user's append-only ledger
  - PlaylistRecord: a write-once snapshot produced by the playlist synthesizer
  - User, PhotoUpload: account and upload rows owned by the persistence layer

API models:

  - APIResponse, Metadata, APIError: the JSON envelope every endpoint returns
  - request/response payloads for the auth, photo, swipe and playlist endpoints

Songs are immutable once the catalog is loaded. Tag lookups are exact,
case-sensitive string matches.
*/
package models
