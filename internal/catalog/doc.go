// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package catalog loads the song catalog and the two similarity tables.
//
// Three JSON files are read once at process start:
//
//   - songs: [{"id":1,"title":"...","artist":"...","url":"...","tags":{"mood":["calm"],"instrument":["piano"]}}]
//   - mood affinity: {"calm": [["peaceful", 0.9], ["sad", 0.4]], ...}
//     (a {"mood": score} object or {"mood":...,"score":...} list items are accepted too)
//   - mood-instrument affinity: {"calm": {"piano": 0.8, "guitar": 0.2}, ...}
//
// The resulting Catalog is immutable. It keeps songs in file order, a
// per-song flattened tag set, and a tag to songs index so the recommendation
// engine never rescans tag maps on the request path. There is no reload;
// changing the data requires a restart.
package catalog
