// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package validation validates decoded request payloads with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Rules live in `validate` struct
// tags on the request types in internal/models. Besides the built-in rules a
// "moodlabel" rule accepts human-typed mood names.
//
// Usage:
//
//	var req models.SwipeRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // verr.ToAPIError() has code VALIDATION_ERROR
//	}
package validation
