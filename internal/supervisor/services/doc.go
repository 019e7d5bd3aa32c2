// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package services adapts application components to suture.Service.
//
// Every Serve method blocks until its context is canceled and returns a
// non-nil error only for failures the supervisor should restart on.
package services
