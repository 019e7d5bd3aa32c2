// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

// Package auth provides local email/password accounts and stateless JWT
// bearer authentication.
//
// # Components
//
//   - JWTManager issues and validates HS256 tokens. The subject is the
//     user's email and the numeric user id travels in the uid claim.
//   - HashPassword and CheckPassword wrap bcrypt.
//   - Service implements signup and login on top of a UserStore.
//   - Middleware.Authenticate rejects requests without a valid bearer token
//     and stores the claims in the request context.
//
// # Usage
//
//	jwtManager, err := auth.NewJWTManager(&cfg.Security)
//	svc := auth.NewService(db, jwtManager, cfg.Security.BcryptCost)
//	mw := auth.NewMiddleware(jwtManager)
//
//	r.With(mw.Authenticate).Post("/swipe", handler.Swipe)
//
// Tokens cannot be revoked before they expire, so the default lifetime is
// short (15 minutes).
package auth
