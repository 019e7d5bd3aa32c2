// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package models

import "time"

// User is an account row. HashedPassword never leaves the server.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Nickname       string    `json:"nickname,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PhotoUpload records an uploaded image and the mood it was classified as.
type PhotoUpload struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ImagePath string    `json:"image_path"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupRequest is the body of POST /api/v1/auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// MoodRequest is the body of POST /api/v1/mood.
type MoodRequest struct {
	Mood string `json:"mood" validate:"required,moodlabel,max=64"`
}

// SeedResponse is returned by the photo and mood endpoints.
// Label is the classifier or user input; Mood is the catalog key it
// resolved to.
type SeedResponse struct {
	Mood  string `json:"mood"`
	Label string `json:"label"`
	Exact bool   `json:"exact"`
	Songs []Song `json:"songs"`
}
