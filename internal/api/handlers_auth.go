// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"mime"
	"net/http"
	"time"

	"github.com/tomtom215/moodswipe/internal/models"
	"github.com/tomtom215/moodswipe/internal/validation"
)

// Signup creates an account and returns a bearer token.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.auth.Signup(r.Context(), &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusCreated, token, start)
}

// Login exchanges credentials for a bearer token. It accepts a JSON body or
// an OAuth2 password-style form with username and password fields.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if isForm(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		if err := r.ParseForm(); err != nil {
			respondError(w, r, http.StatusBadRequest, "INVALID_FORM", "Request body is not a valid form", nil)
			return
		}
		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if verr := validation.ValidateStruct(&req); verr != nil {
			respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
			return
		}
	} else if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, token, start)
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}
