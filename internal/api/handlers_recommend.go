// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/tomtom215/moodswipe/internal/database"
	"github.com/tomtom215/moodswipe/internal/logging"
	"github.com/tomtom215/moodswipe/internal/models"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory
// before spilling to a temp file.
const multipartMemory = 4 << 20

// Photo classifies an uploaded image and returns seed songs for its mood.
// The image is stored only after it seeded successfully.
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	limit := h.config.Server.MaxUploadBytes
	tooLargeMsg := fmt.Sprintf("Upload exceeds %d bytes", limit)
	if r.ContentLength > limit {
		respondError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", tooLargeMsg, nil)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", tooLargeMsg, nil)
			return
		}
		respondError(w, r, http.StatusBadRequest, "INVALID_UPLOAD", "Expected a multipart form", nil)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "MISSING_FILE", "Form field 'file' is required", nil)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_UPLOAD", "Could not read the uploaded file", nil)
		return
	}
	kind, err := filetype.Match(image)
	if err != nil || !filetype.IsImage(image) {
		respondError(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Upload must be an image", nil)
		return
	}

	label, err := h.classifier.Classify(r.Context(), image)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	match, songs, err := h.recommend.Seed(r.Context(), label)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	path, err := h.storeImage(image, kind.Extension)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if _, err := h.uploads.RecordPhotoUpload(r.Context(), uid, path, match.Mood); err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("label", sanitizeLogValue(label)).
		Str("mood", match.Mood).
		Int("seed_songs", len(songs)).
		Msg("Photo seeded")
	respondSuccess(w, http.StatusOK, seedResponse(match, songs), start)
}

// storeImage writes the image under a random name in the upload directory.
func (h *Handler) storeImage(image []byte, ext string) (string, error) {
	dir := h.config.Server.UploadDir
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+"."+ext)
	if err := os.WriteFile(path, image, 0o640); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// Mood returns seed songs for a typed mood label.
func (h *Handler) Mood(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if _, ok := userID(w, r); !ok {
		return
	}

	var req models.MoodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	match, songs, err := h.recommend.Seed(r.Context(), req.Mood)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, seedResponse(match, songs), start)
}

func seedResponse(match recommend.MoodMatch, songs []models.Song) models.SeedResponse {
	if songs == nil {
		songs = []models.Song{}
	}
	return models.SeedResponse{
		Mood:  match.Mood,
		Label: match.Label,
		Exact: match.Exact,
		Songs: songs,
	}
}

// Swipe records one like or dislike and returns the next song.
func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.SwipeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sel, err := h.recommend.Swipe(r.Context(), uid, req.SongID, *req.Liked)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, swipeResponse(sel), start)
}

// Next returns the next song without recording a swipe.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	sel, err := h.recommend.Next(r.Context(), uid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, swipeResponse(sel), start)
}

func swipeResponse(sel recommend.Selection) models.SwipeResponse {
	song := sel.Song
	return models.SwipeResponse{
		Song:       &song,
		Phase:      string(sel.Phase),
		LikedCount: sel.LikedCount,
	}
}

// Playlist synthesizes a playlist from the liked songs and stores it against
// the most recent photo, if any.
func (h *Handler) Playlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var imageRef string
	upload, err := h.uploads.LatestPhotoUpload(r.Context(), uid)
	switch {
	case err == nil:
		imageRef = upload.ImagePath
	case errors.Is(err, database.ErrUploadNotFound):
	default:
		respondServiceError(w, r, err)
		return
	}

	p, rec, err := h.recommend.Playlist(r.Context(), uid, imageRef)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := models.PlaylistResponse{
		Liked:       nonNilSongs(p.Liked),
		Recommended: nonNilSongs(p.Recommended),
		Fallback:    p.SeedFallback || p.PoolFallback,
		RecordID:    rec.ID,
	}
	respondSuccess(w, http.StatusOK, resp, start)
}

// History lists stored playlists, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	records, err := h.recommend.History(r.Context(), uid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []models.PlaylistRecord{}
	}
	respondSuccess(w, http.StatusOK, records, start)
}

// Song returns one catalog entry.
func (h *Handler) Song(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, r, http.StatusBadRequest, "INVALID_ID", "Song id must be a positive integer", nil)
		return
	}
	song, ok := h.recommend.Engine().Catalog().Song(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, "SONG_NOT_FOUND", "Song not found", nil)
		return
	}
	respondSuccess(w, http.StatusOK, song, start)
}

func nonNilSongs(songs []models.Song) []models.Song {
	if songs == nil {
		return []models.Song{}
	}
	return songs
}
