// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/moodswipe/internal/models"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, "photo.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec, _ := env.do(httptest.NewRequest(http.MethodGet, "/health/live", nil), "")
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d", rec.Code)
	}

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d", rec.Code)
	}
	var status models.HealthStatus
	decodeData(t, body, &status)
	if !status.DatabaseConnected || status.CatalogSongs != 5 || status.SchemaVersion != 1 {
		t.Errorf("ready = %+v", status)
	}

	env.store.pingErr = errors.New("database is closed")
	rec, body = env.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil), "")
	expectError(t, rec, body, http.StatusServiceUnavailable, "NOT_READY")
}

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	signup := map[string]string{"email": "Ana@Example.com", "password": "correct-horse"}
	rec, body := env.doJSON(http.MethodPost, "/api/v1/auth/signup", signup, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", rec.Code, rec.Body.String())
	}
	var tok models.TokenResponse
	decodeData(t, body, &tok)
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Errorf("token = %+v", tok)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing on API response")
	}

	rec, body = env.doJSON(http.MethodPost, "/api/v1/auth/signup", signup, "")
	expectError(t, rec, body, http.StatusConflict, "EMAIL_TAKEN")

	rec, body = env.doJSON(http.MethodPost, "/api/v1/auth/signup", map[string]string{"email": "bad", "password": "x"}, "")
	expectError(t, rec, body, http.StatusBadRequest, "VALIDATION_ERROR")

	rec, _ = env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ana@example.com", "password": "correct-horse"}, "")
	if rec.Code != http.StatusOK {
		t.Errorf("JSON login status = %d", rec.Code)
	}

	form := url.Values{"username": {"ana@example.com"}, "password": {"correct-horse"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, body = env.do(req, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("form login status = %d: %s", rec.Code, rec.Body.String())
	}
	decodeData(t, body, &tok)
	if _, err := env.jwt.ValidateToken(tok.AccessToken); err != nil {
		t.Errorf("form login token invalid: %v", err)
	}

	rec, body = env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ana@example.com", "password": "wrong-horse"}, "")
	expectError(t, rec, body, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, path := range []string{"/api/v1/next", "/api/v1/playlist", "/api/v1/history", "/api/v1/songs/1"} {
		rec, body := env.do(httptest.NewRequest(http.MethodGet, path, nil), "")
		expectError(t, rec, body, http.StatusUnauthorized, "UNAUTHORIZED")
	}
}

func TestMood(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.token(1)

	rec, body := env.doJSON(http.MethodPost, "/api/v1/mood", map[string]string{"mood": "Calm"}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var seed models.SeedResponse
	decodeData(t, body, &seed)
	if seed.Mood != "calm" || !seed.Exact || len(seed.Songs) != 3 {
		t.Errorf("seed = %+v", seed)
	}
	seen := map[int]bool{}
	for _, s := range seed.Songs {
		if seen[s.ID] {
			t.Errorf("song %d seeded twice", s.ID)
		}
		seen[s.ID] = true
	}
	if !seen[2] {
		t.Errorf("the only happy song (2) should be seeded, got %+v", seed.Songs)
	}

	rec, body = env.doJSON(http.MethodPost, "/api/v1/mood", map[string]string{"mood": "xylophonic"}, token)
	expectError(t, rec, body, http.StatusUnprocessableEntity, "INVALID_MOOD")

	rec, body = env.doJSON(http.MethodPost, "/api/v1/mood", map[string]string{"mood": "calm!"}, token)
	expectError(t, rec, body, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestPhoto(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.token(1)

	rec, body := env.do(multipartRequest(t, "file", pngHeader), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var seed models.SeedResponse
	decodeData(t, body, &seed)
	if seed.Mood != "calm" || seed.Label != "Calm" || len(seed.Songs) == 0 {
		t.Errorf("seed = %+v", seed)
	}

	if len(env.store.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(env.store.uploads))
	}
	up := env.store.uploads[0]
	if up.Mood != "calm" || filepath.Dir(up.ImagePath) != env.cfg.Server.UploadDir || filepath.Ext(up.ImagePath) != ".png" {
		t.Errorf("upload = %+v", up)
	}
	if data, err := os.ReadFile(up.ImagePath); err != nil || !bytes.Equal(data, pngHeader) {
		t.Errorf("stored image mismatch: %v", err)
	}
}

func TestPhoto_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		opts   []envOption
		status int
		code   string
	}{
		{
			name:   "not an image",
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "file", []byte("just some text")) },
			status: http.StatusUnsupportedMediaType,
			code:   "UNSUPPORTED_MEDIA_TYPE",
		},
		{
			name:   "missing file field",
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "", nil) },
			status: http.StatusBadRequest,
			code:   "MISSING_FILE",
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", append(pngHeader, make([]byte, 4096)...))
			},
			status: http.StatusRequestEntityTooLarge,
			code:   "PAYLOAD_TOO_LARGE",
		},
		{
			name: "not multipart",
			req: func(*testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/v1/photo", strings.NewReader("{}"))
			},
			status: http.StatusBadRequest,
			code:   "INVALID_UPLOAD",
		},
		{
			name:   "classifier down",
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "file", pngHeader) },
			opts:   []envOption{withClassifier(failingClassifier{})},
			status: http.StatusBadGateway,
			code:   "CLASSIFICATION_FAILED",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, tt.opts...)
			rec, body := env.do(tt.req(t), env.token(1))
			expectError(t, rec, body, tt.status, tt.code)
			if len(env.store.uploads) != 0 {
				t.Error("rejected upload was recorded")
			}
		})
	}
}

func TestSwipeFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.token(3)

	rec, body := env.doJSON(http.MethodPost, "/api/v1/swipe", map[string]interface{}{"song_id": 1, "liked": true}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var next models.SwipeResponse
	decodeData(t, body, &next)
	// happy is the broadest mood not on song 1, and song 2 is its only song.
	if next.Song == nil || next.Song.ID != 2 || next.Phase != "mood" || next.LikedCount != 1 {
		t.Errorf("next = %+v", next)
	}

	rec, body = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/next", nil), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("next status = %d", rec.Code)
	}
	decodeData(t, body, &next)
	if next.Song.ID != 2 {
		t.Errorf("GET /next = song %d, want 2", next.Song.ID)
	}
	if len(env.store.swipes) != 1 {
		t.Errorf("ledger has %d events after GET /next, want 1", len(env.store.swipes))
	}

	for _, id := range []int{2, 3, 4} {
		if rec, _ := env.doJSON(http.MethodPost, "/api/v1/swipe", map[string]interface{}{"song_id": id, "liked": false}, token); rec.Code != http.StatusOK {
			t.Fatalf("swipe %d status = %d", id, rec.Code)
		}
	}
	rec, body = env.doJSON(http.MethodPost, "/api/v1/swipe", map[string]interface{}{"song_id": 5, "liked": false}, token)
	expectError(t, rec, body, http.StatusNotFound, "NO_MORE_CANDIDATES")
	if len(env.store.swipes) != 5 {
		t.Errorf("ledger has %d events, want 5", len(env.store.swipes))
	}
}

func TestSwipe_BadInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.token(1)

	rec, body := env.doJSON(http.MethodPost, "/api/v1/swipe", map[string]interface{}{"song_id": 99, "liked": true}, token)
	expectError(t, rec, body, http.StatusNotFound, "SONG_NOT_FOUND")

	rec, body = env.doJSON(http.MethodPost, "/api/v1/swipe", map[string]interface{}{"song_id": 1}, token)
	expectError(t, rec, body, http.StatusBadRequest, "VALIDATION_ERROR")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/swipe", strings.NewReader("{not json"))
	rec, body = env.do(req, token)
	expectError(t, rec, body, http.StatusBadRequest, "INVALID_JSON")

	if len(env.store.swipes) != 0 {
		t.Errorf("rejected swipes were recorded: %d", len(env.store.swipes))
	}
}

func TestPlaylistAndHistory(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.token(5)

	if rec, _ := env.do(multipartRequest(t, "file", pngHeader), token); rec.Code != http.StatusOK {
		t.Fatalf("photo status = %d", rec.Code)
	}
	for _, id := range []int{1, 2, 4} {
		if rec, _ := env.doJSON(http.MethodPost, "/api/v1/swipe", map[string]interface{}{"song_id": id, "liked": true}, token); rec.Code != http.StatusOK {
			t.Fatalf("swipe %d status = %d", id, rec.Code)
		}
	}

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/playlist", nil), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("playlist status = %d: %s", rec.Code, rec.Body.String())
	}
	var playlist models.PlaylistResponse
	decodeData(t, body, &playlist)
	if len(playlist.Liked) != 3 || playlist.RecordID != 1 {
		t.Errorf("playlist = %+v", playlist)
	}
	for _, s := range playlist.Recommended {
		if s.ID == 1 || s.ID == 2 || s.ID == 4 {
			t.Errorf("liked song %d recommended", s.ID)
		}
	}
	if got := env.store.playlists[0].SourceImage; got != env.store.uploads[0].ImagePath {
		t.Errorf("source image = %q, want latest upload", got)
	}

	if rec, _ := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/playlist", nil), token); rec.Code != http.StatusOK {
		t.Fatalf("second playlist status = %d", rec.Code)
	}
	rec, body = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/history", nil), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var history []models.PlaylistRecord
	decodeData(t, body, &history)
	if len(history) != 2 || history[0].ID != 2 {
		t.Errorf("history ids = %+v, want newest first", history)
	}
}

func TestPlaylist_InsufficientSignal(t *testing.T) {
	t.Parallel()
	cfg := recommend.DefaultConfig()
	cfg.FallbackSeedEnabled = false
	env := newTestEnv(t, withRecommendConfig(cfg))

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/playlist", nil), env.token(1))
	expectError(t, rec, body, http.StatusConflict, "INSUFFICIENT_SIGNAL")
}

func TestHistory_Empty(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/history", nil), env.token(1))
	if rec.Code != http.StatusOK || string(body.Data) != "[]" {
		t.Errorf("status = %d, data = %s", rec.Code, body.Data)
	}
}

func TestSong(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.token(1)

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/songs/3", nil), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var s models.Song
	decodeData(t, body, &s)
	if s.ID != 3 || s.Title != "Grey Skies" || s.Tags[models.CategoryMood][0] != "sad" {
		t.Errorf("song = %+v", s)
	}

	rec, body = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/songs/42", nil), token)
	expectError(t, rec, body, http.StatusNotFound, "SONG_NOT_FOUND")

	rec, body = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/songs/abc", nil), token)
	expectError(t, rec, body, http.StatusBadRequest, "INVALID_ID")
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/nope", nil), "")
	expectError(t, rec, body, http.StatusNotFound, "NOT_FOUND")

	rec, _ = env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "moodswipe_") {
		t.Errorf("metrics status = %d", rec.Code)
	}

	rec, _ = env.do(httptest.NewRequest(http.MethodGet, "/health/live", nil), "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}
}
