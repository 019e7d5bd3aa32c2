// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/moodswipe/internal/auth"
	"github.com/tomtom215/moodswipe/internal/catalog"
	"github.com/tomtom215/moodswipe/internal/classifier"
	"github.com/tomtom215/moodswipe/internal/config"
	"github.com/tomtom215/moodswipe/internal/database"
	"github.com/tomtom215/moodswipe/internal/models"
	"github.com/tomtom215/moodswipe/internal/recommend"
)

// memoryStore backs every store interface the handlers use.
type memoryStore struct {
	mu        sync.Mutex
	swipes    []models.SwipeEvent
	playlists []models.PlaylistRecord
	uploads   []models.PhotoUpload
	users     map[string]*models.User
	pingErr   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]*models.User)}
}

func (m *memoryStore) AppendSwipe(_ context.Context, userID int64, songID int, liked bool) (models.SwipeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := models.SwipeEvent{ID: int64(len(m.swipes) + 1), UserID: userID, SongID: songID, Liked: liked, CreatedAt: time.Now()}
	m.swipes = append(m.swipes, ev)
	return ev, nil
}

func (m *memoryStore) ListSwipes(_ context.Context, userID int64) ([]models.SwipeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SwipeEvent
	for _, ev := range m.swipes {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memoryStore) ListLikedSwipes(ctx context.Context, userID int64) ([]models.SwipeEvent, error) {
	all, _ := m.ListSwipes(ctx, userID)
	var out []models.SwipeEvent
	for _, ev := range all {
		if ev.Liked {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memoryStore) SavePlaylist(_ context.Context, userID int64, imageRef string, songs []models.Song) (models.PlaylistRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := models.PlaylistRecord{ID: int64(len(m.playlists) + 1), UserID: userID, SourceImage: imageRef, Songs: songs, CreatedAt: time.Now()}
	m.playlists = append(m.playlists, rec)
	return rec, nil
}

func (m *memoryStore) ListPlaylists(_ context.Context, userID int64) ([]models.PlaylistRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PlaylistRecord
	for _, rec := range m.playlists {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryStore) RecordPhotoUpload(_ context.Context, userID int64, imagePath, mood string) (models.PhotoUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.PhotoUpload{ID: int64(len(m.uploads) + 1), UserID: userID, ImagePath: imagePath, Mood: mood, CreatedAt: time.Now()}
	m.uploads = append(m.uploads, u)
	return u, nil
}

func (m *memoryStore) LatestPhotoUpload(_ context.Context, userID int64) (models.PhotoUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.uploads) - 1; i >= 0; i-- {
		if m.uploads[i].UserID == userID {
			return m.uploads[i], nil
		}
	}
	return models.PhotoUpload{}, database.ErrUploadNotFound
}

func (m *memoryStore) CreateUser(_ context.Context, email, hashedPassword, nickname string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = database.NormalizeEmail(email)
	if _, ok := m.users[email]; ok {
		return nil, database.ErrUserExists
	}
	u := &models.User{ID: int64(len(m.users) + 1), Email: email, HashedPassword: hashedPassword, Nickname: nickname}
	m.users[email] = u
	return u, nil
}

func (m *memoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[database.NormalizeEmail(email)]; ok {
		return u, nil
	}
	return nil, database.ErrUserNotFound
}

func (m *memoryStore) Ping(context.Context) error {
	return m.pingErr
}

func (m *memoryStore) CurrentSchemaVersion(context.Context) (int, error) {
	return 1, nil
}

type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, []byte) (string, error) {
	return "", &classifier.ClassificationError{Op: "status", Err: errors.New("upstream returned 503")}
}

// testEnv is a fully wired router over in-memory stores.
type testEnv struct {
	t       *testing.T
	handler http.Handler
	store   *memoryStore
	jwt     *auth.JWTManager
	cfg     *config.Config
}

type envOption func(*envSettings)

type envSettings struct {
	classifier classifier.Classifier
	recommend  *recommend.Config
}

func withClassifier(c classifier.Classifier) envOption {
	return func(s *envSettings) { s.classifier = c }
}

func withRecommendConfig(c *recommend.Config) envOption {
	return func(s *envSettings) { s.recommend = c }
}

func testSong(id int, title string, moods, instruments []string) models.Song {
	return models.Song{
		ID:     id,
		Title:  title,
		Artist: "Test Artist",
		Tags:   models.Tags{models.CategoryMood: moods, models.CategoryInstrument: instruments},
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	settings := &envSettings{classifier: classifier.StaticClassifier{Mood: "Calm"}}
	for _, opt := range opts {
		opt(settings)
	}

	cat, err := catalog.New(
		[]models.Song{
			testSong(1, "Still Water", []string{"calm", "relaxed"}, []string{"piano"}),
			testSong(2, "Sunday", []string{"happy", "calm"}, []string{"guitar"}),
			testSong(3, "Grey Skies", []string{"sad"}, []string{"violin"}),
			testSong(4, "Lullaby", []string{"calm", "relaxed", "sad"}, []string{"piano"}),
			testSong(5, "Run", []string{"energetic"}, []string{"drums"}),
		},
		catalog.MoodAffinity{
			"calm":      {{Mood: "relaxed", Score: 0.9}, {Mood: "happy", Score: 0.5}, {Mood: "sad", Score: 0.2}},
			"happy":     {{Mood: "energetic", Score: 0.7}, {Mood: "calm", Score: 0.5}},
			"relaxed":   {{Mood: "calm", Score: 0.9}},
			"sad":       {{Mood: "calm", Score: 0.2}},
			"energetic": {{Mood: "happy", Score: 0.7}},
		},
		catalog.MoodInstrumentAffinity{"calm": {"piano": 0.9, "guitar": 0.4}},
	)
	if err != nil {
		t.Fatal(err)
	}

	engine, err := recommend.NewEngine(cat, settings.recommend, zerolog.New(io.Discard),
		recommend.WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			MaxUploadBytes: 1024,
			UploadDir:      t.TempDir(),
		},
		Security: config.SecurityConfig{
			JWTSecret:         "api-test-secret-with-at-least-32-chars",
			RateLimitDisabled: true,
		},
	}

	store := newMemoryStore()
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatal(err)
	}
	authSvc, err := auth.NewService(store, jwtManager, bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	handler := NewHandler(cfg, recommend.NewService(engine, store, store), authSvc, settings.classifier, store, store)
	router := NewRouter(handler, auth.NewMiddleware(jwtManager), NewChiMiddleware(ChiMiddlewareConfigFrom(cfg)))

	return &testEnv{t: t, handler: router.Setup(), store: store, jwt: jwtManager, cfg: cfg}
}

// token returns a bearer token for a user id without going through signup.
func (e *testEnv) token(userID int64) string {
	e.t.Helper()
	tok, err := e.jwt.GenerateToken(userID, "user@example.com")
	if err != nil {
		e.t.Fatal(err)
	}
	return tok
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func (e *testEnv) do(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); ct == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			e.t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func (e *testEnv) doJSON(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, status, rec.Body.String())
	}
	if env.Status != "error" || env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
}
