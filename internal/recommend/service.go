// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/tomtom215/moodswipe/internal/metrics"
	"github.com/tomtom215/moodswipe/internal/models"
)

// LedgerStore persists swipe events. Implemented by internal/database.
type LedgerStore interface {
	AppendSwipe(ctx context.Context, userID int64, songID int, liked bool) (models.SwipeEvent, error)
	ListSwipes(ctx context.Context, userID int64) ([]models.SwipeEvent, error)
	ListLikedSwipes(ctx context.Context, userID int64) ([]models.SwipeEvent, error)
}

// PlaylistStore persists synthesized playlists. Implemented by internal/database.
type PlaylistStore interface {
	SavePlaylist(ctx context.Context, userID int64, imageRef string, songs []models.Song) (models.PlaylistRecord, error)
	ListPlaylists(ctx context.Context, userID int64) ([]models.PlaylistRecord, error)
}

// Service binds the engine to the stores. Swipes for one user are
// serialized so the append and the following read observe program order.
type Service struct {
	engine    *Engine
	ledger    LedgerStore
	playlists PlaylistStore
	locks     userLocks
}

// NewService creates a Service.
func NewService(engine *Engine, ledger LedgerStore, playlists PlaylistStore) *Service {
	return &Service{
		engine:    engine,
		ledger:    ledger,
		playlists: playlists,
		locks:     userLocks{held: make(map[int64]*userLock)},
	}
}

// Engine returns the underlying engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Swipe appends exactly one event for the decision, then selects the next
// candidate from the ledger including that event.
func (s *Service) Swipe(ctx context.Context, userID int64, songID int, liked bool) (Selection, error) {
	if _, ok := s.engine.catalog.Song(songID); !ok {
		return Selection{}, fmt.Errorf("%w: %d", ErrUnknownSong, songID)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	if _, err := s.ledger.AppendSwipe(ctx, userID, songID, liked); err != nil {
		return Selection{}, fmt.Errorf("append swipe: %w", err)
	}
	metrics.SwipesTotal.WithLabelValues(strconv.FormatBool(liked)).Inc()

	return s.next(ctx, userID)
}

// Next selects a candidate without recording anything. Clients use it to
// resume a session.
func (s *Service) Next(ctx context.Context, userID int64) (Selection, error) {
	unlock := s.locks.lock(userID)
	defer unlock()
	return s.next(ctx, userID)
}

func (s *Service) next(ctx context.Context, userID int64) (Selection, error) {
	events, err := s.ledger.ListSwipes(ctx, userID)
	if err != nil {
		return Selection{}, fmt.Errorf("read ledger: %w", err)
	}

	sel, err := s.engine.NextCandidate(NewLedger(events))
	if err != nil {
		return Selection{}, err
	}
	metrics.ExplorationPhase.WithLabelValues(string(sel.Phase), strconv.FormatBool(sel.Random)).Inc()
	return sel, nil
}

// Seed resolves a mood label and returns the seed songs for it.
func (s *Service) Seed(_ context.Context, label string) (MoodMatch, []models.Song, error) {
	match, songs, err := s.engine.SeedSongs(label)
	if err != nil {
		return match, nil, err
	}
	metrics.SeedRequests.WithLabelValues(strconv.FormatBool(match.Exact)).Inc()
	return match, songs, nil
}

// Playlist synthesizes a playlist from the user's liked songs and stores the
// recommended songs as a history record referencing imageRef.
func (s *Service) Playlist(ctx context.Context, userID int64, imageRef string) (Playlist, models.PlaylistRecord, error) {
	liked, err := s.ledger.ListLikedSwipes(ctx, userID)
	if err != nil {
		return Playlist{}, models.PlaylistRecord{}, fmt.Errorf("read liked swipes: %w", err)
	}

	p, err := s.engine.Synthesize(NewLedger(liked))
	if err != nil {
		return Playlist{}, models.PlaylistRecord{}, err
	}

	rec, err := s.playlists.SavePlaylist(ctx, userID, imageRef, p.Recommended)
	if err != nil {
		return Playlist{}, models.PlaylistRecord{}, fmt.Errorf("save playlist: %w", err)
	}
	metrics.PlaylistsGenerated.WithLabelValues(strconv.FormatBool(p.SeedFallback), strconv.FormatBool(p.PoolFallback)).Inc()
	return p, rec, nil
}

// History lists the user's playlists, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]models.PlaylistRecord, error) {
	records, err := s.playlists.ListPlaylists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return records, nil
}

// userLocks is a per-user mutex table. Entries are dropped when no
// goroutine holds or waits on them.
type userLocks struct {
	mu   sync.Mutex
	held map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	ul, ok := l.held[userID]
	if !ok {
		ul = &userLock{}
		l.held[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.held, userID)
		}
		l.mu.Unlock()
	}
}
