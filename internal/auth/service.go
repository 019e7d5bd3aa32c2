// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/moodswipe/internal/database"
	"github.com/tomtom215/moodswipe/internal/logging"
	"github.com/tomtom215/moodswipe/internal/metrics"
	"github.com/tomtom215/moodswipe/internal/models"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore persists accounts. Implemented by *database.DB.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPassword, nickname string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service implements signup and login.
type Service struct {
	users      UserStore
	jwt        *JWTManager
	bcryptCost int

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewService creates an auth service.
func NewService(users UserStore, jwtManager *JWTManager, bcryptCost int) (*Service, error) {
	dummy, err := HashPassword("moodswipe-timing-equalizer", bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Service{
		users:      users,
		jwt:        jwtManager,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Signup creates an account and returns a token for it. A taken email
// returns an error matching database.ErrUserExists.
func (s *Service) Signup(ctx context.Context, req *models.SignupRequest) (*models.TokenResponse, error) {
	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, req.Email, hash, req.Nickname)
	if err != nil {
		metrics.RecordAuthAttempt("signup", false)
		return nil, err
	}
	metrics.RecordAuthAttempt("signup", true)
	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("User signed up")

	return s.issue(user)
}

// Login verifies the password and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrUserNotFound) {
		CheckPassword(s.dummyHash, password)
		metrics.RecordAuthAttempt("login", false)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.HashedPassword, password) {
		metrics.RecordAuthAttempt("login", false)
		logging.Ctx(ctx).Warn().Int64("user_id", user.ID).Msg("Login failed: wrong password")
		return nil, ErrInvalidCredentials
	}
	metrics.RecordAuthAttempt("login", true)

	return s.issue(user)
}

func (s *Service) issue(user *models.User) (*models.TokenResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwt.TTL().Seconds()),
	}, nil
}
