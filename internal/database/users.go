// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/moodswipe/internal/models"
)

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a new account. The password must already be hashed.
// Returns ErrUserExists when the email is taken.
func (db *DB) CreateUser(ctx context.Context, email, hashedPassword, nickname string) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("insert", "users", start, err) }()

	user = &models.User{
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Nickname:       nickname,
		CreatedAt:      time.Now().UTC(),
	}
	err = withWriteRetry(ctx, func() error {
		return db.conn.QueryRowContext(ctx,
			`INSERT INTO users (email, hashed_password, nickname, created_at)
			 VALUES (?, ?, ?, ?) RETURNING id`,
			user.Email, user.HashedPassword, nullString(nickname), user.CreatedAt,
		).Scan(&user.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserExists, user.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail looks up an account. Returns ErrUserNotFound when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, `email = ?`, NormalizeEmail(email))
}

// GetUserByID looks up an account by id. Returns ErrUserNotFound when absent.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return db.getUser(ctx, `id = ?`, id)
}

func (db *DB) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		u        models.User
		nickname sql.NullString
	)
	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, nickname, created_at FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &nickname, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		observe("select", "users", start, nil)
		return nil, ErrUserNotFound
	}
	observe("select", "users", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.Nickname = nickname.String
	return &u, nil
}
