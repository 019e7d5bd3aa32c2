// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package database

import (
	"context"
	"errors"
	"testing"
)

func TestUsers(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "  Alice@Example.com ", "hash", "al")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.ID == 0 || u.Email != "alice@example.com" {
		t.Errorf("CreateUser() = %+v", u)
	}

	if _, err := db.CreateUser(ctx, "ALICE@example.com", "other", ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrUserExists", err)
	}

	got, err := db.GetUserByEmail(ctx, "alice@EXAMPLE.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || got.HashedPassword != "hash" || got.Nickname != "al" {
		t.Errorf("GetUserByEmail() = %+v", got)
	}

	byID, err := db.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.Email != u.Email {
		t.Errorf("GetUserByID() = %+v", byID)
	}

	if _, err := db.GetUserByEmail(ctx, "bob@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByEmail(missing) error = %v, want ErrUserNotFound", err)
	}

	bob, err := db.CreateUser(ctx, "bob@example.com", "hash", "")
	if err != nil {
		t.Fatal(err)
	}
	if bob.ID == u.ID {
		t.Error("second user reused the first id")
	}
	if got, _ := db.GetUserByID(ctx, bob.ID); got == nil || got.Nickname != "" {
		t.Errorf("empty nickname not round-tripped: %+v", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	if got := NormalizeEmail(" Foo@Bar.COM\n"); got != "foo@bar.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}
