// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/karlseguin/ccache/v3"

	"github.com/tomtom215/moodswipe/internal/logging"
	"github.com/tomtom215/moodswipe/internal/metrics"
)

const (
	tierMemory = "memory"
	tierDisk   = "disk"

	diskKeyPrefix = "classify:"
)

// CacheOptions configures CachedClassifier. A non-positive Size disables the
// memory tier and an empty Dir disables the disk tier.
type CacheOptions struct {
	Size int64
	TTL  time.Duration
	Dir  string

	// DB overrides Dir with an already open badger database. The caller
	// keeps ownership and must close it.
	DB *badger.DB
}

// CachedClassifier memoizes labels by image content. Only successful
// classifications are cached.
type CachedClassifier struct {
	next   Classifier
	hot    *ccache.Cache[string]
	disk   *badger.DB
	ownsDB bool
	ttl    time.Duration
}

type diskEntry struct {
	Mood         string    `json:"mood"`
	ClassifiedAt time.Time `json:"classified_at"`
}

// NewCachedClassifier wraps next with the configured cache tiers.
func NewCachedClassifier(next Classifier, opts CacheOptions) (*CachedClassifier, error) {
	if next == nil {
		return nil, errors.New("classifier is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	c := &CachedClassifier{next: next, ttl: ttl, disk: opts.DB}

	if opts.Size > 0 {
		c.hot = ccache.New(
			ccache.Configure[string]().
				MaxSize(opts.Size).
				GetsPerPromote(3).
				ItemsToPrune(10),
		)
	}

	if c.disk == nil && opts.Dir != "" {
		db, err := badger.Open(badger.DefaultOptions(opts.Dir).WithLogger(nil))
		if err != nil {
			c.stopHot()
			return nil, fmt.Errorf("failed to open classifier cache at %s: %w", opts.Dir, err)
		}
		c.disk = db
		c.ownsDB = true
	}

	return c, nil
}

// Classify returns a cached label for identical image bytes, or asks the
// wrapped classifier and stores its answer.
func (c *CachedClassifier) Classify(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return c.next.Classify(ctx, image)
	}
	key := imageKey(image)

	if c.hot != nil {
		if item := c.hot.Get(key); item != nil && !item.Expired() {
			metrics.RecordCacheLookup(tierMemory, "hit")
			return item.Value(), nil
		}
		metrics.RecordCacheLookup(tierMemory, "miss")
	}

	if c.disk != nil {
		mood, ok, err := c.diskGet(key)
		switch {
		case err != nil:
			metrics.RecordCacheLookup(tierDisk, "error")
			logging.Warn().Err(err).Msg("Classifier disk cache read failed")
		case ok:
			metrics.RecordCacheLookup(tierDisk, "hit")
			if c.hot != nil {
				c.hot.Set(key, mood, c.ttl)
			}
			return mood, nil
		default:
			metrics.RecordCacheLookup(tierDisk, "miss")
		}
	}

	mood, err := c.next.Classify(ctx, image)
	if err != nil {
		return "", err
	}

	if c.hot != nil {
		c.hot.Set(key, mood, c.ttl)
	}
	if c.disk != nil {
		if err := c.diskSet(key, mood); err != nil {
			logging.Warn().Err(err).Msg("Classifier disk cache write failed")
		}
	}
	return mood, nil
}

func (c *CachedClassifier) diskGet(key string) (string, bool, error) {
	var entry diskEntry
	found := false
	err := c.disk.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(diskKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return "", false, err
	}
	return entry.Mood, found && entry.Mood != "", nil
}

func (c *CachedClassifier) diskSet(key, mood string) error {
	data, err := json.Marshal(diskEntry{Mood: mood, ClassifiedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return c.disk.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(diskKeyPrefix+key), data).WithTTL(c.ttl))
	})
}

// Close stops the memory tier and closes a disk tier this cache opened.
func (c *CachedClassifier) Close() error {
	c.stopHot()
	if c.disk != nil && c.ownsDB {
		return c.disk.Close()
	}
	return nil
}

func (c *CachedClassifier) stopHot() {
	if c.hot != nil {
		c.hot.Stop()
	}
}

func imageKey(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}
