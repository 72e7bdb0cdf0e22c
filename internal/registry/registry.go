// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage
const (
	runKeyPrefix   = "run:"
	runIDKeyPrefix = "run_id:"
)

// keyTimeLayout sorts lexicographically in time order.
const keyTimeLayout = "20060102T150405.000000000Z"

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

var (
	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("training run not found")

	// ErrInvalidRun is returned for runs without an ID or start time.
	ErrInvalidRun = errors.New("invalid training run")
)

// Registry stores training runs.
type Registry struct {
	db *badger.DB
}

// Open opens (or creates) a registry at path.
func Open(path string) (*Registry, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for training runs: %w", err)
	}
	return &Registry{db: db}, nil
}

// OpenInMemory opens a registry that lives only as long as the process.
func OpenInMemory() (*Registry, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger db: %w", err)
	}
	return &Registry{db: db}, nil
}

// Close releases the database.
func (r *Registry) Close() error {
	return r.db.Close()
}

func runKey(run *Run) []byte {
	return []byte(runKeyPrefix + run.StartedAt.UTC().Format(keyTimeLayout) + ":" + run.ID)
}

// Record stores run, replacing any earlier record with the same ID.
func (r *Registry) Record(ctx context.Context, run *Run) error {
	if run.ID == "" || run.StartedAt.IsZero() {
		return ErrInvalidRun
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	key := runKey(run)
	return r.db.Update(func(txn *badger.Txn) error {
		idKey := []byte(runIDKeyPrefix + run.ID)

		// A run re-recorded with a different start time must not leave
		// its old primary record behind.
		item, err := txn.Get(idKey)
		switch {
		case err == nil:
			old, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read run index: %w", err)
			}
			if string(old) != string(key) {
				if err := txn.Delete(old); err != nil {
					return fmt.Errorf("delete stale run: %w", err)
				}
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("get run index: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set run: %w", err)
		}
		if err := txn.Set(idKey, key); err != nil {
			return fmt.Errorf("set run index: %w", err)
		}
		return nil
	})
}

// Get returns the run with the given ID.
func (r *Registry) Get(ctx context.Context, id string) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var run Run
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(runIDKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRunNotFound
		}
		if err != nil {
			return fmt.Errorf("get run index: %w", err)
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err = txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRunNotFound
		}
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &run)
		})
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns up to limit runs, newest first. A limit of 0 or less means
// DefaultListLimit.
func (r *Registry) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	runs := make([]*Run, 0, limit)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		opts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(runKeyPrefix)
		seek := append(append([]byte(nil), prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(runs) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var run Run
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			})
			if err != nil {
				return fmt.Errorf("decode run %s: %w", it.Item().Key(), err)
			}
			runs = append(runs, &run)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list training runs: %w", err)
	}
	return runs, nil
}

// Latest returns the most recent run, or ErrRunNotFound.
func (r *Registry) Latest(ctx context.Context) (*Run, error) {
	runs, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return runs[0], nil
}
