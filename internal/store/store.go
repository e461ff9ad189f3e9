// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package store persists the two Zoommaps document collections (maps, users)
// in an embedded BadgerDB key-value store.
//
// Documents are stored as JSON values under typed key prefixes:
//
//	map:<id>        -> Map document
//	map_name:<name> -> map id (secondary index for lookup-by-name)
//	user:<id>       -> User document
//	user_email:<e>  -> user id (secondary index for lookup-by-email)
//
// Each Save or Delete runs in a single Badger transaction, so an individual
// write (document plus its index keys) is atomic. Read-then-write sequences
// composed by callers are not; the service layer accepts that window.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/zoommaps/zoommaps/internal/config"
	"github.com/zoommaps/zoommaps/internal/logging"
)

// ErrNotFound is returned when a document or index key does not exist.
var ErrNotFound = errors.New("store: not found")

// Store owns the Badger database handle. It is opened once at process start
// and closed at shutdown.
type Store struct {
	db *badger.DB
}

// Open opens the Badger database described by cfg.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger logs through its own interface; routed into zerolog.
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}

	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory store. Test helper.
func OpenInMemory() (*Store, error) {
	return Open(config.DatabaseConfig{InMemory: true})
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Maps returns the map collection accessor.
func (s *Store) Maps() *MapStore {
	return &MapStore{db: s.db}
}

// Users returns the user collection accessor.
func (s *Store) Users() *UserStore {
	return &UserStore{db: s.db}
}

// badgerLogger adapts Badger's logger interface to zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}
