// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/zoommaps/zoommaps/internal/models"
)

// Key prefixes for the map collection.
const (
	mapKeyPrefix     = "map:"
	mapNameKeyPrefix = "map_name:"
)

// MapStore provides CRUD access to the Map collection.
type MapStore struct {
	db *badger.DB
}

func mapKey(id string) []byte {
	return []byte(mapKeyPrefix + id)
}

func mapNameKey(name string) []byte {
	return []byte(mapNameKeyPrefix + name)
}

// List returns all stored maps. Order is unspecified.
func (s *MapStore) List(ctx context.Context) ([]models.Map, error) {
	maps := []models.Map{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mapKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var m models.Map
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			})
			if err != nil {
				return fmt.Errorf("decode map %s: %w", it.Item().Key(), err)
			}
			maps = append(maps, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return maps, nil
}

// GetByID retrieves a map by id. Returns ErrNotFound if absent.
func (s *MapStore) GetByID(ctx context.Context, id string) (*models.Map, error) {
	var m models.Map

	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, mapKey(id), &m)
	})
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// GetByName retrieves a map by its unique name (exact, case-sensitive match).
// Returns ErrNotFound if absent.
func (s *MapStore) GetByName(ctx context.Context, name string) (*models.Map, error) {
	var m models.Map

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(mapNameKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get map name index: %w", err)
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}

		return getJSON(txn, mapKey(id), &m)
	})
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Save persists a map as a full document write, maintaining the name index.
// A map without an id is assigned one; hotspots without ids are assigned
// theirs on the same write. Ids are immutable after assignment.
func (s *MapStore) Save(ctx context.Context, m *models.Map) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	for i := range m.HotSpots {
		if m.HotSpots[i].ID == "" {
			m.HotSpots[i].ID = uuid.New().String()
		}
	}
	if m.HotSpots == nil {
		m.HotSpots = []models.HotSpot{}
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal map: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		// On rename, drop the stale name index entry.
		var prev models.Map
		switch err := getJSON(txn, mapKey(m.ID), &prev); {
		case err == nil:
			if prev.Name != m.Name {
				if err := txn.Delete(mapNameKey(prev.Name)); err != nil {
					return fmt.Errorf("delete stale name index: %w", err)
				}
			}
		case errors.Is(err, ErrNotFound):
			// first write for this id
		default:
			return err
		}

		if err := txn.Set(mapKey(m.ID), data); err != nil {
			return fmt.Errorf("set map: %w", err)
		}
		if err := txn.Set(mapNameKey(m.Name), []byte(m.ID)); err != nil {
			return fmt.Errorf("set name index: %w", err)
		}
		return nil
	})
}

// Delete removes a map and its name index entry.
// Returns ErrNotFound if the id does not exist.
func (s *MapStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var m models.Map
		if err := getJSON(txn, mapKey(id), &m); err != nil {
			return err
		}

		if err := txn.Delete(mapKey(id)); err != nil {
			return fmt.Errorf("delete map: %w", err)
		}
		if err := txn.Delete(mapNameKey(m.Name)); err != nil {
			return fmt.Errorf("delete name index: %w", err)
		}
		return nil
	})
}

// getJSON reads and unmarshals a JSON value inside a transaction.
// Returns ErrNotFound when the key is absent.
func getJSON(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}
