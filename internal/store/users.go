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

// Key prefixes for the user collection.
const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
)

// UserStore provides CRUD access to the User collection.
type UserStore struct {
	db *badger.DB
}

func userKey(id string) []byte {
	return []byte(userKeyPrefix + id)
}

func userEmailKey(email string) []byte {
	return []byte(userEmailKeyPrefix + email)
}

// List returns all stored users. Order is unspecified.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var u models.User
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &u)
			})
			if err != nil {
				return fmt.Errorf("decode user %s: %w", it.Item().Key(), err)
			}
			users = append(users, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetByID retrieves a user by id. Returns ErrNotFound if absent.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User

	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &u)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetByEmail retrieves a user by email. Returns ErrNotFound if absent.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user email index: %w", err)
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}

		return getJSON(txn, userKey(id), &u)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Save persists a user, maintaining the email index. A user without an id is
// assigned one.
func (s *UserStore) Save(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var prev models.User
		switch err := getJSON(txn, userKey(u.ID), &prev); {
		case err == nil:
			if prev.Email != u.Email {
				if err := txn.Delete(userEmailKey(prev.Email)); err != nil {
					return fmt.Errorf("delete stale email index: %w", err)
				}
			}
		case errors.Is(err, ErrNotFound):
			// first write for this id
		default:
			return err
		}

		if err := txn.Set(userKey(u.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(userEmailKey(u.Email), []byte(u.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return nil
	})
}

// Delete removes a user and its email index entry.
// Returns ErrNotFound if the id does not exist.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var u models.User
		if err := getJSON(txn, userKey(id), &u); err != nil {
			return err
		}

		if err := txn.Delete(userKey(id)); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := txn.Delete(userEmailKey(u.Email)); err != nil {
			return fmt.Errorf("delete email index: %w", err)
		}
		return nil
	})
}
