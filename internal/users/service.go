// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package users implements account management and credential verification.
// Passwords are bcrypt-hashed before storage and never leave the process.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/zoommaps/zoommaps/internal/logging"
	"github.com/zoommaps/zoommaps/internal/models"
	"github.com/zoommaps/zoommaps/internal/store"
	"github.com/zoommaps/zoommaps/internal/validation"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// Errors returned by the user service.
var (
	// ErrUserNotFound reports that no user exists with the given id.
	ErrUserNotFound = errors.New("the user with the given ID was not found")

	// ErrEmailNotFound reports that no user exists with the given email.
	ErrEmailNotFound = errors.New("the user with the given email was not found")

	// ErrEmailInUse reports a registration against an existing email.
	ErrEmailInUse = errors.New("user already exists")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so a login attempt cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid user or password")
)

// Service manages the user collection.
type Service struct {
	users *store.UserStore
}

// NewService creates a user service backed by the given store.
func NewService(users *store.UserStore) *Service {
	return &Service{users: users}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// GetByEmail returns the user with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEmailNotFound
	}
	return u, err
}

// Register validates and stores a new user, hashing the password. Emails are
// unique by convention: registration against an existing email fails with
// ErrEmailInUse.
func (s *Service) Register(ctx context.Context, payload *models.User) (*models.User, error) {
	payload.Trim()
	if verr := validation.ValidateStruct(payload); verr != nil {
		return nil, verr
	}

	_, err := s.users.GetByEmail(ctx, payload.Email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: string(hash),
		Roles:    payload.Roles,
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("user_id", u.ID).
		Str("email", u.Email).
		Msg("User registered")

	return u, nil
}

// Authenticate verifies an email/password pair and returns the matching
// user. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Authenticate(ctx context.Context, creds *models.Credentials) (*models.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if verr := validation.ValidateStruct(creds); verr != nil {
		return nil, verr
	}

	u, err := s.users.GetByEmail(ctx, creds.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(creds.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	logging.Ctx(ctx).Info().Str("user_id", u.ID).Msg("User authenticated")
	return u, nil
}

// Delete removes the user with the given id. Deleting an unknown id is not
// an error; the operation is idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Str("user_id", id).Msg("User deleted")
	return nil
}
