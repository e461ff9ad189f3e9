// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoommaps/zoommaps/internal/config"
	"github.com/zoommaps/zoommaps/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, timeout time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: timeout,
	})
	require.NoError(t, err)
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager(&config.SecurityConfig{})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(t, 24*time.Hour)

	u := &models.User{ID: "user-1", Name: "Alice", Roles: models.AdminRole}
	token, err := m.GenerateToken(u)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, models.AdminRole, claims.Roles)
	assert.True(t, claims.IsAdmin())
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenWithoutExpiry(t *testing.T) {
	m := newTestManager(t, 0)

	token, err := m.GenerateToken(&models.User{ID: "user-1", Name: "Alice", Roles: "reader"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.False(t, claims.IsAdmin())
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)

	other, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret: "ffffffffffffffffffffffffffffffff",
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(&models.User{ID: "user-1", Name: "Alice", Roles: "reader"})
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := newTestManager(t, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ValidateToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	// alg=none header with an arbitrary payload and no signature.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJfaWQiOiJ1c2VyLTEifQ."
	_, err := m.ValidateToken(unsigned)
	assert.Error(t, err)
}
