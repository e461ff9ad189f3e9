// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package auth provides identity token handling and the HTTP authentication
// and role gates.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zoommaps/zoommaps/internal/config"
	"github.com/zoommaps/zoommaps/internal/models"
)

// Claims is the decoded identity carried by a token. Field names mirror the
// user document's wire format.
type Claims struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the identity carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Roles == models.AdminRole
}

// JWTManager creates and validates identity tokens. Tokens are signed with
// HMAC-SHA256; the secret is held as []byte for the life of the process.
type JWTManager struct {
	secret  []byte
	timeout time.Duration
}

// NewJWTManager creates a token manager from the security configuration.
// The JWT secret is required; Config.Validate enforces its minimum length.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required but was empty")
	}

	return &JWTManager{
		secret:  []byte(cfg.JWTSecret),
		timeout: cfg.SessionTimeout,
	}, nil
}

// GenerateToken creates a signed token encoding the user's id, name, and
// role. A zero session timeout produces a token without expiry.
func (m *JWTManager) GenerateToken(u *models.User) (string, error) {
	claims := &Claims{
		ID:    u.ID,
		Name:  u.Name,
		Roles: u.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if m.timeout > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(m.timeout))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies a token's signature, structure, and expiry, and
// returns the decoded identity. The signing algorithm is pinned to HMAC to
// prevent algorithm confusion.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
