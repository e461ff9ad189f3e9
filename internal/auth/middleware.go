// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/zoommaps/zoommaps/internal/logging"
)

// TokenHeader is the request header carrying the identity token, and the
// response header carrying a freshly issued token on registration.
const TokenHeader = "x-auth-token"

// contextKey is the private type for auth context keys.
type contextKey string

// claimsContextKey stores the decoded identity for the remainder of one
// request's processing. Nothing outlives the request.
const claimsContextKey contextKey = "claims"

// ClaimsFromContext returns the identity attached by Authenticate, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsContextKey).(*Claims); ok {
		return claims
	}
	return nil
}

// ContextWithClaims attaches a decoded identity to the context. Exposed for
// handler tests that bypass the middleware.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Middleware provides the authentication and role gates.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates the auth middleware around a token manager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate enforces a valid identity token on the request.
//
// A missing token is 401; a token that fails verification is 400. The split
// is part of the API contract: absent credentials and malformed credentials
// are distinct client mistakes.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			http.Error(w, "Access denied. Invalid token.", http.StatusBadRequest)
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin authorizes the identity attached by Authenticate against the
// admin role. Single-role equality only: no hierarchy, no role sets.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !claims.IsAdmin() {
			http.Error(w, "Access denied.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken reads the token from the x-auth-token header, falling back to
// a bearer Authorization header.
func extractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return ""
}
