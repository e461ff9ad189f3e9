// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zoommaps/zoommaps/internal/auth"
	"github.com/zoommaps/zoommaps/internal/models"
)

// Me returns the account of the authenticated identity.
//
// Method: GET
// Path: /api/users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondText(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	u, err := h.users.Get(r.Context(), claims.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u.Sanitized())
}

// ListUsers returns all users, password hashes excluded.
//
// Method: GET
// Path: /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	all, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.SanitizedUsers(all))
}

// GetUser returns one user by id, password hash excluded.
//
// Method: GET
// Path: /api/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u.Sanitized())
}

// GetUserByEmail returns one user by email, password hash excluded.
//
// Method: GET
// Path: /api/users/email/{email}
func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u.Sanitized())
}

// CreateUser registers a new user and returns the created account with a
// freshly issued identity token in the x-auth-token response header.
// Requires an admin identity.
//
// Method: POST
// Path: /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload models.User
	if !decodeJSON(w, r, &payload) {
		return
	}

	u, err := h.users.Register(r.Context(), &payload)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := h.jwt.GenerateToken(u)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set(auth.TokenHeader, token)
	respondJSON(w, http.StatusOK, u.Sanitized())
}

// DeleteUser removes a user by id. Deleting an unknown id still responds
// 200. Requires an admin identity.
//
// Method: DELETE
// Path: /api/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w)
}

// Login verifies an email/password pair and returns a signed identity token
// as the response body.
//
// Method: POST
// Path: /api/auth
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	u, err := h.users.Authenticate(r.Context(), &creds)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := h.jwt.GenerateToken(u)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondText(w, http.StatusOK, token)
}
