// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zoommaps/zoommaps/internal/models"
)

// ListMaps returns all stored maps.
//
// Method: GET
// Path: /api/maps
func (h *Handler) ListMaps(w http.ResponseWriter, r *http.Request) {
	all, err := h.maps.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}

// GetMap returns one map by id. A syntactically invalid id is a 404, like an
// id that does not resolve: the identifier can never have existed.
//
// Method: GET
// Path: /api/maps/{id}
func (h *Handler) GetMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		respondText(w, http.StatusNotFound, "Invalid Id")
		return
	}

	m, err := h.maps.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// GetMapByName returns one map by its unique name.
//
// Method: GET
// Path: /api/maps/name/{name}
func (h *Handler) GetMapByName(w http.ResponseWriter, r *http.Request) {
	m, err := h.maps.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// SubmitMap creates or replaces a map (create-or-upsert-by-name). Requires
// an admin identity.
//
// Method: POST
// Path: /api/maps
func (h *Handler) SubmitMap(w http.ResponseWriter, r *http.Request) {
	var payload models.Map
	if !decodeJSON(w, r, &payload) {
		return
	}

	m, err := h.maps.Submit(r.Context(), &payload)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// UpdateMap applies a field-level partial update to a map identified by the
// payload's id. Requires an admin identity.
//
// Method: PUT
// Path: /api/maps
func (h *Handler) UpdateMap(w http.ResponseWriter, r *http.Request) {
	var payload models.MapUpdate
	if !decodeJSON(w, r, &payload) {
		return
	}

	m, err := h.maps.Update(r.Context(), &payload)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// DeleteMap removes a map by id. Requires an admin identity.
//
// Method: DELETE
// Path: /api/maps/{id}
func (h *Handler) DeleteMap(w http.ResponseWriter, r *http.Request) {
	if err := h.maps.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w)
}
