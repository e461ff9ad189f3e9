// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zoommaps/zoommaps/internal/models"
)

// GetHotSpot returns one hotspot of a map.
//
// Method: GET
// Path: /api/maps/{id}/hotspots/{hotSpotId}
func (h *Handler) GetHotSpot(w http.ResponseWriter, r *http.Request) {
	hs, err := h.maps.GetHotSpot(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "hotSpotId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, hs)
}

// SubmitHotSpot adds a hotspot to a map, or fully overwrites an existing one
// when the payload carries a hotspot id. The zoom target is resolved at
// write time, zoomId taking precedence over zoomName. Requires an admin
// identity.
//
// Method: POST
// Path: /api/maps/{id}/hotspots
func (h *Handler) SubmitHotSpot(w http.ResponseWriter, r *http.Request) {
	var payload models.HotSpot
	if !decodeJSON(w, r, &payload) {
		return
	}

	hs, err := h.maps.SubmitHotSpot(r.Context(), chi.URLParam(r, "id"), &payload)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, hs)
}

// DeleteHotSpot removes one hotspot from a map. Requires an admin identity.
//
// Method: DELETE
// Path: /api/maps/{id}/hotspots/{hotSpotId}
func (h *Handler) DeleteHotSpot(w http.ResponseWriter, r *http.Request) {
	err := h.maps.DeleteHotSpot(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "hotSpotId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w)
}
