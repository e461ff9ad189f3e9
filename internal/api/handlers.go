// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package api

import (
	"net/http"
	"time"

	"github.com/zoommaps/zoommaps/internal/auth"
	"github.com/zoommaps/zoommaps/internal/maps"
	"github.com/zoommaps/zoommaps/internal/users"
)

// Handler bundles the services the HTTP surface delegates to.
type Handler struct {
	maps  *maps.Service
	users *users.Service
	jwt   *auth.JWTManager

	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(mapsSvc *maps.Service, usersSvc *users.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		maps:      mapsSvc,
		users:     usersSvc,
		jwt:       jwtManager,
		startTime: time.Now(),
	}
}

// Health reports process liveness and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
