// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package api provides the HTTP surface: thin route handlers that validate
// request shape, delegate to the services, and map results and errors to
// responses.
//
// The wire format is inherited and fixed: success bodies are the raw JSON
// entity (or a bare token / "OK" text), error bodies are plain-text messages.
// Name conflicts surface as 404, not 409.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/zoommaps/zoommaps/internal/logging"
	"github.com/zoommaps/zoommaps/internal/maps"
	"github.com/zoommaps/zoommaps/internal/users"
	"github.com/zoommaps/zoommaps/internal/validation"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondText writes a plain-text response body.
func respondText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(message)); err != nil {
		logging.Error().Err(err).Msg("Failed to write response")
	}
}

// respondOK writes the literal "OK" body used by delete endpoints.
func respondOK(w http.ResponseWriter) {
	respondText(w, http.StatusOK, "OK")
}

// serviceErrors maps service sentinel errors to status codes and the exact
// client-facing messages of the API contract.
var serviceErrors = []struct {
	err     error
	status  int
	message string
}{
	{maps.ErrMapNotFound, http.StatusNotFound, "The map with the given ID was not found"},
	{maps.ErrMapNameNotFound, http.StatusNotFound, "The map with the given name was not found"},
	{maps.ErrHotSpotNotFound, http.StatusNotFound, "The hotspot with the given id was not found"},
	{maps.ErrNameInUse, http.StatusNotFound, "The given map name is already in use"},
	{maps.ErrZoomIDNotFound, http.StatusBadRequest, "The map with the given zoom map id was not found."},
	{maps.ErrZoomNameNotFound, http.StatusBadRequest, "The map with the given zoom map name was not found."},
	{users.ErrUserNotFound, http.StatusNotFound, "The user with the given ID was not found"},
	{users.ErrEmailNotFound, http.StatusNotFound, "The user with the given email was not found"},
	{users.ErrEmailInUse, http.StatusBadRequest, "User already exists"},
	{users.ErrInvalidCredentials, http.StatusBadRequest, "Invalid user or password"},
}

// respondError converts a service error to its HTTP response. Validation
// failures carry their own message; anything unrecognized is an internal
// error, logged server-side and reported generically.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		respondText(w, http.StatusBadRequest, verr.Error())
		return
	}

	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			respondText(w, se.status, se.message)
			return
		}
	}

	logging.CtxErr(r.Context(), err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Unhandled error")
	respondText(w, http.StatusInternalServerError, "Something failed!")
}

// decodeJSON decodes the request body into v. A malformed body is reported
// as a 400 and the handler should return immediately.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondText(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
