// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package maps

import "errors"

// Sentinel errors returned by the map service. The API layer maps these to
// HTTP status codes; the name-in-use conflict deliberately surfaces as 404,
// a convention this API has always had.
var (
	// ErrMapNotFound reports that no map exists with the given id.
	ErrMapNotFound = errors.New("the map with the given ID was not found")

	// ErrMapNameNotFound reports that no map exists with the given name.
	ErrMapNameNotFound = errors.New("the map with the given name was not found")

	// ErrHotSpotNotFound reports that the owning map has no hotspot with the
	// given id.
	ErrHotSpotNotFound = errors.New("the hotspot with the given id was not found")

	// ErrNameInUse reports a violation of the global map-name uniqueness
	// invariant.
	ErrNameInUse = errors.New("the given map name is already in use")

	// ErrZoomIDNotFound reports that a hotspot's zoomId does not resolve to
	// any stored map. Treated as a validation failure (400), not a 404.
	ErrZoomIDNotFound = errors.New("the map with the given zoom map id was not found")

	// ErrZoomNameNotFound reports that a hotspot's zoomName does not resolve
	// to any stored map. Treated as a validation failure (400), not a 404.
	ErrZoomNameNotFound = errors.New("the map with the given zoom map name was not found")
)
