// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package models defines the document types stored by Zoommaps and the
// request payloads accepted by the API. JSON field names ("_id", "hotSpots",
// "imageFilename", ...) are part of the wire contract and must not change.
package models

import "strings"

// HotSpot is a clickable region on a map image. HotSpots are owned by exactly
// one Map and are only ever persisted as part of their owning Map document.
//
// ZoomName is the human-entered target map name used to resolve ZoomID at
// write time. ZoomID is the durable link; the two fields are not kept in sync
// after the referenced map is renamed.
type HotSpot struct {
	ID          string  `json:"_id,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Name        string  `json:"name" validate:"required,min=3,max=50"`
	Description string  `json:"description" validate:"required,min=3,max=2000"`
	ZoomName    string  `json:"zoomName,omitempty" validate:"omitempty,max=100"`
	ZoomID      string  `json:"zoomId,omitempty"`
}

// Trim normalizes the string fields in place.
func (h *HotSpot) Trim() {
	h.Name = strings.TrimSpace(h.Name)
	h.Description = strings.TrimSpace(h.Description)
	h.ZoomName = strings.TrimSpace(h.ZoomName)
	h.ZoomID = strings.TrimSpace(h.ZoomID)
}

// Map is a named map image with an ordered list of hotspots.
// Map names are globally unique (case-sensitive, exact match).
type Map struct {
	ID            string    `json:"_id,omitempty"`
	Name          string    `json:"name" validate:"required,min=3,max=50"`
	Description   string    `json:"description" validate:"required,min=3,max=2048"`
	ImageFilename string    `json:"imageFilename" validate:"required,min=3,max=50"`
	HotSpots      []HotSpot `json:"hotSpots" validate:"omitempty,dive"`
}

// Trim normalizes the string fields of the map and its hotspots in place.
func (m *Map) Trim() {
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)
	m.ImageFilename = strings.TrimSpace(m.ImageFilename)
	for i := range m.HotSpots {
		m.HotSpots[i].Trim()
	}
}

// FindHotSpot returns a pointer to the hotspot with the given id, or nil.
func (m *Map) FindHotSpot(id string) *HotSpot {
	for i := range m.HotSpots {
		if m.HotSpots[i].ID == id {
			return &m.HotSpots[i]
		}
	}
	return nil
}

// MapUpdate is the PUT payload for partial map updates. Pointer fields
// distinguish "absent" from "present but empty": absent fields retain the
// stored value, present fields overwrite it.
//
// Rev absorbs the optimistic revision marker ("__v") some clients echo back;
// it is stripped before validation and otherwise ignored.
type MapUpdate struct {
	ID            string     `json:"_id" validate:"required"`
	Name          *string    `json:"name" validate:"omitempty,min=3,max=50"`
	Description   *string    `json:"description" validate:"omitempty,min=3,max=2048"`
	ImageFilename *string    `json:"imageFilename" validate:"omitempty,min=3,max=50"`
	HotSpots      *[]HotSpot `json:"hotSpots" validate:"omitempty,dive"`
	Rev           *int       `json:"__v,omitempty"`
}

// Trim normalizes the present string fields in place.
func (u *MapUpdate) Trim() {
	u.ID = strings.TrimSpace(u.ID)
	if u.Name != nil {
		*u.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		*u.Description = strings.TrimSpace(*u.Description)
	}
	if u.ImageFilename != nil {
		*u.ImageFilename = strings.TrimSpace(*u.ImageFilename)
	}
	if u.HotSpots != nil {
		for i := range *u.HotSpots {
			(*u.HotSpots)[i].Trim()
		}
	}
}
