// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package maps implements the map resolution and merge engine: create-or-
// upsert-by-name, field-level partial update, hotspot zoom-target resolution,
// and the global map-name uniqueness invariant.
//
// Two write intents exist and must not be collapsed:
//
//   - Submit is "define the whole map now": it always overwrites all four
//     top-level fields of the targeted map.
//   - Update is "patch these fields": absent payload fields retain their
//     stored values.
//
// Lookup-by-name followed by write is not atomic; two concurrent Submit calls
// with the same new name can race. Each individual store write is atomic.
package maps

import (
	"context"
	"errors"

	"github.com/zoommaps/zoommaps/internal/logging"
	"github.com/zoommaps/zoommaps/internal/models"
	"github.com/zoommaps/zoommaps/internal/store"
	"github.com/zoommaps/zoommaps/internal/validation"
)

// Service is the map resolution and merge engine.
type Service struct {
	maps *store.MapStore
}

// NewService creates a map service backed by the given store.
func NewService(maps *store.MapStore) *Service {
	return &Service{maps: maps}
}

// List returns all maps.
func (s *Service) List(ctx context.Context) ([]models.Map, error) {
	return s.maps.List(ctx)
}

// Get returns the map with the given id.
func (s *Service) Get(ctx context.Context, id string) (*models.Map, error) {
	m, err := s.maps.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMapNotFound
	}
	return m, err
}

// GetByName returns the map with the given name (exact match).
func (s *Service) GetByName(ctx context.Context, name string) (*models.Map, error) {
	m, err := s.maps.GetByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMapNameNotFound
	}
	return m, err
}

// Submit creates or replaces a map (create-or-upsert-by-name).
//
// Without an id the payload targets the map holding its name, or a new map
// when the name is free. With an id the payload targets that map directly,
// and is rejected with ErrNameInUse when the stored name differs from the
// payload name: an id-targeted map may not be silently renamed onto a name
// that might belong to another map.
//
// All four top-level fields of the target are overwritten.
func (s *Service) Submit(ctx context.Context, payload *models.Map) (*models.Map, error) {
	payload.Trim()
	if verr := validation.ValidateStruct(payload); verr != nil {
		return nil, verr
	}

	byName, err := s.maps.GetByName(ctx, payload.Name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var target *models.Map
	if payload.ID == "" {
		if byName != nil {
			target = byName
		} else {
			target = &models.Map{}
		}
	} else {
		target, err = s.maps.GetByID(ctx, payload.ID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMapNotFound
		}
		if err != nil {
			return nil, err
		}
		if target.Name != payload.Name {
			return nil, ErrNameInUse
		}
	}

	target.Name = payload.Name
	target.Description = payload.Description
	target.ImageFilename = payload.ImageFilename
	target.HotSpots = payload.HotSpots

	if err := s.maps.Save(ctx, target); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("map_id", target.ID).
		Str("name", target.Name).
		Msg("Map submitted")

	return target, nil
}

// Update applies a field-level partial update to the map with the payload's
// id. Fields absent from the payload retain their stored values. When the
// payload carries a name, no other map may already hold it.
func (s *Service) Update(ctx context.Context, upd *models.MapUpdate) (*models.Map, error) {
	upd.Rev = nil
	upd.Trim()
	if verr := validation.ValidateStruct(upd); verr != nil {
		return nil, verr
	}

	if upd.Name != nil {
		other, err := s.maps.GetByName(ctx, *upd.Name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != upd.ID {
			return nil, ErrNameInUse
		}
	}

	m, err := s.maps.GetByID(ctx, upd.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMapNotFound
	}
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.Description != nil {
		m.Description = *upd.Description
	}
	if upd.ImageFilename != nil {
		m.ImageFilename = *upd.ImageFilename
	}
	if upd.HotSpots != nil {
		m.HotSpots = *upd.HotSpots
	}

	if err := s.maps.Save(ctx, m); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("map_id", m.ID).
		Str("name", m.Name).
		Msg("Map updated")

	return m, nil
}

// Delete removes the map with the given id.
// Dangling zoomIds in other maps' hotspots are left as-is; zoom links are
// weak references.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.maps.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrMapNotFound
	}
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Str("map_id", id).Msg("Map deleted")
	return nil
}

// GetHotSpot returns one hotspot of the map with the given id.
func (s *Service) GetHotSpot(ctx context.Context, mapID, hotSpotID string) (*models.HotSpot, error) {
	m, err := s.maps.GetByID(ctx, mapID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMapNotFound
	}
	if err != nil {
		return nil, err
	}

	hs := m.FindHotSpot(hotSpotID)
	if hs == nil {
		return nil, ErrHotSpotNotFound
	}

	out := *hs
	return &out, nil
}

// SubmitHotSpot adds a hotspot to the map with the given id, or fully
// overwrites an existing one when the payload carries a hotspot id.
//
// The zoom target resolves with zoomId taking precedence over zoomName; an
// unresolvable target is a validation failure. When neither field is set the
// hotspot carries no zoom link, and on the overwrite path any previous link
// is cleared.
func (s *Service) SubmitHotSpot(ctx context.Context, mapID string, payload *models.HotSpot) (*models.HotSpot, error) {
	payload.Trim()
	if verr := validation.ValidateStruct(payload); verr != nil {
		return nil, verr
	}

	zoomID, err := s.resolveZoom(ctx, payload)
	if err != nil {
		return nil, err
	}

	m, err := s.maps.GetByID(ctx, mapID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMapNotFound
	}
	if err != nil {
		return nil, err
	}

	if payload.ID == "" {
		m.HotSpots = append(m.HotSpots, models.HotSpot{
			X:           payload.X,
			Y:           payload.Y,
			Name:        payload.Name,
			Description: payload.Description,
			ZoomName:    payload.ZoomName,
			ZoomID:      zoomID,
		})

		if err := s.maps.Save(ctx, m); err != nil {
			return nil, err
		}

		appended := m.HotSpots[len(m.HotSpots)-1]

		logging.Ctx(ctx).Info().
			Str("map_id", m.ID).
			Str("hotspot_id", appended.ID).
			Msg("Hotspot added")

		return &appended, nil
	}

	hs := m.FindHotSpot(payload.ID)
	if hs == nil {
		return nil, ErrHotSpotNotFound
	}

	hs.X = payload.X
	hs.Y = payload.Y
	hs.Name = payload.Name
	hs.Description = payload.Description
	hs.ZoomName = payload.ZoomName
	hs.ZoomID = zoomID

	if err := s.maps.Save(ctx, m); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("map_id", m.ID).
		Str("hotspot_id", hs.ID).
		Msg("Hotspot updated")

	out := *hs
	return &out, nil
}

// DeleteHotSpot removes one hotspot from the map with the given id,
// preserving the order of the remaining hotspots.
func (s *Service) DeleteHotSpot(ctx context.Context, mapID, hotSpotID string) error {
	m, err := s.maps.GetByID(ctx, mapID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrMapNotFound
	}
	if err != nil {
		return err
	}

	idx := -1
	for i := range m.HotSpots {
		if m.HotSpots[i].ID == hotSpotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrHotSpotNotFound
	}

	m.HotSpots = append(m.HotSpots[:idx], m.HotSpots[idx+1:]...)

	if err := s.maps.Save(ctx, m); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Str("map_id", m.ID).
		Str("hotspot_id", hotSpotID).
		Msg("Hotspot deleted")

	return nil
}

// resolveZoom resolves the hotspot's zoom target to a map id, zoomId taking
// precedence over zoomName. Returns "" when neither field is set.
func (s *Service) resolveZoom(ctx context.Context, hs *models.HotSpot) (string, error) {
	if hs.ZoomID != "" {
		zm, err := s.maps.GetByID(ctx, hs.ZoomID)
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrZoomIDNotFound
		}
		if err != nil {
			return "", err
		}
		return zm.ID, nil
	}

	if hs.ZoomName != "" {
		zm, err := s.maps.GetByName(ctx, hs.ZoomName)
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrZoomNameNotFound
		}
		if err != nil {
			return "", err
		}
		return zm.ID, nil
	}

	return "", nil
}
