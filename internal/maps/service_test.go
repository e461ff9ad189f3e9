// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package maps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoommaps/zoommaps/internal/models"
	"github.com/zoommaps/zoommaps/internal/store"
	"github.com/zoommaps/zoommaps/internal/validation"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return NewService(st.Maps())
}

func seedMap(t *testing.T, svc *Service, name string) *models.Map {
	t.Helper()
	m, err := svc.Submit(context.Background(), &models.Map{
		Name:          name,
		Description:   "Seeded map " + name,
		ImageFilename: "seed.png",
	})
	require.NoError(t, err)
	return m
}

func TestSubmitCreatesNewMap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.Submit(ctx, &models.Map{
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.NotNil(t, m.HotSpots, "hotspots never serialize as null")
	assert.Empty(t, m.HotSpots)
}

func TestSubmitUpsertsByName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := seedMap(t, svc, "Riverside")

	second, err := svc.Submit(ctx, &models.Map{
		Name:          "Riverside",
		Description:   "A bigger town by the river",
		ImageFilename: "riverside-v2.png",
		HotSpots: []models.HotSpot{
			{Name: "Bridge", Description: "The old stone bridge"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same name targets the same map")
	assert.Equal(t, "A bigger town by the river", second.Description)
	assert.Equal(t, "riverside-v2.png", second.ImageFilename)
	require.Len(t, second.HotSpots, 1)
	assert.NotEmpty(t, second.HotSpots[0].ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitReplacesHotSpotsWholesale(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, &models.Map{
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
		HotSpots: []models.HotSpot{
			{Name: "Gate", Description: "The north gate"},
			{Name: "Bridge", Description: "The old stone bridge"},
		},
	})
	require.NoError(t, err)

	m, err := svc.Submit(ctx, &models.Map{
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
	})
	require.NoError(t, err)
	assert.Empty(t, m.HotSpots, "an absent hotspot list clears the stored one")
}

func TestSubmitByIDRejectsRename(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "Riverside")

	_, err := svc.Submit(ctx, &models.Map{
		ID:            m.ID,
		Name:          "Lakeside",
		Description:   "Renamed town",
		ImageFilename: "lakeside.png",
	})
	assert.ErrorIs(t, err, ErrNameInUse)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside", got.Name, "a rejected submit must not mutate")
	assert.Equal(t, m.Description, got.Description)
}

func TestSubmitByIDOverwrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "Riverside")

	upd, err := svc.Submit(ctx, &models.Map{
		ID:            m.ID,
		Name:          "Riverside",
		Description:   "Rewritten from scratch",
		ImageFilename: "riverside-v3.png",
	})
	require.NoError(t, err)
	assert.Equal(t, m.ID, upd.ID)
	assert.Equal(t, "Rewritten from scratch", upd.Description)
}

func TestSubmitUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(context.Background(), &models.Map{
		ID:            "no-such-id",
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
	})
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		payload *models.Map
	}{
		{"short name", &models.Map{Name: "ab", Description: "valid description", ImageFilename: "img.png"}},
		{"missing description", &models.Map{Name: "Riverside", ImageFilename: "img.png"}},
		{"missing image", &models.Map{Name: "Riverside", Description: "valid description"}},
		{"whitespace-only name", &models.Map{Name: "   ", Description: "valid description", ImageFilename: "img.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.payload)
			var verr *validation.Error
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestUpdateMergesPresentFieldsOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.Submit(ctx, &models.Map{
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
		HotSpots: []models.HotSpot{
			{Name: "Gate", Description: "The north gate"},
		},
	})
	require.NoError(t, err)

	desc := "A quieter town by the river"
	got, err := svc.Update(ctx, &models.MapUpdate{ID: m.ID, Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "Riverside", got.Name)
	assert.Equal(t, desc, got.Description)
	assert.Equal(t, "riverside.png", got.ImageFilename)
	assert.Len(t, got.HotSpots, 1, "absent fields keep their stored values")
}

func TestUpdateNameConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seedMap(t, svc, "Riverside")
	other := seedMap(t, svc, "Lakeside")

	name := "Riverside"
	_, err := svc.Update(ctx, &models.MapUpdate{ID: other.ID, Name: &name})
	assert.ErrorIs(t, err, ErrNameInUse)

	// Re-sending a map's own name is not a conflict.
	name = "Lakeside"
	_, err = svc.Update(ctx, &models.MapUpdate{ID: other.ID, Name: &name})
	assert.NoError(t, err)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService(t)

	desc := "whatever"
	_, err := svc.Update(context.Background(), &models.MapUpdate{ID: "no-such-id", Description: &desc})
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestUpdateIgnoresRevision(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "Riverside")

	rev := 42
	desc := "Still standing"
	got, err := svc.Update(ctx, &models.MapUpdate{ID: m.ID, Description: &desc, Rev: &rev})
	require.NoError(t, err)
	assert.Equal(t, desc, got.Description)
}

func TestDeleteMap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "Riverside")

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.ErrorIs(t, svc.Delete(ctx, m.ID), ErrMapNotFound)

	_, err := svc.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestDeleteMapLeavesDanglingZoomLinks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	target := seedMap(t, svc, "Lakeside")
	m := seedMap(t, svc, "Riverside")

	hs, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		Name:        "Ferry",
		Description: "Ferry across the lake",
		ZoomName:    "Lakeside",
	})
	require.NoError(t, err)
	require.Equal(t, target.ID, hs.ZoomID)

	require.NoError(t, svc.Delete(ctx, target.ID))

	got, err := svc.GetHotSpot(ctx, m.ID, hs.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ZoomID, "zoom links are weak references")
}

func TestSubmitHotSpotResolvesZoomName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	target := seedMap(t, svc, "Old Town")
	m := seedMap(t, svc, "City Overview")

	hs, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		X:           0.25,
		Y:           0.75,
		Name:        "Old Town",
		Description: "Zoom into the old town",
		ZoomName:    "Old Town",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, hs.ID)
	assert.Equal(t, target.ID, hs.ZoomID)
	assert.Equal(t, "Old Town", hs.ZoomName)
}

func TestSubmitHotSpotZoomIDPrecedence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	byID := seedMap(t, svc, "Harbor")
	seedMap(t, svc, "Old Town")
	m := seedMap(t, svc, "City Overview")

	hs, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		Name:        "Waterfront",
		Description: "Down to the water",
		ZoomName:    "Old Town",
		ZoomID:      byID.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, byID.ID, hs.ZoomID, "zoomId wins over zoomName")
}

func TestSubmitHotSpotUnresolvableZoom(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "City Overview")

	_, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		Name:        "Nowhere",
		Description: "Leads nowhere",
		ZoomID:      "no-such-map",
	})
	assert.ErrorIs(t, err, ErrZoomIDNotFound)

	_, err = svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		Name:        "Nowhere",
		Description: "Leads nowhere",
		ZoomName:    "No Such Map",
	})
	assert.ErrorIs(t, err, ErrZoomNameNotFound)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, got.HotSpots, "failed submits must not append")
}

func TestSubmitHotSpotWithoutZoom(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "City Overview")

	hs, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		Name:        "Fountain",
		Description: "Just a fountain",
	})
	require.NoError(t, err)
	assert.Empty(t, hs.ZoomID)
	assert.Empty(t, hs.ZoomName)
}

func TestSubmitHotSpotOverwrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	target := seedMap(t, svc, "Old Town")
	m := seedMap(t, svc, "City Overview")

	hs, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		Name:        "Old Town",
		Description: "Zoom into the old town",
		ZoomName:    "Old Town",
	})
	require.NoError(t, err)
	require.Equal(t, target.ID, hs.ZoomID)

	// Overwriting without zoom fields clears the stored link.
	upd, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		ID:          hs.ID,
		X:           0.5,
		Y:           0.5,
		Name:        "Town Square",
		Description: "No longer a zoom point",
	})
	require.NoError(t, err)
	assert.Equal(t, hs.ID, upd.ID)
	assert.Equal(t, "Town Square", upd.Name)
	assert.Empty(t, upd.ZoomID)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, got.HotSpots, 1, "overwrite must not append")
}

func TestSubmitHotSpotUnknownID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := seedMap(t, svc, "City Overview")

	_, err := svc.SubmitHotSpot(ctx, m.ID, &models.HotSpot{
		ID:          "no-such-hotspot",
		Name:        "Ghost",
		Description: "Does not exist",
	})
	assert.ErrorIs(t, err, ErrHotSpotNotFound)

	_, err = svc.SubmitHotSpot(ctx, "no-such-map", &models.HotSpot{
		Name:        "Ghost",
		Description: "Does not exist",
	})
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestDeleteHotSpotPreservesOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.Submit(ctx, &models.Map{
		Name:          "City Overview",
		Description:   "The whole city",
		ImageFilename: "city.png",
		HotSpots: []models.HotSpot{
			{Name: "First", Description: "First hotspot"},
			{Name: "Second", Description: "Second hotspot"},
			{Name: "Third", Description: "Third hotspot"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHotSpot(ctx, m.ID, m.HotSpots[1].ID))

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.HotSpots, 2)
	assert.Equal(t, "First", got.HotSpots[0].Name)
	assert.Equal(t, "Third", got.HotSpots[1].Name)

	assert.ErrorIs(t, svc.DeleteHotSpot(ctx, m.ID, m.HotSpots[1].ID), ErrHotSpotNotFound)
}

func TestGetHotSpotReturnsCopy(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.Submit(ctx, &models.Map{
		Name:          "City Overview",
		Description:   "The whole city",
		ImageFilename: "city.png",
		HotSpots: []models.HotSpot{
			{Name: "Gate", Description: "The north gate"},
		},
	})
	require.NoError(t, err)

	hs, err := svc.GetHotSpot(ctx, m.ID, m.HotSpots[0].ID)
	require.NoError(t, err)
	hs.Name = "mutated"

	again, err := svc.GetHotSpot(ctx, m.ID, m.HotSpots[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Gate", again.Name)

	_, err = svc.GetHotSpot(ctx, m.ID, "no-such-hotspot")
	assert.ErrorIs(t, err, ErrHotSpotNotFound)
}
