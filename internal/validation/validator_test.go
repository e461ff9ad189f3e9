// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoommaps/zoommaps/internal/models"
)

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(&models.Map{
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
	})
	assert.Nil(t, err)
}

func TestValidateStructFirstViolation(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		field   string
		tag     string
		message string
	}{
		{
			name:    "missing name",
			payload: &models.Map{Description: "A town by the river", ImageFilename: "r.png"},
			field:   "name",
			tag:     "required",
			message: `"name" is required`,
		},
		{
			name:    "short name",
			payload: &models.Map{Name: "ab", Description: "A town by the river", ImageFilename: "r.png"},
			field:   "name",
			tag:     "min",
			message: `"name" length must be at least 3 characters long`,
		},
		{
			name: "long image filename",
			payload: &models.Map{
				Name:          "Riverside",
				Description:   "A town by the river",
				ImageFilename: strings.Repeat("x", 51),
			},
			field:   "imageFilename",
			tag:     "max",
			message: `"imageFilename" length must be less than or equal to 50 characters long`,
		},
		{
			name:    "bad email",
			payload: &models.User{Name: "Alice", Email: "nope", Password: "pw3", Roles: "reader"},
			field:   "email",
			tag:     "email",
			message: `"email" must be a valid email address`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.payload)
			require.NotNil(t, verr)
			assert.Equal(t, tt.field, verr.Field())
			assert.Equal(t, tt.tag, verr.Tag())
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	verr := ValidateStruct(&models.HotSpot{Name: "Gate"})
	require.NotNil(t, verr)
	assert.Equal(t, "description", verr.Field(), "violations name fields by JSON tag")
}

func TestValidateStructDivesIntoHotSpots(t *testing.T) {
	verr := ValidateStruct(&models.Map{
		Name:          "Riverside",
		Description:   "A town by the river",
		ImageFilename: "riverside.png",
		HotSpots: []models.HotSpot{
			{Name: "x", Description: "A perfectly fine description"},
		},
	})
	require.NotNil(t, verr)
	assert.Equal(t, "min", verr.Tag())
}

func TestValidateOptionalFieldsSkipWhenAbsent(t *testing.T) {
	// Pointer fields with omitempty validation only fire when present.
	short := "ab"
	verr := ValidateStruct(&models.MapUpdate{ID: "some-id", Name: &short})
	require.NotNil(t, verr)
	assert.Equal(t, "min", verr.Tag())

	assert.Nil(t, ValidateStruct(&models.MapUpdate{ID: "some-id"}))
}
