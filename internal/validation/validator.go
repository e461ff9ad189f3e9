// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package validation provides struct validation using go-playground/validator
// v10: a thread-safe singleton validator plus translation of the first failed
// rule into the plain-text message the API returns on 400 responses.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Error is a request validation failure. Message describes the first
// violated field only; clients fix one problem at a time.
type Error struct {
	field   string
	tag     string
	message string
}

// Field returns the JSON name of the field that failed validation.
func (e *Error) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *Error) Tag() string {
	return e.tag
}

// Error returns the human-readable message for the first violation.
func (e *Error) Error() string {
	return e.message
}

// GetValidator returns the singleton validator instance, configured to report
// struct fields by their JSON names.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *Error describing the first violated
// field.
func ValidateStruct(s interface{}) *Error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &Error{field: "unknown", tag: "unknown", message: err.Error()}
	}

	first := validationErrs[0]
	return &Error{
		field:   first.Field(),
		tag:     first.Tag(),
		message: translateError(first),
	}
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email address", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%q length must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%q must be at least %s", field, param)
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, param)
		}
		return fmt.Sprintf("%q must be at most %s", field, param)
	default:
		return fmt.Sprintf("%q failed %s validation", field, fe.Tag())
	}
}
