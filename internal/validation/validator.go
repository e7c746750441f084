// Populytics - Global Population Analytics and Geographic Visualization
// Copyright 2026 Populytics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/populytics/populytics

// Package validation provides struct validation for write-path request
// payloads using go-playground/validator v10. It exposes a thread-safe
// singleton validator with custom rules for CCA3 country codes and region
// types, and translates failures into the API's VALIDATION_ERROR format.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var cca3Pattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidationError is a single field validation failure.
type ValidationError struct {
	field   string
	tag     string
	message string
}

// Field returns the struct field that failed validation.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Error returns a human-readable message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError is a collection of field validation failures.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual failures.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

// Error implements the error interface.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.message)
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError to avoid an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures to the API's VALIDATION_ERROR shape.
func (ve *RequestValidationError) ToAPIError() *APIError {
	details := make(map[string]interface{}, len(ve.errors))
	for _, err := range ve.errors {
		details[err.field] = err.message
	}
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: ve.Error(),
		Details: details,
	}
}

// getValidator returns the singleton validator, registering custom rules on
// first use.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// cca3: three uppercase letters, the country join key format.
		_ = validate.RegisterValidation("cca3", func(fl validator.FieldLevel) bool {
			return cca3Pattern.MatchString(fl.Field().String())
		})

		// region_type: continent | subregion | economic_zone.
		_ = validate.RegisterValidation("region_type", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "continent", "subregion", "economic_zone":
				return true
			}
			return false
		})
	})
	return validate
}

// ValidateStruct validates v and returns nil on success or a
// *RequestValidationError describing every failed field.
func ValidateStruct(v interface{}) *RequestValidationError {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &RequestValidationError{errors: []ValidationError{{
			field:   "",
			tag:     "",
			message: err.Error(),
		}}}
	}

	ve := &RequestValidationError{}
	for _, fe := range fieldErrors {
		ve.errors = append(ve.errors, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			message: messageFor(fe),
		})
	}
	return ve
}

// messageFor builds a readable message for one field error.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "cca3":
		return fmt.Sprintf("%s must be a 3-letter uppercase country code", fe.Field())
	case "region_type":
		return fmt.Sprintf("%s must be one of: continent, subregion, economic_zone", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
