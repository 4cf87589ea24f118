// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package validation checks request structs with go-playground/validator
// and reports failures under the JSON names clients sent, with nested
// fields as dotted paths ("filter.min_rating", "filter.genres[0]").
//
//	type GemsRequest struct {
//	    TopK  int      `json:"top_k" validate:"gte=0"`
//	    Alpha *float64 `json:"alpha,omitempty" validate:"omitempty,gte=0,lte=1"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    details := verr.ToAPIError().Details
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is the API code for a failed struct check.
const ErrorCode = "VALIDATION_ERROR"

// ValidationError is one failed rule on one field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field is the dotted JSON path of the offending field.
func (e *ValidationError) Field() string { return e.field }

// Tag is the rule that failed, e.g. "lte".
func (e *ValidationError) Tag() string { return e.tag }

// Param is the rule argument, e.g. "1" for lte=1.
func (e *ValidationError) Param() string { return e.param }

// Value is the rejected value.
func (e *ValidationError) Value() any { return e.value }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed rule of one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the failures in struct field order.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	return strings.Join(ve.messages(), "; ")
}

func (ve *RequestValidationError) messages() []string {
	out := make([]string, len(ve.errors))
	for i := range ve.errors {
		out[i] = ve.errors[i].message
	}
	return out
}

// APIError carries code, message and details for the HTTP error envelope.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError shapes the failures for a response body. A single failure
// is flattened into field/tag/value; several are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *APIError {
	apiErr := &APIError{Code: ErrorCode, Message: "Validation failed"}
	switch len(ve.errors) {
	case 0:
	case 1:
		e := ve.errors[0]
		apiErr.Message = e.message
		apiErr.Details = map[string]any{"field": e.field, "tag": e.tag, "value": e.value}
	default:
		fields := make([]map[string]any, 0, len(ve.errors))
		for _, e := range ve.errors {
			fields = append(fields, map[string]any{"field": e.field, "tag": e.tag, "message": e.message})
		}
		apiErr.Message = ve.Error()
		apiErr.Details = map[string]any{"fields": fields}
	}
	return apiErr
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator. Struct metadata is cached
// inside it, so one instance serves the whole process.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			default:
				return name
			}
		})
	})
	return validate
}

// ValidateStruct returns nil when s passes every rule.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{{
			field: "unknown", tag: "unknown", message: err.Error(),
		}}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := jsonPath(fe)
		out = append(out, ValidationError{
			field:   path,
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: describe(fe, path),
		})
	}
	return &RequestValidationError{errors: out}
}

// jsonPath drops the root struct name from the namespace.
func jsonPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

var comparisons = map[string]string{
	"gte":   "greater than or equal to",
	"lte":   "less than or equal to",
	"gt":    "greater than",
	"lt":    "less than",
	"oneof": "one of:",
}

func describe(fe validator.FieldError, path string) string {
	tag, param := fe.Tag(), fe.Param()
	if tag == "required" {
		return path + " is required"
	}
	if phrase, ok := comparisons[tag]; ok {
		return fmt.Sprintf("%s must be %s %s", path, phrase, param)
	}

	// min and max count characters or items, not magnitude, for sized kinds.
	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", path, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", path, param, unit)
	}
	return fmt.Sprintf("%s failed %s validation", path, tag)
}
