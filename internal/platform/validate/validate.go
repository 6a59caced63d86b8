// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Request payloads declare their shape rules as `validate` struct tags which
// [Struct] checks through go-playground/validator. Rules that depend on the
// domain (dates relative to today, cross-field checks) are expressed with the
// fluent [Validator] inside the service layer.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/i18n"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	// structValidator is safe for concurrent use and caches struct metadata.
	structValidator = newStructValidator()
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	list := strings.Join(allowed, ", ")
	v.errs = append(v.errs, apperr.FieldError{
		Field:   field,
		Message: fmt.Sprintf(i18n.MsgOneOf, list),
		Key:     i18n.MsgOneOf,
		Args:    []any{list},
	})
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("renewal_date", proposed.Before(today), "Invalid date - renewal in past")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// # Struct Tags

// Struct checks the `validate` tags of a request payload and merges any
// failures into v. Field names are reported by their JSON name.
func (v *Validator) Struct(payload any) *Validator {
	err := structValidator.Struct(payload)
	if err == nil {
		return v
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.add("_", "Invalid payload")
		return v
	}

	for _, fieldError := range fieldErrors {
		v.add(fieldError.Field(), tagMessage(fieldError))
	}
	return v
}

// Struct is a shortcut for validating a single payload.
func Struct(payload any) error {
	return (&Validator{}).Struct(payload).Err()
}

func newStructValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so clients can map errors onto their inputs.
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return instance
}

// tagMessage turns a failed tag into the same wording the fluent rules use.
func tagMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Maximum %s characters", fieldError.Param())
	case "min":
		if fieldError.Kind() == reflect.Slice {
			return fmt.Sprintf("Select at least %s", fieldError.Param())
		}
		return fmt.Sprintf("Minimum %s characters", fieldError.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fieldError.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fieldError.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fieldError.Param())
	default:
		return "Invalid value"
	}
}
