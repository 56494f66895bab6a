// Package apperr defines the two user-facing error kinds of the API:
// not-found (missing entity, 404) and business-rule violations (400).
// Anything else bubbling out of a handler is treated as a server fault.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError reports that an identifier did not resolve to an entity.
type NotFoundError struct {
	Entity string
	Field  string
	Value  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Entity, e.Field, e.Value)
}

// NotFound builds a NotFoundError carrying enough context for a precise message.
func NotFound(entity, field string, value any) error {
	return &NotFoundError{Entity: entity, Field: field, Value: value}
}

// BusinessError is a violated business rule: duplicate item/address,
// insufficient stock, empty cart, negative quantity, unavailable product.
type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

// Business builds a BusinessError with a human-readable message.
func Business(format string, args ...any) error {
	return &BusinessError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}
