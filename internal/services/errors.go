package services

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a referenced id did not resolve. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a malformed or inconsistent input before any store
// mutation. Handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }

func invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }

// PolicyError rejects a schedule write that breaks the business-type slot
// policy. A distinct type so callers can tell "rejected by policy" from
// "accepted"; the write is never a silent no-op.
type PolicyError struct {
	BusinessType string
	MaxSlots     int
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("business type %q allows at most %d time slot(s)", e.BusinessType, e.MaxSlots)
}
