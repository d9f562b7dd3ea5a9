package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails or is missing
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden is returned when an authenticated caller lacks permission
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// ErrConflict is returned when there's a conflict (e.g., idempotency, duplicate email)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails before any write is attempted
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}
