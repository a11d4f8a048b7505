package service

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParent is returned when a child or invoice references a
	// parent that does not exist.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrInvalidChild is returned when an attendance references a child
	// that does not exist.
	ErrInvalidChild = errors.New("invalid child")

	// ErrHasDependents is returned when deleting a parent that still has
	// children or invoices attached.
	ErrHasDependents = errors.New("has dependents")
)
