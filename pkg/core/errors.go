package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned when a document identifier is unknown.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when a required argument is missing or empty.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable wraps storage failures (I/O, corrupt index, closed database).
	ErrUnavailable = errors.New("storage unavailable")
)
