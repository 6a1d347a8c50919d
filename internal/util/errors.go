package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrDuplicateName indicates a unique-name constraint violation
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or empty user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
