// Package domain defines the core content entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a pool item or world fails validation.
	// It is wrapped with the validator's field-level message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidMode is returned when a world declares an unknown play mode.
	ErrInvalidMode = errors.New("invalid play mode")

	// ErrEmptyPool is returned when a world contains no playable items at all.
	ErrEmptyPool = errors.New("pool contains no playable items")
)
