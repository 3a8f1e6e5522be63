package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when no playable item could be produced
	ErrGenerationFailed = errors.New("failed to generate items from text")

	// ErrInvalidRequest is returned when a generation request is incomplete
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrUnsupportedMode is returned for a mode the generator cannot produce
	ErrUnsupportedMode = errors.New("unsupported generation mode")
)
