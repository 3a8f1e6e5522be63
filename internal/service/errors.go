package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by GameService. Game and pool errors pass through
// unwrapped so callers can test them with errors.Is as well.
//
// The API layer maps these to HTTP status codes:
//   - ErrSessionNotFound: 404 Not Found
//   - ErrTooManySessions: 429 Too Many Requests
//   - ErrGenerationDisabled: 501 Not Implemented
//   - ErrWorldExists: 409 Conflict
var (
	// ErrSessionNotFound indicates the session id is unknown or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions indicates the session store is full.
	ErrTooManySessions = errors.New("too many open sessions")

	// ErrGenerationDisabled indicates no generator is configured.
	ErrGenerationDisabled = errors.New("world generation is disabled")

	// ErrWorldExists indicates a generated world would be shadowed by a
	// world another source already serves under the same name.
	ErrWorldExists = errors.New("world already exists")
)

// GameServiceError wraps unexpected failures with the operation that hit them.
type GameServiceError struct {
	// Operation is the operation that failed (e.g., "start_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GameServiceError.
func (e *GameServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("game service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("game service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GameServiceError) Unwrap() error {
	return e.Err
}

// NewGameServiceError wraps err for operation. Nil stays nil and the
// service's own sentinels are returned as they are.
func NewGameServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrSessionNotFound, ErrTooManySessions, ErrGenerationDisabled, ErrWorldExists} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return &GameServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
