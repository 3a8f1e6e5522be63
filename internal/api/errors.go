package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/generation"
	"github.com/phrazzld/scry-match/internal/pool"
	"github.com/phrazzld/scry-match/internal/service"
)

// errorMapping ties a sentinel error to its HTTP status, the message shown to
// clients and a stable reason code.
type errorMapping struct {
	err     error
	status  int
	message string
	reason  string
}

// errorMappings is checked in order with errors.Is. Rejected clicks are
// conflicts with the current board state, not malformed requests.
var errorMappings = []errorMapping{
	// Not found errors
	{service.ErrSessionNotFound, http.StatusNotFound, "Session not found", "session_not_found"},
	{game.ErrSessionClosed, http.StatusNotFound, "Session not found", "session_not_found"},
	{game.ErrGameClosed, http.StatusNotFound, "Session not found", "session_not_found"},
	{pool.ErrWorldNotFound, http.StatusNotFound, "World not found", "world_not_found"},

	// Bad request errors
	{game.ErrUnknownSlot, http.StatusBadRequest, "Unknown slot", "unknown_slot"},
	{game.ErrInvalidLevel, http.StatusBadRequest, "Level must be zero or greater", "invalid_level"},
	{generation.ErrUnsupportedMode, http.StatusBadRequest, "Unsupported mode", "unsupported_mode"},
	{generation.ErrInvalidRequest, http.StatusBadRequest, "Invalid generation request", "invalid_request"},
	{domain.ErrInvalidMode, http.StatusBadRequest, "Invalid mode", "invalid_mode"},
	{domain.ErrValidation, http.StatusBadRequest, "Invalid request", "invalid_request"},

	// Conflict errors
	{game.ErrSlotCleared, http.StatusConflict, "Slot already cleared", "slot_cleared"},
	{game.ErrSlotFaceUp, http.StatusConflict, "Slot already face up", "slot_face_up"},
	{game.ErrMovePending, http.StatusConflict, "Previous move still being shown", "move_pending"},
	{game.ErrRevealPending, http.StatusConflict, "Wrong card still being shown", "reveal_pending"},
	{game.ErrNotPlaying, http.StatusConflict, "Game is not accepting clicks yet", "not_playing"},
	{game.ErrNotInIntro, http.StatusConflict, "Game has already been confirmed", "not_in_intro"},
	{game.ErrGameWon, http.StatusConflict, "Game already won", "game_won"},
	{game.ErrNotWon, http.StatusConflict, "Current game not won yet", "not_won"},
	{game.ErrWrongMode, http.StatusConflict, "Operation not available in this mode", "wrong_mode"},
	{game.ErrNoPlayableContent, http.StatusConflict, "No playable content at this level", "no_content"},
	{service.ErrWorldExists, http.StatusConflict, "World already exists", "world_exists"},

	// Unprocessable content
	{generation.ErrGenerationFailed, http.StatusUnprocessableEntity, "No playable items could be generated", "generation_failed"},
	{domain.ErrEmptyPool, http.StatusUnprocessableEntity, "World has no playable items", "empty_pool"},

	// Capacity and availability
	{service.ErrTooManySessions, http.StatusTooManyRequests, "Too many open sessions, try again later", "too_many_sessions"},
	{pool.ErrTooManyWorlds, http.StatusTooManyRequests, "Too many generated worlds", "too_many_worlds"},
	{service.ErrGenerationDisabled, http.StatusNotImplemented, "World generation is disabled", "generation_disabled"},
}

func lookupError(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m, true
		}
	}
	return errorMapping{}, false
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}
	if m, ok := lookupError(err); ok {
		return m.message
	}
	return "An unexpected error occurred"
}

// errorReason returns the stable reason code for err, or "internal_error".
func errorReason(err error) string {
	if m, ok := lookupError(err); ok {
		return m.reason
	}
	return "internal_error"
}

// HandleAPIError writes the error response for err. A non-empty message
// replaces the mapped one; validation errors get their field named.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
		if status == http.StatusBadRequest {
			if detail := SanitizeValidationError(err); detail != "Validation error" {
				message = detail
			}
		}
	}
	shared.RespondWithErrorAndLog(w, r, status, message, errorReason(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'startSessionRequest.World' Error:Field validation for 'World' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "gt":
		return "too small"
	case "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
