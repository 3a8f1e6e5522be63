package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/generation"
	"github.com/phrazzld/scry-match/internal/pool"
	"github.com/phrazzld/scry-match/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedReason string
	}{
		{"nil error", nil, http.StatusInternalServerError, "internal_error"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"session not found", service.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
		{"session closed", game.ErrSessionClosed, http.StatusNotFound, "session_not_found"},
		{"wrapped world not found", fmt.Errorf("lookup: %w", pool.ErrWorldNotFound), http.StatusNotFound, "world_not_found"},
		{"unknown slot", game.ErrUnknownSlot, http.StatusBadRequest, "unknown_slot"},
		{"invalid level", game.ErrInvalidLevel, http.StatusBadRequest, "invalid_level"},
		{"validation", fmt.Errorf("%w: bad name", domain.ErrValidation), http.StatusBadRequest, "invalid_request"},
		{"invalid generation request", generation.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
		{"slot cleared", game.ErrSlotCleared, http.StatusConflict, "slot_cleared"},
		{"slot face up", game.ErrSlotFaceUp, http.StatusConflict, "slot_face_up"},
		{"move pending", game.ErrMovePending, http.StatusConflict, "move_pending"},
		{"reveal pending", game.ErrRevealPending, http.StatusConflict, "reveal_pending"},
		{"not playing", game.ErrNotPlaying, http.StatusConflict, "not_playing"},
		{"not in intro", game.ErrNotInIntro, http.StatusConflict, "not_in_intro"},
		{"game won", game.ErrGameWon, http.StatusConflict, "game_won"},
		{"not won", game.ErrNotWon, http.StatusConflict, "not_won"},
		{"wrong mode", game.ErrWrongMode, http.StatusConflict, "wrong_mode"},
		{"no content", game.ErrNoPlayableContent, http.StatusConflict, "no_content"},
		{"generation failed", fmt.Errorf("generate: %w", generation.ErrGenerationFailed), http.StatusUnprocessableEntity, "generation_failed"},
		{"too many sessions", service.ErrTooManySessions, http.StatusTooManyRequests, "too_many_sessions"},
		{"generation disabled", service.ErrGenerationDisabled, http.StatusNotImplemented, "generation_disabled"},
		{"world exists", fmt.Errorf("%w: %q", service.ErrWorldExists, "animals"), http.StatusConflict, "world_exists"},
		{"too many generated worlds", fmt.Errorf("%w: limit is %d", pool.ErrTooManyWorlds, 100), http.StatusTooManyRequests, "too_many_worlds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedReason, errorReason(tc.err))
		})
	}
}

func TestGetSafeErrorMessageHidesDetails(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("open /srv/worlds/animals.yaml: permission denied")))
	assert.Equal(t, "World not found",
		GetSafeErrorMessage(fmt.Errorf("%w: %q", pool.ErrWorldNotFound, "/secret/path")))
	assert.Equal(t, "Slot already cleared", GetSafeErrorMessage(game.ErrSlotCleared))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()
	v := validator.New()

	err := v.Struct(StartSessionRequest{})
	assert.Equal(t, "Invalid World: required field", SanitizeValidationError(err))

	err = v.Struct(StartSessionRequest{World: "animals", Level: -1})
	assert.Equal(t, "Invalid Level: too small", SanitizeValidationError(err))

	err = v.Struct(GenerateWorldRequest{Name: "x", Mode: "chess", Text: "a = b"})
	assert.Equal(t, "Invalid Mode: invalid value", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		message        string
		expectedStatus int
		expectedBody   shared.ErrorResponse
	}{
		{
			name:           "mapped error",
			err:            game.ErrMovePending,
			expectedStatus: http.StatusConflict,
			expectedBody:   shared.ErrorResponse{Error: "Previous move still being shown", Reason: "move_pending"},
		},
		{
			name:           "custom message",
			err:            errors.New("disk on fire"),
			message:        "Failed to list worlds",
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   shared.ErrorResponse{Error: "Failed to list worlds", Reason: "internal_error"},
		},
		{
			name:           "validation error names the field",
			err:            fmt.Errorf("%w: %v", generation.ErrInvalidRequest, validator.New().Struct(GenerateWorldRequest{Mode: domain.ModeVocab, Text: "x"})),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   shared.ErrorResponse{Error: "Invalid Name: required field", Reason: "invalid_request"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/worlds", nil)
			w := httptest.NewRecorder()

			HandleAPIError(w, req, tc.err, tc.message)

			assert.Equal(t, tc.expectedStatus, w.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedBody.Error, body.Error)
			assert.Equal(t, tc.expectedBody.Reason, body.Reason)
		})
	}
}
