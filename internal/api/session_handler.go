package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/service"
)

// SessionHandler handles game session HTTP requests
type SessionHandler struct {
	games  service.GameService
	logger *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(games service.GameService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		games:  games,
		logger: logger.With("component", "session_handler"),
	}
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil {
		return uuid.Nil, domain.ErrValidation
	}
	return id, nil
}

// sessionID reads the {id} path parameter. It writes a 404 and returns false
// when the parameter is not a UUID, since no session can have that id.
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.logger.Debug("malformed session id", "value", chi.URLParam(r, "id"))
		HandleAPIError(w, r, service.ErrSessionNotFound, "")
		return uuid.Nil, false
	}
	return id, true
}

// StartSession handles POST /api/sessions requests
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", "invalid_request", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), "invalid_request", err)
		return
	}

	view, err := h.games.StartSession(r.Context(), req.World, req.Level)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Location", "/api/sessions/"+view.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, viewToResponse(view))
}

// GetSession handles GET /api/sessions/{id} requests
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.games.GetSession)
}

// Flip handles POST /api/sessions/{id}/flips requests
func (h *SessionHandler) Flip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req FlipRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", "invalid_request", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), "invalid_request", err)
		return
	}

	out, err := h.games.Flip(r.Context(), id, game.SlotKey(*req.Slot))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, flipToResponse(out))
}

// Confirm handles POST /api/sessions/{id}/confirm requests
func (h *SessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.games.Confirm)
}

// Restart handles POST /api/sessions/{id}/restart requests
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.games.Restart)
}

// Advance handles POST /api/sessions/{id}/advance requests
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.games.Advance)
}

// EndSession handles DELETE /api/sessions/{id} requests
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.games.EndSession(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEvents handles GET /api/sessions/{id}/events requests
func (h *SessionHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	list, err := h.games.SessionEvents(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, eventsToResponse(list))
}

func (h *SessionHandler) respondWithView(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, uuid.UUID) (game.View, error),
) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	view, err := op(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, viewToResponse(view))
}
