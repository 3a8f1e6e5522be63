package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/generation"
	"github.com/phrazzld/scry-match/internal/service"
)

// WorldHandler handles world catalogue and generation requests
type WorldHandler struct {
	games  service.GameService
	logger *slog.Logger
}

// NewWorldHandler creates a new WorldHandler
func NewWorldHandler(games service.GameService, logger *slog.Logger) *WorldHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorldHandler{
		games:  games,
		logger: logger.With("component", "world_handler"),
	}
}

// ListWorlds handles GET /api/worlds requests
func (h *WorldHandler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	infos, err := h.games.ListWorlds(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list worlds")
		return
	}

	resp := WorldListResponse{Worlds: make([]WorldResponse, 0, len(infos))}
	for _, info := range infos {
		resp.Worlds = append(resp.Worlds, worldToResponse(info))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GenerateWorld handles POST /api/worlds requests
func (h *WorldHandler) GenerateWorld(w http.ResponseWriter, r *http.Request) {
	var req GenerateWorldRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", "invalid_request", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), "invalid_request", err)
		return
	}

	info, err := h.games.GenerateWorld(r.Context(), generation.Request{
		Name:         req.Name,
		Mode:         req.Mode,
		Text:         req.Text,
		ItemsPerGame: req.ItemsPerGame,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.logger.Info("world generated via API",
		"world", info.Name,
		"mode", info.Mode,
		"items", info.Items,
		"trace_id", shared.GetTraceID(r.Context()))
	shared.RespondWithJSON(w, r, http.StatusCreated, worldToResponse(info))
}
