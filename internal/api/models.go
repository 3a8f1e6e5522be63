package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/service"
)

// Common request/response structures

// StartSessionRequest defines the payload for opening a session.
type StartSessionRequest struct {
	World string `json:"world" validate:"required,max=64"`
	Level int    `json:"level" validate:"gte=0"`
}

// FlipRequest defines the payload for clicking a slot.
type FlipRequest struct {
	// Slot is a pointer so a missing slot is told apart from slot 0.
	Slot *int `json:"slot" validate:"required,gte=0"`
}

// GenerateWorldRequest defines the payload for building a world from text.
//
// Vocabulary text holds one "word = meaning" pair per line. Phrase text holds
// one "prompt => token token ..." line per phrase and "! word word ..." lines
// for distractors.
type GenerateWorldRequest struct {
	Name         string      `json:"name" validate:"required,max=64"`
	Mode         domain.Mode `json:"mode" validate:"required,oneof=vocab phrase"`
	Text         string      `json:"text" validate:"required"`
	ItemsPerGame int         `json:"items_per_game" validate:"gte=0"`
}

// CardResponse is a visible card. Pair ids and reveal positions are never
// sent, so the client cannot solve the board from the payload.
type CardResponse struct {
	Kind  game.CardKind `json:"kind"`
	Text  string        `json:"text"`
	Image string        `json:"image,omitempty"`
}

// SlotResponse is one board position.
type SlotResponse struct {
	Slot    int           `json:"slot"`
	FaceUp  bool          `json:"face_up"`
	Cleared bool          `json:"cleared"`
	Card    *CardResponse `json:"card,omitempty"`
}

// SessionResponse is the render state of a session.
type SessionResponse struct {
	ID          uuid.UUID      `json:"id"`
	World       string         `json:"world"`
	Mode        domain.Mode    `json:"mode"`
	Level       int            `json:"level"`
	LevelCount  int            `json:"level_count"`
	Phrase      int            `json:"phrase"`
	PhraseCount int            `json:"phrase_count"`
	Phase       game.Phase     `json:"phase,omitempty"`
	Slots       []SlotResponse `json:"slots"`
	Progress    game.Progress  `json:"progress"`
	Prompt      *game.Prompt   `json:"prompt,omitempty"`
	Won         bool           `json:"won"`
	Summary     *game.Summary  `json:"summary,omitempty"`
	NoContent   bool           `json:"no_content"`
}

// FlipResponse reports the judgment of a click and the board after it.
type FlipResponse struct {
	Outcome    game.Outcome    `json:"outcome"`
	Card       CardResponse    `json:"card"`
	UnseenPair bool            `json:"unseen_pair,omitempty"`
	Won        bool            `json:"won"`
	Session    SessionResponse `json:"session"`
}

// WorldResponse describes a playable world.
type WorldResponse struct {
	Name         string      `json:"name"`
	Mode         domain.Mode `json:"mode"`
	Items        int         `json:"items"`
	ItemsPerGame int         `json:"items_per_game"`
	Levels       int         `json:"levels"`
}

// WorldListResponse wraps the world catalogue.
type WorldListResponse struct {
	Worlds []WorldResponse `json:"worlds"`
}

// EventResponse is one recorded session event.
type EventResponse struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventListResponse wraps a session's event history.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

func cardToResponse(c game.Card) CardResponse {
	return CardResponse{Kind: c.Kind, Text: c.Text, Image: c.Image}
}

// viewToResponse converts a game.View to a SessionResponse
func viewToResponse(v game.View) SessionResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{Slot: int(s.Key), FaceUp: s.FaceUp, Cleared: s.Cleared}
		if s.Card != nil {
			card := cardToResponse(*s.Card)
			slots[i].Card = &card
		}
	}
	return SessionResponse{
		ID:          v.ID,
		World:       v.World,
		Mode:        v.Mode,
		Level:       v.Level,
		LevelCount:  v.LevelCount,
		Phrase:      v.Phrase,
		PhraseCount: v.PhraseCount,
		Phase:       v.Phase,
		Slots:       slots,
		Progress:    v.Progress,
		Prompt:      v.Prompt,
		Won:         v.Won,
		Summary:     v.Summary,
		NoContent:   v.NoContent,
	}
}

func flipToResponse(out service.FlipOutcome) FlipResponse {
	return FlipResponse{
		Outcome:    out.Result.Outcome,
		Card:       cardToResponse(out.Result.Card),
		UnseenPair: out.Result.UnseenPair,
		Won:        out.Result.Won,
		Session:    viewToResponse(out.View),
	}
}

func worldToResponse(w service.WorldInfo) WorldResponse {
	return WorldResponse(w)
}

func eventsToResponse(list []*events.Event) EventListResponse {
	resp := EventListResponse{Events: make([]EventResponse, 0, len(list))}
	for _, e := range list {
		resp.Events = append(resp.Events, EventResponse{
			ID:        e.ID,
			Type:      e.Type,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp
}
