package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type wonPayload struct {
		Moves int      `json:"moves"`
		Pairs []string `json:"pairs"`
	}

	sessionID := uuid.New()
	payload := wonPayload{Moves: 7, Pairs: []string{"perro", "gato"}}

	event, err := NewEvent("game.won", sessionID, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "game.won", event.Type)
	assert.Equal(t, sessionID, event.SessionID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded wonPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &raw))
	assert.Equal(t, float64(7), raw["moves"])
}

func TestNewEventUnencodablePayload(t *testing.T) {
	_, err := NewEvent("game.won", uuid.New(), make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	mock.Mock
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	args := h.Called(ctx, event)
	return args.Error(0)
}

func TestHandlerFunc(t *testing.T) {
	var got *Event
	h := HandlerFunc(func(_ context.Context, e *Event) error {
		got = e
		return errors.New("boom")
	})

	event, err := NewEvent("game.restarted", uuid.New(), nil)
	require.NoError(t, err)

	err = h.HandleEvent(context.Background(), event)
	assert.EqualError(t, err, "boom")
	assert.Same(t, event, got)
}
