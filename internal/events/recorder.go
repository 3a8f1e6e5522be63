package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// DefaultRecorderLimit bounds how many events a Recorder keeps per session.
const DefaultRecorderLimit = 64

// Recorder is an EventHandler that keeps the most recent events of every
// session so a host can replay them, e.g. to show the won summary after a
// reconnect.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events map[uuid.UUID][]*Event
}

// NewRecorder creates a Recorder keeping at most limit events per session.
// A non-positive limit uses DefaultRecorderLimit.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultRecorderLimit
	}
	return &Recorder{
		limit:  limit,
		events: make(map[uuid.UUID][]*Event),
	}
}

// HandleEvent implements EventHandler.
func (r *Recorder) HandleEvent(_ context.Context, event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.events[event.SessionID], event)
	if len(list) > r.limit {
		list = list[len(list)-r.limit:]
	}
	r.events[event.SessionID] = list
	return nil
}

// Events returns a copy of the recorded events of a session, oldest first.
func (r *Recorder) Events(sessionID uuid.UUID) []*Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Event(nil), r.events[sessionID]...)
}

// Forget drops everything recorded for a session.
func (r *Recorder) Forget(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, sessionID)
}
