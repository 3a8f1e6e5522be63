package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is a captured log record flattened into a map. The record level is
// stored under "severity" so it cannot collide with a "level" attribute.
type LogEntry map[string]interface{}

// Message returns the record's message.
func (e LogEntry) Message() string {
	msg, _ := e["message"].(string)
	return msg
}

// CaptureHandler is a memory-backed slog.Handler. Attributes added with
// Logger.With are kept on every entry.
type CaptureHandler struct {
	store *captureStore
	attrs []slog.Attr
}

type captureStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewCaptureHandler creates an empty handler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{store: &captureStore{}}
}

// NewCaptureLogger returns a logger writing into a new CaptureHandler.
func NewCaptureLogger() (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler()
	return slog.New(h), h
}

// Enabled implements slog.Handler.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		"severity": r.Level.String(),
		"message":  r.Message,
	}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	h.store.entries = append(h.store.entries, entry)
	h.store.mu.Unlock()
	return nil
}

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{store: h.store, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Entries returns a copy of everything captured so far.
func (h *CaptureHandler) Entries() []LogEntry {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]LogEntry, len(h.store.entries))
	copy(out, h.store.entries)
	return out
}

// Find returns the entries whose message equals msg.
func (h *CaptureHandler) Find(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range h.Entries() {
		if e.Message() == msg {
			out = append(out, e)
		}
	}
	return out
}
