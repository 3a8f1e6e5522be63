package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/api"
	"github.com/phrazzld/scry-match/internal/config"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorldYAML = `
name: animals
mode: vocab
items_per_game: 2
items:
  - {id: dog, primary_text: perro, secondary_text: dog}
  - {id: cat, primary_text: gato, secondary_text: cat}
  - {id: bird, primary_text: pájaro, secondary_text: bird}
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "animals.yaml"), []byte(testWorldYAML), 0o600))
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error", ShutdownTimeout: time.Second},
		Game: config.GameConfig{
			ItemsPerGame:       6,
			MismatchReveal:     time.Second,
			WrongReveal:        time.Second,
			PreviewDuration:    time.Second,
			MaxSessions:        10,
			SessionIdleTimeout: time.Minute,
		},
		Content: config.ContentConfig{WorldsDir: dir, MaxGeneratedWorlds: 10},
		Events:  config.EventsConfig{HistoryLimit: 16},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"https://play.example.com"}, MaxAge: 60},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), testConfig(t), logger)
	require.NoError(t, err)
	app.start(context.Background())
	t.Cleanup(app.cleanup)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).setupRouter()

	tests := []struct {
		name        string
		origin      string
		wantAllowed bool
	}{
		{"configured origin", "https://play.example.com", true},
		{"other origin", "https://evil.example.com", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if tc.wantAllowed {
				assert.Equal(t, tc.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRouterServesFileWorlds(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/worlds")
	require.NoError(t, err)
	var worlds api.WorldListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&worlds))
	_ = resp.Body.Close()
	require.Len(t, worlds.Worlds, 1)
	assert.Equal(t, api.WorldResponse{Name: "animals", Mode: "vocab", Items: 3, ItemsPerGame: 2, Levels: 2}, worlds.Worlds[0])

	resp, err = http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(`{"world":"animals","level":1}`))
	require.NoError(t, err)
	var session api.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, session.Level)
	assert.Len(t, session.Slots, 2, "the last level holds the leftover pair")
}

func TestGeneratedWorldsAreReachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/worlds", "application/json",
		strings.NewReader(`{"name":"colours","mode":"vocab","text":"rojo = red\nazul = blue"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(`{"world":"colours"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestEventLoggerAcceptsEvents(t *testing.T) {
	t.Parallel()
	h := newEventLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ev, err := events.NewEvent(game.EventGameWon, uuid.New(), game.UnitPayload{World: "animals"})
	require.NoError(t, err)
	assert.NoError(t, h.HandleEvent(context.Background(), ev))
}

func TestCleanupClosesSessions(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), testConfig(t), logger)
	require.NoError(t, err)
	app.start(context.Background())

	_, err = app.gameService.StartSession(context.Background(), "animals", 0)
	require.NoError(t, err)
	require.Equal(t, 1, app.gameService.Count())

	app.cleanup()
	assert.Equal(t, 0, app.gameService.Count())
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.config.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

// initializeApp swaps the default slog logger, so these tests do not run in
// parallel.
func TestInitializeApp(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	t.Run("explicit config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9191\n  log_level: error\n"), 0o600))

		cfg, l, err := initializeApp(path)
		require.NoError(t, err)
		assert.NotNil(t, l)
		assert.Equal(t, 9191, cfg.Server.Port)
		assert.Equal(t, 6, cfg.Game.ItemsPerGame)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, _, err := initializeApp(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
