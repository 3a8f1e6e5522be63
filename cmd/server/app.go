package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-match/internal/config"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/generation"
	"github.com/phrazzld/scry-match/internal/pool"
	"github.com/phrazzld/scry-match/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Content sources
	files     *pool.FileSource
	generated *pool.GeneratedSource

	// Event system
	eventEmitter *events.InMemoryEventEmitter
	recorder     *events.Recorder

	gameService *service.GameServiceImpl

	// cancel stops the background goroutines started by Run.
	cancel context.CancelFunc
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(_ context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.files = pool.NewFileSource(cfg.Content.WorldsDir, logger)
	app.generated = pool.NewGeneratedSource(generation.NewTextGenerator(logger), cfg.Content.MaxGeneratedWorlds, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.recorder = events.NewRecorder(cfg.Events.HistoryLimit)
	app.eventEmitter.RegisterHandler(app.recorder)
	app.eventEmitter.RegisterHandler(newEventLogger(logger))

	var err error
	app.gameService, err = service.NewGameService(service.GameServiceOptions{
		// Files win over generated worlds of the same name.
		Source:    pool.Chain{app.files, app.generated},
		Generator: app.generated,
		Emitter:   app.eventEmitter,
		Recorder:  app.recorder,
		Engine: service.EngineOptions{
			ItemsPerGame:   cfg.Game.ItemsPerGame,
			MismatchReveal: cfg.Game.MismatchReveal,
			WrongReveal:    cfg.Game.WrongReveal,
			Preview:        cfg.Game.PreviewDuration,
		},
		MaxSessions: cfg.Game.MaxSessions,
		IdleTimeout: cfg.Game.SessionIdleTimeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// start launches the background workers: the world directory watcher and the
// idle session sweeper. A watcher that cannot start is logged and skipped;
// cached worlds then only refresh on restart.
func (app *application) start(ctx context.Context) {
	ctx, app.cancel = context.WithCancel(ctx)

	if err := app.files.Watch(ctx); err != nil {
		app.logger.Warn("world file watching disabled", "error", err)
	}
	go app.gameService.RunSweeper(ctx, 0)
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	app.start(ctx)

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cancel != nil {
		app.cancel()
	}
	if app.gameService != nil {
		app.gameService.Shutdown()
	}
	app.logger.Info("Application shutdown completed")
}

// eventLogger logs session transitions at debug level.
type eventLogger struct {
	logger *slog.Logger
}

func newEventLogger(logger *slog.Logger) *eventLogger {
	return &eventLogger{logger: logger.With("component", "event_logger")}
}

// HandleEvent implements events.EventHandler.
func (h *eventLogger) HandleEvent(ctx context.Context, event *events.Event) error {
	h.logger.DebugContext(ctx, "session event",
		"event_type", event.Type,
		"event_id", event.ID,
		"session_id", event.SessionID)
	return nil
}
