package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/events"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/generation"
	"github.com/phrazzld/scry-match/internal/pool"
)

// Default limits used when GameServiceOptions leaves them unset.
const (
	DefaultMaxSessions = 1000
	DefaultIdleTimeout = 30 * time.Minute
)

// WorldGenerator produces a playable world from a generation request and
// serves the worlds it produced. pool.GeneratedSource implements it.
type WorldGenerator interface {
	Generate(ctx context.Context, req generation.Request) (*domain.World, error)
	World(ctx context.Context, name string) (*domain.World, error)
}

// EngineOptions are the engine settings applied to every new session.
type EngineOptions struct {
	ItemsPerGame   int
	MismatchReveal time.Duration
	WrongReveal    time.Duration
	Preview        time.Duration

	// Scheduler drives reveal and preview timers. Nil uses the wall clock.
	Scheduler game.Scheduler

	// NewRandom returns the random source for one session. Sessions never
	// share a source. Nil seeds a fresh source per session.
	NewRandom func() game.RandomSource
}

// GameServiceOptions configures NewGameService.
type GameServiceOptions struct {
	Source    pool.Source
	Generator WorldGenerator
	Emitter   events.EventEmitter

	// Recorder, when set, backs SessionEvents. It should also be registered
	// with Emitter.
	Recorder *events.Recorder

	Engine      EngineOptions
	MaxSessions int
	IdleTimeout time.Duration

	// Now is the clock used for idle tracking.
	Now    func() time.Time
	Logger *slog.Logger
}

// WorldInfo describes a playable world.
type WorldInfo struct {
	Name         string      `json:"name"`
	Mode         domain.Mode `json:"mode"`
	Items        int         `json:"items"`
	ItemsPerGame int         `json:"items_per_game"`
	Levels       int         `json:"levels"`
}

// FlipOutcome is the judgment of a click together with the board after it.
type FlipOutcome struct {
	Result game.FlipResult `json:"result"`
	View   game.View       `json:"session"`
}

// GameService provides the operations a player performs on game sessions.
type GameService interface {
	// StartSession opens a session on the named world at the given level.
	StartSession(ctx context.Context, worldName string, level int) (game.View, error)

	// GetSession returns the current view of a session.
	GetSession(ctx context.Context, id uuid.UUID) (game.View, error)

	// Flip clicks a slot.
	Flip(ctx context.Context, id uuid.UUID, slot game.SlotKey) (FlipOutcome, error)

	// Confirm leaves the intro of a phrase unit.
	Confirm(ctx context.Context, id uuid.UUID) (game.View, error)

	// Restart replays the current unit with a fresh shuffle.
	Restart(ctx context.Context, id uuid.UUID) (game.View, error)

	// Advance moves past a won unit.
	Advance(ctx context.Context, id uuid.UUID) (game.View, error)

	// EndSession closes a session and forgets it.
	EndSession(ctx context.Context, id uuid.UUID) error

	// SessionEvents returns the recorded events of a session, oldest first.
	SessionEvents(ctx context.Context, id uuid.UUID) ([]*events.Event, error)

	// ListWorlds describes every world the source knows.
	ListWorlds(ctx context.Context) ([]WorldInfo, error)

	// GenerateWorld builds a world from text and makes it playable. A name
	// another source already serves fails with ErrWorldExists.
	GenerateWorld(ctx context.Context, req generation.Request) (WorldInfo, error)
}

type sessionEntry struct {
	session  *game.Session
	lastUsed time.Time
}

// GameServiceImpl implements GameService with an in-memory session store.
type GameServiceImpl struct {
	source    pool.Source
	generator WorldGenerator
	emitter   events.EventEmitter
	recorder  *events.Recorder

	engine      EngineOptions
	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time
	baseLogger  *slog.Logger
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry

	// generateMu keeps the name check and the generation of one world from
	// interleaving with another request for the same name.
	generateMu sync.Mutex
}

var _ GameService = (*GameServiceImpl)(nil)

// NewGameService creates a GameService.
// It returns an error if the world source is missing.
func NewGameService(opts GameServiceOptions) (*GameServiceImpl, error) {
	if opts.Source == nil {
		return nil, &GameServiceError{
			Operation: "create_service",
			Message:   "source cannot be nil",
		}
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GameServiceImpl{
		source:      opts.Source,
		generator:   opts.Generator,
		emitter:     opts.Emitter,
		recorder:    opts.Recorder,
		engine:      opts.Engine,
		maxSessions: opts.MaxSessions,
		idleTimeout: opts.IdleTimeout,
		now:         opts.Now,
		baseLogger:  logger,
		logger:      logger.With("component", "game_service"),
		sessions:    make(map[uuid.UUID]*sessionEntry),
	}, nil
}

// StartSession implements GameService.
func (s *GameServiceImpl) StartSession(ctx context.Context, worldName string, level int) (game.View, error) {
	if err := pool.ValidateName(worldName); err != nil {
		return game.View{}, err
	}
	if s.Count() >= s.maxSessions {
		s.logger.Warn("session store full", "max_sessions", s.maxSessions)
		return game.View{}, ErrTooManySessions
	}

	world, err := s.source.World(ctx, worldName)
	if err != nil {
		if errors.Is(err, pool.ErrWorldNotFound) {
			return game.View{}, err
		}
		s.logger.Error("failed to load world", "world", worldName, "error", err)
		return game.View{}, NewGameServiceError("start_session", "failed to load world", err)
	}

	var rng game.RandomSource
	if s.engine.NewRandom != nil {
		rng = s.engine.NewRandom()
	}
	sess, err := game.NewSession(ctx, game.SessionOptions{
		World:          world,
		ItemsPerGame:   s.engine.ItemsPerGame,
		Level:          level,
		MismatchReveal: s.engine.MismatchReveal,
		WrongReveal:    s.engine.WrongReveal,
		Preview:        s.engine.Preview,
		Scheduler:      s.engine.Scheduler,
		Random:         rng,
		Emitter:        s.emitter,
		Logger:         s.baseLogger,
	})
	if err != nil {
		return game.View{}, err
	}

	s.mu.Lock()
	if len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		s.discard(sess)
		return game.View{}, ErrTooManySessions
	}
	s.sessions[sess.ID()] = &sessionEntry{session: sess, lastUsed: s.now()}
	open := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("session started",
		"session_id", sess.ID(),
		"world", world.Name,
		"mode", world.Mode,
		"level", level,
		"open_sessions", open)
	return sess.View(), nil
}

// lookup returns the session for id and marks it as used.
func (s *GameServiceImpl) lookup(id uuid.UUID) (*game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastUsed = s.now()
	return entry.session, nil
}

// GetSession implements GameService.
func (s *GameServiceImpl) GetSession(_ context.Context, id uuid.UUID) (game.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return game.View{}, err
	}
	return sess.View(), nil
}

// Flip implements GameService.
func (s *GameServiceImpl) Flip(ctx context.Context, id uuid.UUID, slot game.SlotKey) (FlipOutcome, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return FlipOutcome{}, err
	}
	res, err := sess.Flip(ctx, slot)
	if err != nil {
		return FlipOutcome{}, s.sessionError(id, err)
	}
	return FlipOutcome{Result: res, View: sess.View()}, nil
}

// Confirm implements GameService.
func (s *GameServiceImpl) Confirm(ctx context.Context, id uuid.UUID) (game.View, error) {
	return s.apply(ctx, id, (*game.Session).Confirm)
}

// Restart implements GameService.
func (s *GameServiceImpl) Restart(ctx context.Context, id uuid.UUID) (game.View, error) {
	return s.apply(ctx, id, (*game.Session).Restart)
}

// Advance implements GameService.
func (s *GameServiceImpl) Advance(ctx context.Context, id uuid.UUID) (game.View, error) {
	return s.apply(ctx, id, (*game.Session).Advance)
}

func (s *GameServiceImpl) apply(
	ctx context.Context,
	id uuid.UUID,
	op func(*game.Session, context.Context) error,
) (game.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return game.View{}, err
	}
	if err := op(sess, ctx); err != nil {
		return game.View{}, s.sessionError(id, err)
	}
	return sess.View(), nil
}

// sessionError turns a session that was closed between lookup and use into
// ErrSessionNotFound.
func (s *GameServiceImpl) sessionError(id uuid.UUID, err error) error {
	if errors.Is(err, game.ErrSessionClosed) {
		s.logger.Debug("session closed during request", "session_id", id)
		return ErrSessionNotFound
	}
	return err
}

// EndSession implements GameService.
func (s *GameServiceImpl) EndSession(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.discard(entry.session)
	s.logger.Info("session ended", "session_id", id)
	return nil
}

func (s *GameServiceImpl) discard(sess *game.Session) {
	sess.Close()
	if s.recorder != nil {
		s.recorder.Forget(sess.ID())
	}
}

// SessionEvents implements GameService.
func (s *GameServiceImpl) SessionEvents(_ context.Context, id uuid.UUID) ([]*events.Event, error) {
	if _, err := s.lookup(id); err != nil {
		return nil, err
	}
	if s.recorder == nil {
		return []*events.Event{}, nil
	}
	return s.recorder.Events(id), nil
}

// ListWorlds implements GameService. Worlds that fail to load are left out
// and logged.
func (s *GameServiceImpl) ListWorlds(ctx context.Context) ([]WorldInfo, error) {
	names, err := s.source.Names(ctx)
	if err != nil {
		s.logger.Error("failed to list worlds", "error", err)
		return nil, NewGameServiceError("list_worlds", "failed to list worlds", err)
	}

	infos := make([]WorldInfo, 0, len(names))
	for _, name := range names {
		w, err := s.source.World(ctx, name)
		if err != nil {
			s.logger.Warn("skipping world that failed to load", "world", name, "error", err)
			continue
		}
		infos = append(infos, s.describe(w))
	}
	return infos, nil
}

// GenerateWorld implements GameService.
func (s *GameServiceImpl) GenerateWorld(ctx context.Context, req generation.Request) (WorldInfo, error) {
	if s.generator == nil {
		return WorldInfo{}, ErrGenerationDisabled
	}
	if err := pool.ValidateName(req.Name); err != nil {
		return WorldInfo{}, err
	}

	s.generateMu.Lock()
	defer s.generateMu.Unlock()

	if err := s.checkGeneratedName(ctx, req.Name); err != nil {
		return WorldInfo{}, err
	}
	w, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("world generation failed", "world", req.Name, "mode", req.Mode, "error", err)
		return WorldInfo{}, err
	}
	return s.describe(w), nil
}

// checkGeneratedName fails with ErrWorldExists when sessions started under
// name would not play a generated world, because another source serves it.
// Replacing a world the generator produced earlier is allowed.
func (s *GameServiceImpl) checkGeneratedName(ctx context.Context, name string) error {
	current, err := s.source.World(ctx, name)
	if errors.Is(err, pool.ErrWorldNotFound) {
		return nil
	}
	if err != nil {
		// A world file that fails to load still claims its name.
		s.logger.Warn("world name held by a world that failed to load", "world", name, "error", err)
		return fmt.Errorf("%w: %q", ErrWorldExists, name)
	}
	if owned, err := s.generator.World(ctx, name); err == nil && owned == current {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrWorldExists, name)
}

func (s *GameServiceImpl) describe(w *domain.World) WorldInfo {
	ipg := game.ItemsPerGame(w, s.engine.ItemsPerGame)
	return WorldInfo{
		Name:         w.Name,
		Mode:         w.Mode,
		Items:        len(w.Items),
		ItemsPerGame: ipg,
		Levels:       game.LevelCount(w.Items, ipg),
	}
}

// Count returns the number of open sessions.
func (s *GameServiceImpl) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes every session idle since before now minus the idle timeout
// and returns how many it closed.
func (s *GameServiceImpl) Sweep(now time.Time) int {
	cutoff := now.Add(-s.idleTimeout)

	s.mu.Lock()
	var expired []*game.Session
	for id, entry := range s.sessions {
		if entry.lastUsed.Before(cutoff) {
			expired = append(expired, entry.session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		s.discard(sess)
		s.logger.Info("idle session expired", "session_id", sess.ID())
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (s *GameServiceImpl) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.idleTimeout / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.logger.Debug("swept idle sessions", "closed", n)
			}
		}
	}
}

// Shutdown closes every open session.
func (s *GameServiceImpl) Shutdown() {
	s.mu.Lock()
	all := make([]*game.Session, 0, len(s.sessions))
	for id, entry := range s.sessions {
		all = append(all, entry.session)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range all {
		s.discard(sess)
	}
	s.logger.Info("game service shut down", "closed_sessions", len(all))
}

