package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/events"
)

// Event types emitted by a Session.
const (
	EventGameWon   = "game.won"
	EventNoContent = "game.no_content"
	EventAdvanced  = "game.advanced"
	EventRestarted = "game.restarted"
)

// DefaultItemsPerGame is the chunk size used when neither the world nor the
// options set one.
const DefaultItemsPerGame = 6

// SessionOptions configures a Session.
type SessionOptions struct {
	World *domain.World

	// ItemsPerGame is the chunk size used when the world does not set one.
	ItemsPerGame int

	// Level is the starting level index.
	Level int

	MismatchReveal time.Duration
	WrongReveal    time.Duration
	Preview        time.Duration

	Scheduler Scheduler
	Random    RandomSource
	Emitter   events.EventEmitter
	Logger    *slog.Logger
}

// UnitPayload identifies a level/phrase unit in event payloads.
type UnitPayload struct {
	World  string `json:"world"`
	Level  int    `json:"level"`
	Phrase int    `json:"phrase"`
}

// WonPayload is the payload of EventGameWon.
type WonPayload struct {
	UnitPayload
	Summary Summary `json:"summary"`
}

// View is a snapshot of a session for rendering.
type View struct {
	ID          uuid.UUID   `json:"id"`
	World       string      `json:"world"`
	Mode        domain.Mode `json:"mode"`
	Level       int         `json:"level"`
	LevelCount  int         `json:"level_count"`
	Phrase      int         `json:"phrase"`
	PhraseCount int         `json:"phrase_count"`
	Phase       Phase       `json:"phase,omitempty"`
	Slots       []SlotView  `json:"slots"`
	Progress    Progress    `json:"progress"`
	Prompt      *Prompt     `json:"prompt,omitempty"`
	Won         bool        `json:"won"`
	Summary     *Summary    `json:"summary,omitempty"`
	NoContent   bool        `json:"no_content"`
}

// Session is the host of one player's run through a world. It owns the level
// and phrase indices, builds a fresh game for every unit, and serializes
// clicks with timer callbacks. Every rebuild bumps a generation token; timer
// callbacks scheduled under an older token are dropped.
type Session struct {
	id uuid.UUID

	mu     sync.Mutex
	closed bool

	world        *domain.World
	itemsPerGame int
	level        int
	phrase       int
	phraseCount  int

	game       Game
	controller Controller
	generation uint64

	opts    SessionOptions
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewSession validates the world and builds the starting unit. A starting
// level without playable content is not an error: the session reports
// NoContent and emits EventNoContent.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if opts.World == nil {
		return nil, fmt.Errorf("%w: world is required", domain.ErrValidation)
	}
	if err := opts.World.Validate(); err != nil {
		return nil, err
	}
	if opts.Level < 0 {
		return nil, ErrInvalidLevel
	}

	itemsPerGame := ItemsPerGame(opts.World, opts.ItemsPerGame)
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler{}
	}
	if opts.Random == nil {
		opts.Random = DefaultRandom()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := uuid.New()
	s := &Session{
		id:           id,
		world:        opts.World,
		itemsPerGame: itemsPerGame,
		level:        opts.Level,
		opts:         opts,
		emitter:      opts.Emitter,
		logger: logger.With(
			"component", "game_session",
			"session_id", id,
			"world", opts.World.Name),
	}

	s.mu.Lock()
	pending := s.rebuild()
	s.mu.Unlock()

	s.emit(ctx, pending)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// pendingEvent is built under the lock and emitted after it is released so
// handlers may call back into the session.
type pendingEvent struct {
	eventType string
	payload   interface{}
}

// rebuild discards the current game and builds the unit at the current
// indices. Callers hold s.mu.
func (s *Session) rebuild() []pendingEvent {
	if s.game != nil {
		s.game.Close()
		s.game = nil
	}
	s.generation++
	s.controller.Reset()
	s.phraseCount = 0

	items := Level(s.world.Items, s.itemsPerGame, s.level)
	sched := &guardedScheduler{session: s, generation: s.generation}

	var (
		g       Game
		skipped []error
	)
	switch s.world.Mode {
	case domain.ModeVocab:
		var deck []Card
		deck, skipped = BuildVocabDeck(items, s.opts.Random)
		if len(deck) > 0 {
			vg, err := NewVocabGame(deck, VocabOptions{
				MismatchReveal: s.opts.MismatchReveal,
				Scheduler:      sched,
				Logger:         s.logger,
			})
			if err != nil {
				skipped = append(skipped, err)
			} else {
				g = vg
			}
		}
	case domain.ModePhrase:
		var phrases []*domain.PhraseItem
		phrases, skipped = PlayablePhrases(items)
		s.phraseCount = len(phrases)
		if s.phrase < len(phrases) {
			phrase := phrases[s.phrase]
			deck, err := BuildPhraseDeck(phrase, s.world.Distractors, s.opts.Random)
			if err == nil {
				var pg *PhraseGame
				pg, err = NewPhraseGame(phrase, deck, PhraseOptions{
					Preview:     s.opts.Preview,
					WrongReveal: s.opts.WrongReveal,
					Scheduler:   sched,
					Logger:      s.logger,
				})
				if err == nil {
					g = pg
				}
			}
			if err != nil {
				skipped = append(skipped, err)
			}
		}
	}

	for _, err := range skipped {
		s.logger.Warn("skipped malformed pool item", "level", s.level, "error", err)
	}

	s.game = g
	if g == nil {
		s.logger.Warn("no playable content", "level", s.level, "phrase", s.phrase)
		return []pendingEvent{{eventType: EventNoContent, payload: s.unit()}}
	}
	s.logger.Info("unit built",
		"level", s.level,
		"phrase", s.phrase,
		"slots", len(g.Slots()),
		"generation", s.generation)
	return nil
}

func (s *Session) unit() UnitPayload {
	return UnitPayload{World: s.world.Name, Level: s.level, Phrase: s.phrase}
}

func (s *Session) emit(ctx context.Context, pending []pendingEvent) {
	if s.emitter == nil {
		return
	}
	for _, p := range pending {
		event, err := events.NewEvent(p.eventType, s.id, p.payload)
		if err != nil {
			s.logger.Error("failed to build event", "event_type", p.eventType, "error", err)
			continue
		}
		if err := s.emitter.EmitEvent(ctx, event); err != nil {
			s.logger.Error("failed to emit event", "event_type", p.eventType, "error", err)
		}
	}
}

// Flip forwards a click to the current game and emits EventGameWon when the
// click wins the unit.
func (s *Session) Flip(ctx context.Context, key SlotKey) (FlipResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return FlipResult{}, ErrSessionClosed
	}

	var (
		res FlipResult
		err error
	)
	switch g := s.game.(type) {
	case nil:
		err = ErrNoPlayableContent
	case *VocabGame:
		res, err = g.Flip(key)
	case *PhraseGame:
		res, err = g.Flip(key)
	default:
		err = fmt.Errorf("%w: %T", ErrWrongMode, g)
	}

	var pending []pendingEvent
	if err == nil && s.controller.Observe(s.game) {
		summary, _ := s.controller.Summary()
		pending = append(pending, pendingEvent{
			eventType: EventGameWon,
			payload:   WonPayload{UnitPayload: s.unit(), Summary: summary},
		})
	}
	if err != nil {
		s.logger.Debug("click rejected", "slot", key, "error", err)
	}
	s.mu.Unlock()

	s.emit(ctx, pending)
	return res, err
}

// Confirm starts the preview of a phrase unit.
func (s *Session) Confirm(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.game == nil {
		return ErrNoPlayableContent
	}
	pg, ok := s.game.(*PhraseGame)
	if !ok {
		return ErrWrongMode
	}
	return pg.Confirm()
}

// Restart rebuilds the current unit with a fresh shuffle.
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	pending := []pendingEvent{{eventType: EventRestarted, payload: s.unit()}}
	pending = append(pending, s.rebuild()...)
	s.mu.Unlock()

	s.emit(ctx, pending)
	return nil
}

// Advance moves past a won unit: to the next phrase of the level while any
// remain, otherwise to the next level. A unit without playable content can
// always be advanced past.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.game != nil && !s.controller.Won() {
		s.mu.Unlock()
		return ErrNotWon
	}

	switch s.controller.NextStep(s.world.Mode, s.phrase, s.phraseCount) {
	case StepNextPhrase:
		s.phrase++
	default:
		s.level++
		s.phrase = 0
	}
	s.logger.Info("advancing", "level", s.level, "phrase", s.phrase)

	pending := []pendingEvent{{eventType: EventAdvanced, payload: s.unit()}}
	pending = append(pending, s.rebuild()...)
	s.mu.Unlock()

	s.emit(ctx, pending)
	return nil
}

// View returns a render snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:          s.id,
		World:       s.world.Name,
		Mode:        s.world.Mode,
		Level:       s.level,
		LevelCount:  LevelCount(s.world.Items, s.itemsPerGame),
		Phrase:      s.phrase,
		PhraseCount: s.phraseCount,
		Slots:       []SlotView{},
		NoContent:   s.game == nil,
	}
	if s.game == nil {
		return v
	}
	v.Slots = s.game.Slots()
	v.Progress = s.game.Progress()
	v.Won = s.controller.Won()
	if summary, ok := s.controller.Summary(); ok {
		v.Summary = &summary
	}
	if pg, ok := s.game.(*PhraseGame); ok {
		v.Phase = pg.Phase()
		prompt := pg.Prompt()
		v.Prompt = &prompt
	}
	return v
}

// Close tears the session down and cancels pending timers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.generation++
	if s.game != nil {
		s.game.Close()
	}
	s.logger.Debug("session closed")
}

// guardedScheduler runs callbacks under the session lock and only while the
// session is still on the generation the callback was scheduled for.
type guardedScheduler struct {
	session    *Session
	generation uint64
}

func (g *guardedScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s := g.session
	return s.opts.Scheduler.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.generation != g.generation {
			s.logger.Debug("stale timer dropped",
				"scheduled_generation", g.generation,
				"current_generation", s.generation)
			return
		}
		fn()
	})
}
