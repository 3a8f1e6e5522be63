package game

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-match/internal/domain"
)

// Phase is the lifecycle stage of a phrase game.
type Phase string

const (
	// PhaseIntro hides the board behind the prompt until the player confirms.
	PhaseIntro Phase = "intro"
	// PhasePreview shows every card face up for a fixed memorization window.
	PhasePreview Phase = "preview"
	// PhasePlay accepts clicks.
	PhasePlay Phase = "play"
	// PhaseWon is terminal.
	PhaseWon Phase = "won"
)

// PhraseOptions configures a PhraseGame.
type PhraseOptions struct {
	// Preview is the memorization window; input cannot shorten it.
	Preview time.Duration
	// WrongReveal is how long a wrong card stays face up.
	WrongReveal time.Duration
	Scheduler   Scheduler
	Logger      *slog.Logger
}

type phraseState interface{ phase() Phase }

type phraseIntro struct{}

type phrasePreview struct{ token uint64 }

type phrasePlay struct{}

type phraseWrongReveal struct {
	slot  SlotKey
	token uint64
}

type phraseWon struct{}

func (phraseIntro) phase() Phase       { return PhaseIntro }
func (phrasePreview) phase() Phase     { return PhasePreview }
func (phrasePlay) phase() Phase        { return PhasePlay }
func (phraseWrongReveal) phase() Phase { return PhasePlay }
func (phraseWon) phase() Phase         { return PhaseWon }

// PromptToken is one position of the prompt line. Text is empty until the
// position is unlocked.
type PromptToken struct {
	Text     string `json:"text"`
	Unlocked bool   `json:"unlocked"`
}

// Prompt is the prompt area of a phrase game.
type Prompt struct {
	Text   string        `json:"text"`
	Tokens []PromptToken `json:"tokens"`
}

// PhraseGame resolves single-card clicks against a cursor: only the token
// whose position equals the cursor is correct.
type PhraseGame struct {
	board    *Board
	phrase   *domain.PhraseItem
	expected int
	moves    int
	cleared  map[SlotKey]bool

	state  phraseState
	token  uint64
	cancel func()
	closed bool

	opts   PhraseOptions
	logger *slog.Logger
}

// NewPhraseGame lays deck out for phrase. The game starts in its intro.
func NewPhraseGame(phrase *domain.PhraseItem, deck []Card, opts PhraseOptions) (*PhraseGame, error) {
	if phrase == nil || len(phrase.Tokens) == 0 {
		return nil, ErrNoPlayableContent
	}
	tokens := 0
	for _, c := range deck {
		if c.Kind == KindToken {
			tokens++
		}
	}
	if tokens != len(phrase.Tokens) {
		return nil, fmt.Errorf("%w: deck has %d token cards for %d tokens",
			domain.ErrValidation, tokens, len(phrase.Tokens))
	}

	if opts.Preview <= 0 {
		opts.Preview = DefaultPreview
	}
	if opts.WrongReveal <= 0 {
		opts.WrongReveal = DefaultWrongReveal
	}
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &PhraseGame{
		board:   NewBoard(deck),
		phrase:  phrase,
		cleared: make(map[SlotKey]bool, len(phrase.Tokens)),
		state:   phraseIntro{},
		opts:    opts,
		logger:  logger.With("component", "phrase_game", "phrase_id", phrase.ID),
	}, nil
}

// Mode implements Game.
func (g *PhraseGame) Mode() domain.Mode { return domain.ModePhrase }

// Phase returns the current lifecycle stage.
func (g *PhraseGame) Phase() Phase { return g.state.phase() }

// Expected returns the cursor: the position of the next token to reveal.
func (g *PhraseGame) Expected() int { return g.expected }

// Board exposes the slot/urn layout for inspection.
func (g *PhraseGame) Board() *Board { return g.board }

// Confirm leaves the intro. Every slot is filled before the preview so the
// memorization window shows the layout that will be played.
func (g *PhraseGame) Confirm() error {
	if g.closed {
		return ErrGameClosed
	}
	if _, ok := g.state.(phraseIntro); !ok {
		return ErrNotInIntro
	}

	for i := 0; i < g.board.Len(); i++ {
		if !g.board.Draw(SlotKey(i), "") {
			return fmt.Errorf("%w: slot %d", ErrUrnExhausted, i)
		}
	}

	g.token++
	token := g.token
	g.state = phrasePreview{token: token}
	g.cancel = g.opts.Scheduler.AfterFunc(g.opts.Preview, func() {
		g.endPreview(token)
	})
	g.logger.Debug("preview started", "duration", g.opts.Preview)
	return nil
}

func (g *PhraseGame) endPreview(token uint64) {
	st, ok := g.state.(phrasePreview)
	if g.closed || !ok || st.token != token {
		g.logger.Debug("stale preview timer ignored", "token", token)
		return
	}
	g.cancel = nil
	g.state = phrasePlay{}
}

// Flip handles a click on key during play.
func (g *PhraseGame) Flip(key SlotKey) (FlipResult, error) {
	if g.closed {
		return FlipResult{}, ErrGameClosed
	}
	if !g.board.Has(key) {
		return FlipResult{}, ErrUnknownSlot
	}

	switch st := g.state.(type) {
	case phraseIntro, phrasePreview:
		return FlipResult{}, ErrNotPlaying
	case phraseWrongReveal:
		g.logger.Debug("click rejected while wrong card is shown", "slot", key)
		return FlipResult{}, ErrRevealPending
	case phraseWon:
		return FlipResult{}, ErrGameWon
	case phrasePlay:
		return g.flip(key)
	default:
		panic(fmt.Sprintf("unknown phrase state %T", st))
	}
}

func (g *PhraseGame) flip(key SlotKey) (FlipResult, error) {
	if g.cleared[key] {
		return FlipResult{}, ErrSlotCleared
	}
	res := g.board.DrawFor(key, "")
	if !res.OK {
		return FlipResult{}, fmt.Errorf("%w: slot %d", ErrUrnExhausted, key)
	}
	g.moves++

	card, _ := g.board.Card(key)
	if idx, ok := card.Index(); ok && idx == g.expected {
		g.cleared[key] = true
		g.expected++
		result := FlipResult{Outcome: OutcomeCorrect, Card: card}
		if g.expected == len(g.phrase.Tokens) {
			g.state = phraseWon{}
			result.Won = true
			g.logger.Info("phrase won", "moves", g.moves, "tokens", len(g.phrase.Tokens))
		}
		return result, nil
	}

	g.token++
	token := g.token
	g.state = phraseWrongReveal{slot: key, token: token}
	g.cancel = g.opts.Scheduler.AfterFunc(g.opts.WrongReveal, func() {
		g.hideWrong(token)
	})
	return FlipResult{Outcome: OutcomeWrong, Card: card}, nil
}

// HideWrong turns a wrong card face down again. It is what the reveal timer
// calls; a host may call it to skip the wait.
func (g *PhraseGame) HideWrong() {
	if st, ok := g.state.(phraseWrongReveal); ok {
		g.hideWrong(st.token)
	}
}

func (g *PhraseGame) hideWrong(token uint64) {
	st, ok := g.state.(phraseWrongReveal)
	if g.closed || !ok || st.token != token {
		g.logger.Debug("stale reveal timer ignored", "token", token)
		return
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.state = phrasePlay{}
}

// Prompt returns the prompt line with tokens unlocked up to the cursor.
func (g *PhraseGame) Prompt() Prompt {
	tokens := make([]PromptToken, len(g.phrase.Tokens))
	for i, tok := range g.phrase.Tokens {
		if i < g.expected {
			tokens[i] = PromptToken{Text: tok.Text, Unlocked: true}
		}
	}
	return Prompt{Text: g.phrase.PromptText, Tokens: tokens}
}

// Slots implements Game.
func (g *PhraseGame) Slots() []SlotView {
	views := make([]SlotView, g.board.Len())
	for i := range views {
		key := SlotKey(i)
		v := SlotView{Key: key, Cleared: g.cleared[key]}
		switch st := g.state.(type) {
		case phrasePreview:
			v.FaceUp = true
		case phraseWrongReveal:
			v.FaceUp = st.slot == key
		}
		if v.FaceUp || v.Cleared {
			if card, ok := g.board.Card(key); ok {
				v.Card = &card
			}
		}
		views[i] = v
	}
	return views
}

// Progress implements Game.
func (g *PhraseGame) Progress() Progress {
	return Progress{
		MovesMade:    g.moves,
		ClearedCount: g.expected,
		TotalCount:   len(g.phrase.Tokens),
	}
}

// Won implements Game.
func (g *PhraseGame) Won() bool {
	_, ok := g.state.(phraseWon)
	return ok
}

// Summary implements Game.
func (g *PhraseGame) Summary() Summary {
	texts := make([]string, 0, g.expected)
	for _, tok := range g.phrase.Tokens[:g.expected] {
		texts = append(texts, tok.Text)
	}
	return Summary{
		Mode:          domain.ModePhrase,
		Moves:         g.moves,
		ClearedTokens: texts,
	}
}

// Close implements Game.
func (g *PhraseGame) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
