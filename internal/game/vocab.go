package game

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-match/internal/domain"
)

// VocabOptions configures a VocabGame.
type VocabOptions struct {
	// MismatchReveal is how long a failed pair stays face up.
	MismatchReveal time.Duration
	Scheduler      Scheduler
	Logger         *slog.Logger
}

// vocabState is the move state machine: idle, one slot flipped, a failed
// pair being revealed, or won.
type vocabState interface{ isVocabState() }

type vocabIdle struct{}

type vocabOneFlipped struct {
	first SlotKey
	// firstSeen records whether first had been flipped in an earlier move.
	firstSeen bool
}

type vocabRevealing struct {
	a, b  SlotKey
	token uint64
}

type vocabWon struct{}

func (vocabIdle) isVocabState()       {}
func (vocabOneFlipped) isVocabState() {}
func (vocabRevealing) isVocabState()  {}
func (vocabWon) isVocabState()        {}

// VocabGame resolves two-card moves. A pair only counts when both of its
// slots had been flipped in an earlier move, so matches come from memory and
// not from luck. Levels with a single pair waive that rule.
type VocabGame struct {
	board     *Board
	pairCount int

	seen    map[SlotKey]bool
	matched map[string]bool
	order   []string
	moves   int

	state        vocabState
	revealToken  uint64
	cancelReveal func()
	closed       bool

	opts   VocabOptions
	logger *slog.Logger
}

// NewVocabGame lays deck out on a fresh board. The deck must hold two cards
// per pair; an empty deck is rejected with ErrNoPlayableContent.
func NewVocabGame(deck []Card, opts VocabOptions) (*VocabGame, error) {
	pairs := make(map[string]int)
	for _, c := range deck {
		pairs[c.PairID]++
	}
	if len(pairs) == 0 {
		return nil, ErrNoPlayableContent
	}
	for id, n := range pairs {
		if n != 2 {
			return nil, fmt.Errorf("%w: pair %q has %d cards", domain.ErrValidation, id, n)
		}
	}

	if opts.MismatchReveal <= 0 {
		opts.MismatchReveal = DefaultMismatchReveal
	}
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &VocabGame{
		board:     NewBoard(deck),
		pairCount: len(pairs),
		seen:      make(map[SlotKey]bool, len(deck)),
		matched:   make(map[string]bool, len(pairs)),
		state:     vocabIdle{},
		opts:      opts,
		logger:    logger.With("component", "vocab_game"),
	}, nil
}

// Mode implements Game.
func (g *VocabGame) Mode() domain.Mode { return domain.ModeVocab }

// PairCount returns the number of distinct pairs in the level.
func (g *VocabGame) PairCount() int { return g.pairCount }

// Board exposes the slot/urn layout for inspection.
func (g *VocabGame) Board() *Board { return g.board }

// Flip handles a click on key.
func (g *VocabGame) Flip(key SlotKey) (FlipResult, error) {
	if g.closed {
		return FlipResult{}, ErrGameClosed
	}
	if !g.board.Has(key) {
		return FlipResult{}, ErrUnknownSlot
	}

	switch st := g.state.(type) {
	case vocabWon:
		return FlipResult{}, ErrGameWon
	case vocabRevealing:
		g.logger.Debug("click rejected while mismatch is shown", "slot", key)
		return FlipResult{}, ErrMovePending
	case vocabIdle:
		return g.flipFirst(key)
	case vocabOneFlipped:
		return g.flipSecond(st, key)
	default:
		panic(fmt.Sprintf("unknown vocab state %T", st))
	}
}

func (g *VocabGame) flipFirst(key SlotKey) (FlipResult, error) {
	if g.isCleared(key) {
		return FlipResult{}, ErrSlotCleared
	}
	res := g.board.DrawFor(key, "")
	if !res.OK {
		return FlipResult{}, fmt.Errorf("%w: slot %d", ErrUrnExhausted, key)
	}

	wasSeen := g.seen[key]
	g.seen[key] = true
	g.state = vocabOneFlipped{first: key, firstSeen: wasSeen}

	card, _ := g.board.Card(key)
	return FlipResult{Outcome: OutcomePending, Card: card}, nil
}

func (g *VocabGame) flipSecond(st vocabOneFlipped, key SlotKey) (FlipResult, error) {
	if key == st.first {
		return FlipResult{}, ErrSlotFaceUp
	}
	if g.isCleared(key) {
		return FlipResult{}, ErrSlotCleared
	}

	first, _ := g.board.Card(st.first)
	res := g.board.DrawFor(key, first.PairID)
	if !res.OK {
		return FlipResult{}, fmt.Errorf("%w: slot %d", ErrUrnExhausted, key)
	}
	if res.FellBack {
		g.logger.Debug("no alternative card left, placed forbidden pair",
			"slot", key,
			"pair_id", first.PairID)
	}

	wasSeen := g.seen[key]
	g.seen[key] = true
	g.moves++

	second, _ := g.board.Card(key)
	isMatch := first.PairID == second.PairID
	genuine := isMatch && (g.pairCount == 1 || (st.firstSeen && wasSeen))

	result := FlipResult{Card: second, FellBack: res.FellBack}
	if genuine {
		g.matched[first.PairID] = true
		g.order = append(g.order, first.PairID)
		result.Outcome = OutcomeMatch
		if len(g.matched) == g.pairCount {
			g.state = vocabWon{}
			result.Won = true
			g.logger.Info("vocabulary level won", "moves", g.moves, "pairs", g.pairCount)
		} else {
			g.state = vocabIdle{}
		}
		return result, nil
	}

	result.Outcome = OutcomeMismatch
	result.UnseenPair = isMatch
	g.revealToken++
	token := g.revealToken
	g.state = vocabRevealing{a: st.first, b: key, token: token}
	g.cancelReveal = g.opts.Scheduler.AfterFunc(g.opts.MismatchReveal, func() {
		g.hideReveal(token)
	})
	return result, nil
}

// HideMismatch turns a revealed failed pair face down again. It is what the
// reveal timer calls; a host may call it to skip the wait.
func (g *VocabGame) HideMismatch() {
	if st, ok := g.state.(vocabRevealing); ok {
		g.hideReveal(st.token)
	}
}

func (g *VocabGame) hideReveal(token uint64) {
	st, ok := g.state.(vocabRevealing)
	if g.closed || !ok || st.token != token {
		g.logger.Debug("stale reveal timer ignored", "token", token)
		return
	}
	if g.cancelReveal != nil {
		g.cancelReveal()
		g.cancelReveal = nil
	}
	g.state = vocabIdle{}
}

func (g *VocabGame) isCleared(key SlotKey) bool {
	card, ok := g.board.Card(key)
	return ok && g.matched[card.PairID]
}

// Slots implements Game.
func (g *VocabGame) Slots() []SlotView {
	faceUp := map[SlotKey]bool{}
	switch st := g.state.(type) {
	case vocabOneFlipped:
		faceUp[st.first] = true
	case vocabRevealing:
		faceUp[st.a] = true
		faceUp[st.b] = true
	}

	views := make([]SlotView, g.board.Len())
	for i := range views {
		key := SlotKey(i)
		v := SlotView{Key: key, FaceUp: faceUp[key], Cleared: g.isCleared(key)}
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
func (g *VocabGame) Progress() Progress {
	return Progress{
		MovesMade:    g.moves,
		ClearedCount: len(g.matched),
		TotalCount:   g.pairCount,
	}
}

// Won implements Game.
func (g *VocabGame) Won() bool {
	_, ok := g.state.(vocabWon)
	return ok
}

// Summary implements Game.
func (g *VocabGame) Summary() Summary {
	return Summary{
		Mode:         domain.ModeVocab,
		Moves:        g.moves,
		MatchedPairs: append([]string(nil), g.order...),
	}
}

// Close implements Game.
func (g *VocabGame) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.cancelReveal != nil {
		g.cancelReveal()
		g.cancelReveal = nil
	}
}
