package game

import "github.com/phrazzld/scry-match/internal/domain"

// SlotView is the render state of one slot. Card is set only while the card
// is visible, so a face-down slot never leaks its content.
type SlotView struct {
	Key     SlotKey `json:"key"`
	FaceUp  bool    `json:"face_up"`
	Cleared bool    `json:"cleared"`
	Card    *Card   `json:"card,omitempty"`
}

// Progress is the aggregate counter shown next to the board.
type Progress struct {
	MovesMade    int `json:"moves_made"`
	ClearedCount int `json:"cleared_count"`
	TotalCount   int `json:"total_count"`
}

// Summary is the payload of the won signal.
type Summary struct {
	Mode  domain.Mode `json:"mode"`
	Moves int         `json:"moves"`

	// MatchedPairs lists matched pair ids in the order they were matched.
	MatchedPairs []string `json:"matched_pairs,omitempty"`

	// ClearedTokens lists unlocked token texts in phrase order.
	ClearedTokens []string `json:"cleared_tokens,omitempty"`
}

// Game is the surface shared by both resolution engines.
type Game interface {
	Mode() domain.Mode
	Slots() []SlotView
	Progress() Progress
	Won() bool
	Summary() Summary

	// Close cancels pending timers; every later input is rejected.
	Close()
}

// Outcome is the judgment of a single click.
type Outcome string

const (
	// OutcomePending means the click was the first flip of a vocabulary move.
	OutcomePending Outcome = "pending"
	// OutcomeMatch means a genuine vocabulary match cleared a pair.
	OutcomeMatch Outcome = "match"
	// OutcomeMismatch means the two cards are shown briefly and hidden again.
	OutcomeMismatch Outcome = "mismatch"
	// OutcomeCorrect means a phrase token was revealed in order.
	OutcomeCorrect Outcome = "correct"
	// OutcomeWrong means a distractor or an out-of-order token was clicked.
	OutcomeWrong Outcome = "wrong"
)

// FlipResult reports an accepted click.
type FlipResult struct {
	Outcome Outcome `json:"outcome"`
	Card    Card    `json:"card"`

	// FellBack is true when the card was placed by the deadlock fallback.
	FellBack bool `json:"fell_back,omitempty"`

	// UnseenPair is true when a vocabulary move turned up a pair that did not
	// count because one of its slots was flipped for the first time.
	UnseenPair bool `json:"unseen_pair,omitempty"`

	Won bool `json:"won"`
}
