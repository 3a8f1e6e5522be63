package game

import "errors"

// Click rejections. A rejected click never changes game state.
var (
	// ErrUnknownSlot is returned when a slot key is outside the board.
	ErrUnknownSlot = errors.New("unknown slot")

	// ErrSlotCleared is returned when a matched or cleared slot is clicked.
	ErrSlotCleared = errors.New("slot already cleared")

	// ErrSlotFaceUp is returned when the slot flipped first in this move is clicked again.
	ErrSlotFaceUp = errors.New("slot already face up")

	// ErrMovePending is returned while a mismatched pair is still being shown.
	ErrMovePending = errors.New("previous move still being resolved")

	// ErrRevealPending is returned while a wrong phrase card is still being shown.
	ErrRevealPending = errors.New("wrong card still being shown")

	// ErrNotPlaying is returned when a phrase board is clicked during intro or preview.
	ErrNotPlaying = errors.New("game is not in play phase")

	// ErrNotInIntro is returned when a phrase game is confirmed outside its intro.
	ErrNotInIntro = errors.New("game is not in intro phase")

	// ErrGameWon is returned for clicks after the game has been won.
	ErrGameWon = errors.New("game already won")

	// ErrGameClosed is returned for any input after a game has been torn down.
	ErrGameClosed = errors.New("game closed")
)

// Session errors.
var (
	// ErrNoPlayableContent is returned when the current level or phrase has
	// nothing playable after malformed items were skipped.
	ErrNoPlayableContent = errors.New("no playable content")

	// ErrNotWon is returned when advancing before the current unit is won.
	ErrNotWon = errors.New("current unit not won")

	// ErrWrongMode is returned when an operation does not apply to the session's mode.
	ErrWrongMode = errors.New("operation not supported in this mode")

	// ErrSessionClosed is returned for any call after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrInvalidLevel is returned when a session is created with a negative level.
	ErrInvalidLevel = errors.New("level index must be >= 0")
)

// ErrUrnExhausted signals a slot that could not be filled because the urn was
// empty. It cannot happen while slot and deck counts match.
var ErrUrnExhausted = errors.New("urn exhausted with unassigned slot")
