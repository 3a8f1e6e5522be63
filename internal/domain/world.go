package domain

import "fmt"

// Mode selects which game a world is played with.
type Mode string

const (
	// ModeVocab plays pairwise word-to-meaning matching.
	ModeVocab Mode = "vocab"
	// ModePhrase plays ordered token reveal.
	ModePhrase Mode = "phrase"
)

// Valid reports whether m is a known play mode.
func (m Mode) Valid() bool {
	return m == ModeVocab || m == ModePhrase
}

// World is a named pool of playable items handed to the engine by a content
// source. Items keep their authored order; chunk boundaries depend on it.
type World struct {
	Name string
	Mode Mode

	// ItemsPerGame overrides the configured chunk size when > 0.
	ItemsPerGame int

	Items []PoolItem

	// Distractors are only used in phrase mode.
	Distractors []OrderedToken
}

// Validate checks the world header. Individual items are not validated here:
// malformed items are skipped by the deck builder instead of failing the world.
func (w *World) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("%w: world name cannot be empty", ErrValidation)
	}
	if !w.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, w.Mode)
	}
	if w.ItemsPerGame < 0 {
		return fmt.Errorf("%w: items per game must be >= 0", ErrValidation)
	}
	return nil
}
