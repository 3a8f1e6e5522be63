// Package testutils provides deterministic test doubles for the game engine
// and its hosts: a manually advanced scheduler, random sources that keep
// decks in build order, a log-capturing slog handler, and pool fixtures.
//
// Nothing here imports internal/game, so game's own tests can use it.
package testutils
