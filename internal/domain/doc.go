// Package domain contains the playable content of the trainer: vocabulary
// pairs, phrase items with their ordered tokens, and the worlds that group
// them into pools. These types are immutable inputs to the game engine and
// carry no game state of their own.
package domain
