// Package generation turns free-form source text into playable pool items.
// The Generator interface is the boundary between the game and whatever
// produces content, so an LLM-backed implementation can replace the built-in
// TextGenerator without touching the engine.
package generation
