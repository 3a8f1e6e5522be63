// Package game implements the card-matching engine behind both play modes of
// the trainer: vocabulary pair matching and ordered phrase reconstruction.
//
// A pool is chunked into levels, a level is expanded into a deck, and the deck
// is laid out on a Board whose slots draw their cards lazily from a shuffled
// urn. VocabGame and PhraseGame judge each click against that board, and a
// Session ties a game instance to its world, level and phrase indices, its
// timers and the events it emits to the host.
//
// Nothing in this package is safe for concurrent use except Session, which
// serializes clicks and timer callbacks behind a single mutex.
package game
