package game

// SlotKey identifies a fixed board position.
type SlotKey int

// Board separates the fixed slots a player sees from the urn of cards not yet
// placed. A slot receives its card the first time it is drawn for and keeps it
// for the rest of the level.
type Board struct {
	slots []*Card
	urn   []Card

	fallbacks int
}

// DrawResult describes a single draw.
type DrawResult struct {
	// OK is false only when the slot was unassigned and the urn was empty.
	OK bool
	// Assigned is true when this draw placed a new card.
	Assigned bool
	// FellBack is true when the only cards left would complete the forbidden
	// pair and one of them was placed anyway.
	FellBack bool
}

// NewBoard creates one unassigned slot per card and loads the urn with the
// deck in the order given. The deck is copied.
func NewBoard(deck []Card) *Board {
	urn := make([]Card, len(deck))
	copy(urn, deck)
	return &Board{
		slots: make([]*Card, len(deck)),
		urn:   urn,
	}
}

// Len returns the number of slots.
func (b *Board) Len() int { return len(b.slots) }

// Has reports whether key is a slot of this board.
func (b *Board) Has(key SlotKey) bool {
	return key >= 0 && int(key) < len(b.slots)
}

// Card returns the card assigned to key, if any.
func (b *Board) Card(key SlotKey) (Card, bool) {
	if !b.Has(key) || b.slots[key] == nil {
		return Card{}, false
	}
	return *b.slots[key], true
}

// UrnLen returns how many cards are still unplaced.
func (b *Board) UrnLen() int { return len(b.urn) }

// Urn returns a copy of the unplaced cards in draw order.
func (b *Board) Urn() []Card {
	out := make([]Card, len(b.urn))
	copy(out, b.urn)
	return out
}

// Fallbacks returns how many draws had to ignore the forbidden pair.
func (b *Board) Fallbacks() int { return b.fallbacks }

// Draw assigns a card to key if it has none. See DrawFor.
func (b *Board) Draw(key SlotKey, forbiddenPairID string) bool {
	return b.DrawFor(key, forbiddenPairID).OK
}

// DrawFor assigns a card to key if it has none, preferring the first urn card
// whose pair id differs from forbiddenPairID. An empty forbiddenPairID places
// no constraint. If every remaining card carries the forbidden pair id, the
// first urn card is placed regardless so the board can never deadlock.
func (b *Board) DrawFor(key SlotKey, forbiddenPairID string) DrawResult {
	if !b.Has(key) {
		return DrawResult{}
	}
	if b.slots[key] != nil {
		return DrawResult{OK: true}
	}

	idx, fellBack := pickFromUrn(b.urn, forbiddenPairID)
	if idx < 0 {
		return DrawResult{}
	}

	card := b.urn[idx]
	b.urn = append(b.urn[:idx], b.urn[idx+1:]...)
	b.slots[key] = &card
	if fellBack {
		b.fallbacks++
	}
	return DrawResult{OK: true, Assigned: true, FellBack: fellBack}
}

// pickFromUrn returns the index of the card to draw, or -1 for an empty urn.
func pickFromUrn(urn []Card, forbiddenPairID string) (int, bool) {
	if len(urn) == 0 {
		return -1, false
	}
	if forbiddenPairID == "" {
		return 0, false
	}
	for i, c := range urn {
		if c.PairID != forbiddenPairID {
			return i, false
		}
	}
	return 0, true
}
