package game

// CardKind tells how a card takes part in the game.
type CardKind string

const (
	// KindWord shows the primary text of a vocabulary pair.
	KindWord CardKind = "word"
	// KindImage shows the secondary text (and image) of a vocabulary pair.
	KindImage CardKind = "image"
	// KindToken is one token of the phrase being rebuilt.
	KindToken CardKind = "token"
	// KindDistractor looks like a token but never belongs to the phrase.
	KindDistractor CardKind = "distractor"
)

// noIndex marks cards that have no reveal position.
const noIndex = -1

// Card is a value produced fresh for every level. Two vocabulary cards match
// when they share a PairID; a token card is correct when its SourceIndex is
// the phrase cursor.
type Card struct {
	Key         string   `json:"key"`
	PairID      string   `json:"pair_id"`
	Kind        CardKind `json:"kind"`
	SourceIndex int      `json:"source_index"`
	Text        string   `json:"text"`
	Image       string   `json:"image,omitempty"`
}

// Index returns the reveal position of a token card.
func (c Card) Index() (int, bool) {
	if c.Kind != KindToken || c.SourceIndex < 0 {
		return 0, false
	}
	return c.SourceIndex, true
}
