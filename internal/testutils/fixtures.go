package testutils

import (
	"fmt"

	"github.com/phrazzld/scry-match/internal/domain"
)

// VocabPairs returns n valid vocabulary pairs with ids "p0".."p{n-1}".
func VocabPairs(n int) []domain.PoolItem {
	items := make([]domain.PoolItem, n)
	for i := range items {
		items[i] = &domain.VocabPair{
			ID:            fmt.Sprintf("p%d", i),
			PrimaryText:   fmt.Sprintf("word-%d", i),
			SecondaryText: fmt.Sprintf("meaning-%d", i),
			Image:         fmt.Sprintf("images/%d.png", i),
		}
	}
	return items
}

// Phrase returns a phrase item whose tokens are words, in order, with ids
// "<id>-t0".."<id>-t{n-1}".
func Phrase(id string, words ...string) *domain.PhraseItem {
	tokens := make([]domain.OrderedToken, len(words))
	for i, w := range words {
		tokens[i] = domain.OrderedToken{ID: fmt.Sprintf("%s-t%d", id, i), Text: w}
	}
	return &domain.PhraseItem{
		ID:         id,
		PromptText: "translate: " + id,
		Tokens:     tokens,
	}
}

// Distractors returns n valid distractor tokens with ids "d0".."d{n-1}".
func Distractors(n int) []domain.OrderedToken {
	out := make([]domain.OrderedToken, n)
	for i := range out {
		out[i] = domain.OrderedToken{
			ID:       fmt.Sprintf("d%d", i),
			Text:     fmt.Sprintf("decoy-%d", i),
			Category: "noun",
		}
	}
	return out
}

// VocabWorld wraps items in a vocabulary world.
func VocabWorld(name string, itemsPerGame int, items ...domain.PoolItem) *domain.World {
	return &domain.World{
		Name:         name,
		Mode:         domain.ModeVocab,
		ItemsPerGame: itemsPerGame,
		Items:        items,
	}
}

// PhraseWorld wraps phrases and distractors in a phrase world.
func PhraseWorld(name string, itemsPerGame int, distractors []domain.OrderedToken, phrases ...*domain.PhraseItem) *domain.World {
	items := make([]domain.PoolItem, len(phrases))
	for i, p := range phrases {
		items[i] = p
	}
	return &domain.World{
		Name:         name,
		Mode:         domain.ModePhrase,
		ItemsPerGame: itemsPerGame,
		Items:        items,
		Distractors:  distractors,
	}
}
