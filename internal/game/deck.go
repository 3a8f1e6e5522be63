package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-match/internal/domain"
)

// BuildVocabDeck emits a word card and an image card for every valid
// vocabulary pair in items, then shuffles them. Items that are not vocabulary
// pairs, fail validation, or repeat an earlier id are skipped and reported.
func BuildVocabDeck(items []domain.PoolItem, rng RandomSource) ([]Card, []error) {
	var skipped []error
	seen := make(map[string]bool, len(items))
	deck := make([]Card, 0, 2*len(items))

	for i, item := range items {
		pair, ok := item.(*domain.VocabPair)
		if !ok {
			skipped = append(skipped, fmt.Errorf("%w: item %d is %T, want vocabulary pair",
				domain.ErrValidation, i, item))
			continue
		}
		if err := pair.Validate(); err != nil {
			skipped = append(skipped, err)
			continue
		}
		if seen[pair.ID] {
			skipped = append(skipped, fmt.Errorf("%w: duplicate pair id %q", domain.ErrValidation, pair.ID))
			continue
		}
		seen[pair.ID] = true

		deck = append(deck,
			Card{
				Key:         uuid.NewString(),
				PairID:      pair.ID,
				Kind:        KindWord,
				SourceIndex: noIndex,
				Text:        pair.PrimaryText,
			},
			Card{
				Key:         uuid.NewString(),
				PairID:      pair.ID,
				Kind:        KindImage,
				SourceIndex: noIndex,
				Text:        pair.SecondaryText,
				Image:       pair.Image,
			},
		)
	}

	shuffle(rng, deck)
	return deck, skipped
}

// PlayablePhrases returns the valid phrase items of a level in order. Phrase
// mode plays them one at a time; everything else is skipped and reported.
func PlayablePhrases(items []domain.PoolItem) ([]*domain.PhraseItem, []error) {
	var skipped []error
	phrases := make([]*domain.PhraseItem, 0, len(items))
	for i, item := range items {
		phrase, ok := item.(*domain.PhraseItem)
		if !ok {
			skipped = append(skipped, fmt.Errorf("%w: item %d is %T, want phrase item",
				domain.ErrValidation, i, item))
			continue
		}
		if err := phrase.Validate(); err != nil {
			skipped = append(skipped, err)
			continue
		}
		phrases = append(phrases, phrase)
	}
	return phrases, skipped
}

// BuildPhraseDeck emits one token card per phrase token, tagged with its
// position, plus min(len(distractors), len(tokens)) distractor cards sampled
// without replacement. Every call samples and shuffles afresh. Malformed
// distractors are dropped; a short pool just yields fewer distractors.
func BuildPhraseDeck(phrase *domain.PhraseItem, distractors []domain.OrderedToken, rng RandomSource) ([]Card, error) {
	if err := phrase.Validate(); err != nil {
		return nil, err
	}

	usable := make([]domain.OrderedToken, 0, len(distractors))
	for _, d := range distractors {
		if domain.ValidateDistractor(d) == nil {
			usable = append(usable, d)
		}
	}
	picked := sample(rng, usable, len(phrase.Tokens))

	deck := make([]Card, 0, len(phrase.Tokens)+len(picked))
	for i, tok := range phrase.Tokens {
		deck = append(deck, Card{
			Key:         uuid.NewString(),
			PairID:      tok.ID,
			Kind:        KindToken,
			SourceIndex: i,
			Text:        tok.Text,
		})
	}
	for _, d := range picked {
		deck = append(deck, Card{
			Key:         uuid.NewString(),
			PairID:      "distractor:" + d.ID,
			Kind:        KindDistractor,
			SourceIndex: noIndex,
			Text:        d.Text,
		})
	}

	shuffle(rng, deck)
	return deck, nil
}
