package game

import (
	"testing"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idsOf(items []domain.PoolItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ItemID()
	}
	return ids
}

func pairIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.PairID
	}
	return ids
}

func TestBuildVocabDeck(t *testing.T) {
	t.Parallel()

	t.Run("two cards per pair in build order", func(t *testing.T) {
		deck, skipped := BuildVocabDeck(testutils.VocabPairs(3), testutils.NoShuffle{})
		require.Empty(t, skipped)
		require.Len(t, deck, 6)
		assert.Equal(t, []string{"p0", "p0", "p1", "p1", "p2", "p2"}, pairIDs(deck))

		keys := map[string]bool{}
		for i, c := range deck {
			assert.NotEmpty(t, c.Key)
			assert.False(t, keys[c.Key], "card keys must be unique")
			keys[c.Key] = true

			_, ok := c.Index()
			assert.False(t, ok)
			if i%2 == 0 {
				assert.Equal(t, KindWord, c.Kind)
				assert.Equal(t, "word-"+c.PairID[1:], c.Text)
			} else {
				assert.Equal(t, KindImage, c.Kind)
				assert.Equal(t, "meaning-"+c.PairID[1:], c.Text)
				assert.Equal(t, "images/"+c.PairID[1:]+".png", c.Image)
			}
		}
	})

	t.Run("skips malformed items", func(t *testing.T) {
		items := []domain.PoolItem{
			&domain.VocabPair{ID: "ok", PrimaryText: "perro", SecondaryText: "dog"},
			&domain.VocabPair{ID: "no-meaning", PrimaryText: "gato"},
			&domain.VocabPair{ID: "ok", PrimaryText: "perro", SecondaryText: "dog"},
			testutils.Phrase("ph", "hola"),
			(*domain.VocabPair)(nil),
		}

		deck, skipped := BuildVocabDeck(items, testutils.NoShuffle{})
		assert.Equal(t, []string{"ok", "ok"}, pairIDs(deck))
		require.Len(t, skipped, 4)
		for _, err := range skipped {
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("empty level", func(t *testing.T) {
		deck, skipped := BuildVocabDeck(nil, testutils.NoShuffle{})
		assert.Empty(t, deck)
		assert.Empty(t, skipped)
	})

	t.Run("seeded shuffles are reproducible", func(t *testing.T) {
		a, _ := BuildVocabDeck(testutils.VocabPairs(6), NewSeededRandom(7))
		b, _ := BuildVocabDeck(testutils.VocabPairs(6), NewSeededRandom(7))
		assert.Equal(t, pairIDs(a), pairIDs(b))
		assert.NotEqual(t, a[0].Key, b[0].Key, "every build mints fresh card keys")
	})
}

func TestPlayablePhrases(t *testing.T) {
	t.Parallel()
	items := []domain.PoolItem{
		testutils.Phrase("a", "yo", "soy"),
		&domain.PhraseItem{ID: "empty"},
		testutils.VocabPairs(1)[0],
		testutils.Phrase("b", "tu", "eres"),
	}

	phrases, skipped := PlayablePhrases(items)
	require.Len(t, phrases, 2)
	assert.Equal(t, "a", phrases[0].ID)
	assert.Equal(t, "b", phrases[1].ID)
	assert.Len(t, skipped, 2)
}

func TestBuildPhraseDeck(t *testing.T) {
	t.Parallel()

	t.Run("tokens then sampled distractors", func(t *testing.T) {
		phrase := testutils.Phrase("ph", "el", "gato", "come", "pescado", "hoy")
		deck, err := BuildPhraseDeck(phrase, testutils.Distractors(3), testutils.NoShuffle{})
		require.NoError(t, err)
		require.Len(t, deck, 8)

		for i := 0; i < 5; i++ {
			idx, ok := deck[i].Index()
			require.True(t, ok)
			assert.Equal(t, i, idx)
			assert.Equal(t, KindToken, deck[i].Kind)
			assert.Equal(t, phrase.Tokens[i].Text, deck[i].Text)
		}
		for i, c := range deck[5:] {
			_, ok := c.Index()
			assert.False(t, ok)
			assert.Equal(t, KindDistractor, c.Kind)
			assert.Equal(t, "distractor:"+testutils.Distractors(3)[i].ID, c.PairID)
		}
	})

	t.Run("distractor count capped by token count", func(t *testing.T) {
		deck, err := BuildPhraseDeck(testutils.Phrase("ph", "hola", "mundo"), testutils.Distractors(10), NewSeededRandom(1))
		require.NoError(t, err)
		assert.Len(t, deck, 4)

		distractors := 0
		seen := map[string]bool{}
		for _, c := range deck {
			if c.Kind == KindDistractor {
				distractors++
				assert.False(t, seen[c.PairID], "distractors are sampled without replacement")
				seen[c.PairID] = true
			}
		}
		assert.Equal(t, 2, distractors)
	})

	t.Run("short distractor pool", func(t *testing.T) {
		deck, err := BuildPhraseDeck(testutils.Phrase("ph", "a", "b", "c"), testutils.Distractors(1), testutils.NoShuffle{})
		require.NoError(t, err)
		assert.Len(t, deck, 4)
	})

	t.Run("malformed distractors dropped", func(t *testing.T) {
		distractors := []domain.OrderedToken{{ID: "blank"}, {ID: "d", Text: "perro"}}
		deck, err := BuildPhraseDeck(testutils.Phrase("ph", "a", "b"), distractors, testutils.NoShuffle{})
		require.NoError(t, err)
		require.Len(t, deck, 3)
		assert.Equal(t, "distractor:d", deck[2].PairID)
	})

	t.Run("invalid phrase", func(t *testing.T) {
		_, err := BuildPhraseDeck(&domain.PhraseItem{ID: "empty"}, nil, testutils.NoShuffle{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("fresh keys on every build", func(t *testing.T) {
		phrase := testutils.Phrase("ph", "a", "b")
		a, err := BuildPhraseDeck(phrase, nil, testutils.NoShuffle{})
		require.NoError(t, err)
		b, err := BuildPhraseDeck(phrase, nil, testutils.NoShuffle{})
		require.NoError(t, err)
		assert.NotEqual(t, a[0].Key, b[0].Key)
	})
}

func TestShuffleAndSample(t *testing.T) {
	t.Parallel()

	s := []int{1, 2, 3, 4}
	shuffle(testutils.NoShuffle{}, s)
	assert.Equal(t, []int{1, 2, 3, 4}, s)

	shuffle(&testutils.Scripted{Values: []int{3}}, s)
	assert.Equal(t, []int{4, 2, 3, 1}, s)

	src := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, sample(testutils.NoShuffle{}, src, 2))
	assert.Equal(t, []int{3, 2}, sample(&testutils.Scripted{Values: []int{2, 0}}, src, 2))
	assert.Equal(t, []int{1, 2, 3}, src, "sample must not modify its input")
	assert.Len(t, sample(testutils.NoShuffle{}, src, 5), 3)
	assert.Nil(t, sample(testutils.NoShuffle{}, src, 0))
}
