package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardsFor(pairIDs ...string) []Card {
	cards := make([]Card, len(pairIDs))
	for i, id := range pairIDs {
		cards[i] = Card{Key: id + "-" + string(rune('a'+i)), PairID: id, SourceIndex: noIndex}
	}
	return cards
}

func TestPickFromUrn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		urn          []Card
		forbidden    string
		wantIndex    int
		wantFellBack bool
	}{
		{name: "empty urn", urn: nil, forbidden: "a", wantIndex: -1},
		{name: "no constraint takes head", urn: cardsFor("a", "b"), forbidden: "", wantIndex: 0},
		{name: "head allowed", urn: cardsFor("b", "a"), forbidden: "a", wantIndex: 0},
		{name: "skips forbidden head", urn: cardsFor("a", "a", "c"), forbidden: "a", wantIndex: 2},
		{name: "only forbidden left falls back", urn: cardsFor("a"), forbidden: "a", wantIndex: 0, wantFellBack: true},
		{name: "several forbidden left falls back to head", urn: cardsFor("a", "a"), forbidden: "a", wantIndex: 0, wantFellBack: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx, fellBack := pickFromUrn(tc.urn, tc.forbidden)
			assert.Equal(t, tc.wantIndex, idx)
			assert.Equal(t, tc.wantFellBack, fellBack)
		})
	}
}

func TestBoardDrawFor(t *testing.T) {
	t.Parallel()

	t.Run("assigns lazily and only once", func(t *testing.T) {
		b := NewBoard(cardsFor("a", "a", "b", "b"))
		require.Equal(t, 4, b.Len())
		require.Equal(t, 4, b.UrnLen())

		_, ok := b.Card(0)
		assert.False(t, ok)

		res := b.DrawFor(0, "")
		assert.Equal(t, DrawResult{OK: true, Assigned: true}, res)
		first, ok := b.Card(0)
		require.True(t, ok)
		assert.Equal(t, "a", first.PairID)
		assert.Equal(t, 3, b.UrnLen())

		res = b.DrawFor(0, "a")
		assert.Equal(t, DrawResult{OK: true}, res)
		again, _ := b.Card(0)
		assert.Equal(t, first, again)
		assert.Equal(t, 3, b.UrnLen())
	})

	t.Run("avoids forbidden pair while an alternative exists", func(t *testing.T) {
		b := NewBoard(cardsFor("a", "a", "b", "b"))
		require.True(t, b.Draw(0, ""))

		res := b.DrawFor(1, "a")
		assert.False(t, res.FellBack)
		card, _ := b.Card(1)
		assert.Equal(t, "b", card.PairID)
		assert.Equal(t, 0, b.Fallbacks())
	})

	t.Run("falls back when only the forbidden pair remains", func(t *testing.T) {
		b := NewBoard(cardsFor("a", "a"))
		require.True(t, b.Draw(0, ""))

		res := b.DrawFor(1, "a")
		assert.True(t, res.OK)
		assert.True(t, res.FellBack)
		card, _ := b.Card(1)
		assert.Equal(t, "a", card.PairID)
		assert.Equal(t, 1, b.Fallbacks())
	})

	t.Run("unknown slot", func(t *testing.T) {
		b := NewBoard(cardsFor("a", "a"))
		assert.Equal(t, DrawResult{}, b.DrawFor(-1, ""))
		assert.Equal(t, DrawResult{}, b.DrawFor(2, ""))
		assert.False(t, b.Has(2))
		assert.Equal(t, 2, b.UrnLen())
	})
}

func TestBoardCopiesDeck(t *testing.T) {
	t.Parallel()
	deck := cardsFor("a", "b")
	b := NewBoard(deck)

	deck[0].PairID = "mutated"
	urn := b.Urn()
	assert.Equal(t, "a", urn[0].PairID)

	urn[1].PairID = "mutated"
	assert.Equal(t, "b", b.Urn()[1].PairID)
}

func TestBoardConservesCards(t *testing.T) {
	t.Parallel()
	deck := cardsFor("a", "a", "b", "b", "c", "c")
	b := NewBoard(deck)

	forbidden := []string{"", "a", "", "c", "b", ""}
	for i, f := range forbidden {
		require.True(t, b.Draw(SlotKey(i), f))
		assert.Equal(t, len(deck), b.UrnLen()+i+1, "assigned plus urn must equal deck size")
	}
	assert.Zero(t, b.UrnLen())

	var want, got []string
	for _, c := range deck {
		want = append(want, c.Key)
	}
	for i := 0; i < b.Len(); i++ {
		c, ok := b.Card(SlotKey(i))
		require.True(t, ok)
		got = append(got, c.Key)
	}
	sort.Strings(want)
	sort.Strings(got)
	assert.Equal(t, want, got)
}
