package game

import (
	"testing"

	"github.com/phrazzld/scry-match/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	t.Parallel()
	pool := testutils.VocabPairs(13)

	tests := []struct {
		name         string
		itemsPerGame int
		level        int
		wantIDs      []string
	}{
		{name: "first chunk", itemsPerGame: 6, level: 0, wantIDs: []string{"p0", "p1", "p2", "p3", "p4", "p5"}},
		{name: "second chunk", itemsPerGame: 6, level: 1, wantIDs: []string{"p6", "p7", "p8", "p9", "p10", "p11"}},
		{name: "short last chunk", itemsPerGame: 6, level: 2, wantIDs: []string{"p12"}},
		{name: "beyond pool", itemsPerGame: 6, level: 3, wantIDs: nil},
		{name: "far beyond pool", itemsPerGame: 6, level: 1000, wantIDs: nil},
		{name: "negative level", itemsPerGame: 6, level: -1, wantIDs: nil},
		{name: "zero chunk size", itemsPerGame: 0, level: 0, wantIDs: nil},
		{name: "chunk larger than pool", itemsPerGame: 20, level: 0, wantIDs: idsOf(pool)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Level(pool, tc.itemsPerGame, tc.level)
			if tc.wantIDs == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.wantIDs, idsOf(got))
		})
	}
}

func TestLevelDoesNotExposeRestOfPool(t *testing.T) {
	t.Parallel()
	pool := testutils.VocabPairs(4)

	level := Level(pool, 2, 0)
	assert.Equal(t, len(level), cap(level), "appending to a level must not overwrite the next chunk")

	_ = append(level, testutils.VocabPairs(1)[0])
	assert.Equal(t, "p2", pool[2].ItemID())
}

func TestLevelCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, LevelCount(testutils.VocabPairs(13), 6))
	assert.Equal(t, 2, LevelCount(testutils.VocabPairs(12), 6))
	assert.Equal(t, 0, LevelCount(nil, 6))
	assert.Equal(t, 0, LevelCount(testutils.VocabPairs(3), 0))
}

func TestItemsPerGame(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, ItemsPerGame(testutils.VocabWorld("w", 3), 5))
	assert.Equal(t, 5, ItemsPerGame(testutils.VocabWorld("w", 0), 5))
	assert.Equal(t, DefaultItemsPerGame, ItemsPerGame(testutils.VocabWorld("w", 0), 0))
	assert.Equal(t, DefaultItemsPerGame, ItemsPerGame(nil, 0))
}
