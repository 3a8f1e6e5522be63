package game

import "github.com/phrazzld/scry-match/internal/domain"

// Level returns the items of level levelIndex: pool[i*k : i*k+k], clipped to
// the pool. Out-of-range levels and non-positive chunk sizes yield an empty
// slice, never a panic. The returned slice aliases pool.
func Level(pool []domain.PoolItem, itemsPerGame, levelIndex int) []domain.PoolItem {
	if itemsPerGame <= 0 || levelIndex < 0 {
		return nil
	}
	start := levelIndex * itemsPerGame
	if start >= len(pool) {
		return nil
	}
	end := start + itemsPerGame
	if end > len(pool) {
		end = len(pool)
	}
	return pool[start:end:end]
}

// LevelCount returns how many levels a pool splits into.
func LevelCount(pool []domain.PoolItem, itemsPerGame int) int {
	if itemsPerGame <= 0 {
		return 0
	}
	return (len(pool) + itemsPerGame - 1) / itemsPerGame
}

// ItemsPerGame picks a world's chunk size: the world's own setting, then
// fallback, then DefaultItemsPerGame.
func ItemsPerGame(w *domain.World, fallback int) int {
	if w != nil && w.ItemsPerGame > 0 {
		return w.ItemsPerGame
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultItemsPerGame
}
