package game

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the randomness used for shuffling decks and sampling
// distractors. Tests inject deterministic sources.
type RandomSource interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

type pcgRandom struct{ r *rand.Rand }

func (p *pcgRandom) IntN(n int) int { return p.r.IntN(n) }

// DefaultRandom returns a PCG source seeded from crypto/rand, falling back to
// the runtime's global generator for the seed if crypto/rand fails.
func DefaultRandom() RandomSource {
	var buf [16]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return NewSeededRandom(rand.Uint64())
	}
	return &pcgRandom{r: rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(buf[:8]),
		binary.BigEndian.Uint64(buf[8:]),
	))}
}

// NewSeededRandom returns a reproducible source.
func NewSeededRandom(seed uint64) RandomSource {
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, 0))}
}

// shuffle is a Fisher-Yates shuffle driven by rng. A source that always
// returns 0 leaves s in its original order.
func shuffle[T any](rng RandomSource, s []T) {
	for i := 0; i < len(s)-1; i++ {
		j := i + rng.IntN(len(s)-i)
		s[i], s[j] = s[j], s[i]
	}
}

// sample returns k elements of s drawn without replacement. s is not modified.
func sample[T any](rng RandomSource, s []T, k int) []T {
	if k > len(s) {
		k = len(s)
	}
	if k <= 0 {
		return nil
	}
	pool := make([]T, len(s))
	copy(pool, s)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
