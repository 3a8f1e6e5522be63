package testutils

// NoShuffle always returns 0, which keeps shuffled decks and sampled
// distractors in the order they were built.
type NoShuffle struct{}

// IntN returns 0.
func (NoShuffle) IntN(int) int { return 0 }

// Scripted replays Values in order, each reduced modulo n, and returns 0 once
// they run out.
type Scripted struct {
	Values []int
	next   int
}

// IntN returns the next scripted value.
func (s *Scripted) IntN(n int) int {
	if s.next >= len(s.Values) {
		return 0
	}
	v := s.Values[s.next]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
