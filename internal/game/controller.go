package game

import "github.com/phrazzld/scry-match/internal/domain"

// Step is where Advance goes from a won unit.
type Step string

const (
	// StepNextPhrase moves to the next phrase of the current level.
	StepNextPhrase Step = "next_phrase"
	// StepNextLevel asks the host for the next level.
	StepNextLevel Step = "next_level"
)

// Controller watches a game for its win and decides where to advance. It
// keeps nothing but the won flag and the summary captured at the win; level
// and phrase indices belong to the host.
type Controller struct {
	won     bool
	summary Summary
}

// Observe records g's win the first time it is seen and reports whether this
// call was that first time.
func (c *Controller) Observe(g Game) bool {
	if c.won || g == nil || !g.Won() {
		return false
	}
	c.won = true
	c.summary = g.Summary()
	return true
}

// Won reports whether the current unit has been won.
func (c *Controller) Won() bool { return c.won }

// Summary returns the summary captured at the win.
func (c *Controller) Summary() (Summary, bool) {
	return c.summary, c.won
}

// NextStep picks the advance target. Phrase mode stays within the level while
// phrases remain; vocabulary mode always moves to the next level.
func (c *Controller) NextStep(mode domain.Mode, phraseIndex, phraseCount int) Step {
	if mode == domain.ModePhrase && phraseIndex+1 < phraseCount {
		return StepNextPhrase
	}
	return StepNextLevel
}

// Reset clears the won flag for a rebuilt unit.
func (c *Controller) Reset() {
	c.won = false
	c.summary = Summary{}
}
