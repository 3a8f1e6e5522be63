package game

import "time"

// Scheduler runs fn once after d unless the returned cancel func is called
// first. Games use it for the preview window and for hiding wrong cards.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// ClockScheduler schedules on the wall clock via time.AfterFunc. Callbacks run
// on their own goroutine; Session serializes them with clicks.
type ClockScheduler struct{}

// AfterFunc implements Scheduler.
func (ClockScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Default timings.
const (
	DefaultMismatchReveal = 1500 * time.Millisecond
	DefaultWrongReveal    = 1500 * time.Millisecond
	DefaultPreview        = 4 * time.Second
)
