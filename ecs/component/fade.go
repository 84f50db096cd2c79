package component

import "time"

// Fade is a linear volume ramp on the AudioSource of the same entity. There is
// at most one per entity: adding a new Fade replaces the running one, which is
// how a fade is cancelled. StartedAt is a reading of the engine clock.
type Fade struct {
	From            float64
	To              float64
	Duration        time.Duration
	StartedAt       time.Duration
	PauseOnComplete bool
}

// ValueAt returns the ramp value at now and whether the ramp has finished.
func (f Fade) ValueAt(now time.Duration) (float64, bool) {
	if f.Duration <= 0 {
		return f.To, true
	}
	elapsed := now - f.StartedAt
	if elapsed <= 0 {
		return f.From, false
	}
	if elapsed >= f.Duration {
		return f.To, true
	}
	t := float64(elapsed) / float64(f.Duration)
	return f.From + (f.To-f.From)*t, false
}

var FadeComponent = NewComponent[Fade]("fade")
