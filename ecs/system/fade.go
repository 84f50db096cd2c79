package system

import (
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// StartFade ramps the entity's AudioSource from its current volume to `to`.
// Any running fade on the entity is replaced. A non-positive duration applies
// the end state at once.
func StartFade(w *ecs.World, e ecs.Entity, to float64, d time.Duration, pauseOnComplete bool, now time.Duration) {
	src, ok := ecs.Get(w, e, component.AudioSourceComponent.Kind())
	if !ok || src == nil {
		return
	}
	if d <= 0 {
		ecs.Remove(w, e, component.FadeComponent.Kind())
		src.SetVolume(to)
		if pauseOnComplete && to <= 0 {
			src.Pause()
		}
		return
	}
	_ = ecs.Add(w, e, component.FadeComponent.Kind(), &component.Fade{
		From:            src.Volume,
		To:              to,
		Duration:        d,
		StartedAt:       now,
		PauseOnComplete: pauseOnComplete,
	})
}

// CancelFade drops any running fade on e and leaves the volume where it is.
func CancelFade(w *ecs.World, e ecs.Entity) {
	ecs.Remove(w, e, component.FadeComponent.Kind())
}

// FadeSystem advances every running fade from the clock, so ramps take the
// same wall time at any tick rate.
type FadeSystem struct {
	clock Clock
}

func NewFadeSystem(clock Clock) *FadeSystem {
	return &FadeSystem{clock: clock}
}

func (s *FadeSystem) Update(w *ecs.World) {
	if w == nil || s.clock == nil {
		return
	}
	now := s.clock.Now()
	ecs.ForEach2(w, component.FadeComponent.Kind(), component.AudioSourceComponent.Kind(), func(e ecs.Entity, f *component.Fade, src *component.AudioSource) {
		v, done := f.ValueAt(now)
		src.SetVolume(v)
		if !done {
			return
		}
		pause := f.PauseOnComplete && f.To <= 0
		ecs.Remove(w, e, component.FadeComponent.Kind())
		if pause {
			src.Pause()
		}
	})
}
