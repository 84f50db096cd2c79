package system

import (
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// AmbientSystem starts and stops ambient channels as the position enters and
// leaves their windows. Nothing happens while the lightbox is open.
type AmbientSystem struct {
	clock Clock
}

func NewAmbientSystem(clock Clock) *AmbientSystem {
	return &AmbientSystem{clock: clock}
}

func (s *AmbientSystem) Update(w *ecs.World) {
	if w == nil || s.clock == nil || lightboxOpen(w) {
		return
	}
	position := timelinePosition(w)
	now := s.clock.Now()
	ecs.ForEach3(w, component.ChannelComponent.Kind(), component.WindowComponent.Kind(), component.AudioSourceComponent.Kind(), func(e ecs.Entity, ch *component.Channel, win *component.Window, src *component.AudioSource) {
		inside := win.Contains(position)
		switch {
		case inside && !ch.IsActive:
			startChannel(w, e, ch, src, position, now)
		case !inside && ch.IsActive:
			stopChannel(w, e, ch, ch.FadeOut, position, now)
		}
	})
}

// startChannel restarts a channel from the top at volume 0 and fades it to
// its target. A refused Play leaves the channel active and pending.
func startChannel(w *ecs.World, e ecs.Entity, ch *component.Channel, src *component.AudioSource, position float64, now time.Duration) {
	ch.IsActive = true
	ch.PendingPlay = false
	CancelFade(w, e)
	if err := src.Rewind(); err != nil {
		ecs.Emit(w, EventRewindFailed, AudioEvent{Name: ch.Name, Position: position, Err: err})
	}
	src.SetVolume(0)
	if err := src.Play(); err != nil {
		ch.PendingPlay = true
		ecs.Emit(w, EventPlaybackDeferred, AudioEvent{Name: ch.Name, Position: position, Err: err})
		return
	}
	StartFade(w, e, ch.TargetVolume, ch.FadeIn, false, now)
	ecs.Emit(w, EventChannelStarted, AudioEvent{Name: ch.Name, Volume: ch.TargetVolume, Position: position})
}

func stopChannel(w *ecs.World, e ecs.Entity, ch *component.Channel, fadeOut time.Duration, position float64, now time.Duration) {
	ch.IsActive = false
	ch.PendingPlay = false
	StartFade(w, e, 0, fadeOut, true, now)
	ecs.Emit(w, EventChannelStopped, AudioEvent{Name: ch.Name, Position: position})
}
