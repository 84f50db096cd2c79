package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// AutoplaySystem retries playback that the audio device refused, once the
// user has interacted. Interaction requests are always consumed.
type AutoplaySystem struct {
	clock Clock
}

func NewAutoplaySystem(clock Clock) *AutoplaySystem {
	return &AutoplaySystem{clock: clock}
}

func (s *AutoplaySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var requests []ecs.Entity
	ecs.ForEach(w, component.InteractionRequestComponent.Kind(), func(e ecs.Entity, _ *component.InteractionRequest) {
		requests = append(requests, e)
	})
	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}
	if len(requests) == 0 || s.clock == nil || lightboxOpen(w) {
		return
	}

	now := s.clock.Now()
	position := timelinePosition(w)

	if e, master, src, ok := masterTrack(w); ok && master.Started && master.PendingPlay {
		tier, volume := master.TierFor(position)
		master.Tier = tier
		if err := src.Play(); err == nil {
			master.PendingPlay = false
			StartFade(w, e, volume, master.RetryFade, false, now)
			ecs.Emit(w, EventPlaybackRetried, AudioEvent{Name: src.Name, Volume: volume, Position: position})
		}
	}

	ecs.ForEach2(w, component.ChannelComponent.Kind(), component.AudioSourceComponent.Kind(), func(e ecs.Entity, ch *component.Channel, src *component.AudioSource) {
		if !ch.IsActive || !ch.PendingPlay {
			return
		}
		if err := src.Play(); err != nil {
			return
		}
		ch.PendingPlay = false
		StartFade(w, e, ch.TargetVolume, ch.FadeIn, false, now)
		ecs.Emit(w, EventPlaybackRetried, AudioEvent{Name: ch.Name, Volume: ch.TargetVolume, Position: position})
	})
}
