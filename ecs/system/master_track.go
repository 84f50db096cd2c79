package system

import (
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// MasterTrackSystem starts the background bed after its start delay and
// re-levels it whenever the position crosses into another tier.
type MasterTrackSystem struct {
	clock Clock
}

func NewMasterTrackSystem(clock Clock) *MasterTrackSystem {
	return &MasterTrackSystem{clock: clock}
}

func (s *MasterTrackSystem) Update(w *ecs.World) {
	if w == nil || s.clock == nil || lightboxOpen(w) {
		return
	}
	e, master, src, ok := masterTrack(w)
	if !ok {
		return
	}
	now := s.clock.Now()
	position := timelinePosition(w)

	if !master.Started {
		if now-master.MountedAt < master.StartDelay {
			return
		}
		startMaster(w, e, master, src, position, master.StartFade, now)
		return
	}
	if master.PendingPlay {
		return
	}

	tier, volume := master.TierFor(position)
	if tier == master.Tier {
		return
	}
	master.Tier = tier
	StartFade(w, e, volume, master.TierFade, false, now)
	ecs.Emit(w, EventMasterTier, AudioEvent{Name: src.Name, Volume: volume, Position: position})
}

func masterTrack(w *ecs.World) (ecs.Entity, *component.MasterTrack, *component.AudioSource, bool) {
	e, master, ok := ecs.Singleton(w, component.MasterTrackComponent.Kind())
	if !ok || master == nil {
		return 0, nil, nil, false
	}
	src, ok := ecs.Get(w, e, component.AudioSourceComponent.Kind())
	if !ok || src == nil {
		return 0, nil, nil, false
	}
	return e, master, src, true
}

// startMaster plays the master from volume 0 and fades it to the tier of the
// current position.
func startMaster(w *ecs.World, e ecs.Entity, master *component.MasterTrack, src *component.AudioSource, position float64, fade time.Duration, now time.Duration) {
	master.Started = true
	master.PendingPlay = false
	tier, volume := master.TierFor(position)
	master.Tier = tier

	CancelFade(w, e)
	src.SetVolume(0)
	if err := src.Play(); err != nil {
		master.PendingPlay = true
		ecs.Emit(w, EventPlaybackDeferred, AudioEvent{Name: src.Name, Position: position, Err: err})
		return
	}
	StartFade(w, e, volume, fade, false, now)
	ecs.Emit(w, EventMasterStarted, AudioEvent{Name: src.Name, Volume: volume, Position: position})
}
