package system

import (
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// InterruptSystem suspends all audio when the lightbox opens and brings the
// soundscape back in line with the position when it closes. Requests are
// handled in arrival order.
type InterruptSystem struct {
	clock   Clock
	overlay Overlay
}

func NewInterruptSystem(clock Clock, overlay Overlay) *InterruptSystem {
	return &InterruptSystem{clock: clock, overlay: overlay}
}

func (s *InterruptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var pending []component.InterruptRequest
	var requests []ecs.Entity
	ecs.ForEach(w, component.InterruptRequestComponent.Kind(), func(e ecs.Entity, req *component.InterruptRequest) {
		requests = append(requests, e)
		pending = append(pending, *req)
	})
	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}

	_, in, ok := ecs.Singleton(w, component.InterruptComponent.Kind())
	if !ok || in == nil || s.clock == nil {
		return
	}
	for _, req := range pending {
		switch req.Kind {
		case component.InterruptOpen:
			s.suspend(w, in, req.Index)
		case component.InterruptClose:
			s.resume(w, in)
		case component.InterruptPlay:
			s.silenceMaster(w)
		case component.InterruptPause:
			ecs.Emit(w, EventOverlayPause, InterruptEvent{VideoIndex: in.VideoIndex, Position: timelinePosition(w)})
		case component.InterruptEnded:
			ecs.Emit(w, EventOverlayEnded, InterruptEvent{VideoIndex: in.VideoIndex, Position: timelinePosition(w)})
		}
	}
}

func (s *InterruptSystem) suspend(w *ecs.World, in *component.Interrupt, index int) {
	if in.LightboxOpen {
		return
	}
	now := s.clock.Now()
	position := timelinePosition(w)

	if e, _, _, ok := masterTrack(w); ok {
		StartFade(w, e, 0, in.FadeOut, true, now)
	}

	var active []string
	ecs.ForEach2(w, component.ChannelComponent.Kind(), component.AudioSourceComponent.Kind(), func(e ecs.Entity, ch *component.Channel, _ *component.AudioSource) {
		if !ch.IsActive && !ch.PendingPlay {
			return
		}
		active = append(active, ch.Name)
		stopChannel(w, e, ch, in.FadeOut, position, now)
	})

	in.LightboxOpen = true
	in.VideoIndex = index
	if s.overlay != nil {
		s.overlay.Open(index)
	}
	ecs.Emit(w, EventSuspended, InterruptEvent{VideoIndex: index, Position: position, Active: active})
}

func (s *InterruptSystem) resume(w *ecs.World, in *component.Interrupt) {
	if !in.LightboxOpen {
		return
	}
	in.LightboxOpen = false
	now := s.clock.Now()
	position := timelinePosition(w)

	if e, master, src, ok := masterTrack(w); ok {
		startMaster(w, e, master, src, position, resumeFade(master), now)
	}

	var active []string
	ecs.ForEach3(w, component.ChannelComponent.Kind(), component.WindowComponent.Kind(), component.AudioSourceComponent.Kind(), func(e ecs.Entity, ch *component.Channel, win *component.Window, src *component.AudioSource) {
		if !win.Contains(position) {
			ch.IsActive = false
			ch.PendingPlay = false
			return
		}
		startChannel(w, e, ch, src, position, now)
		active = append(active, ch.Name)
	})
	ecs.Emit(w, EventResumed, InterruptEvent{VideoIndex: in.VideoIndex, Position: position, Active: active})
}

// silenceMaster cuts the master at once if the video starts before the
// suspend fade has finished.
func (s *InterruptSystem) silenceMaster(w *ecs.World) {
	e, _, src, ok := masterTrack(w)
	if !ok {
		return
	}
	if src.Playing || src.Volume > 0 {
		CancelFade(w, e)
		src.SetVolume(0)
		src.Pause()
	}
	ecs.Emit(w, EventOverlayPlay, AudioEvent{Name: src.Name, Position: timelinePosition(w)})
}

func resumeFade(master *component.MasterTrack) time.Duration {
	if master.ResumeFade > 0 {
		return master.ResumeFade
	}
	return master.TierFade
}

// Teardown pauses every transport, zeroes every volume and closes the
// overlay.
func Teardown(w *ecs.World, overlay Overlay) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AudioSourceComponent.Kind(), func(e ecs.Entity, src *component.AudioSource) {
		CancelFade(w, e)
		src.SetVolume(0)
		src.Pause()
	})
	ecs.ForEach(w, component.ChannelComponent.Kind(), func(_ ecs.Entity, ch *component.Channel) {
		ch.IsActive = false
		ch.PendingPlay = false
	})
	if _, in, ok := ecs.Singleton(w, component.InterruptComponent.Kind()); ok && in != nil {
		in.LightboxOpen = false
	}
	if overlay != nil {
		overlay.Close()
	}
}
