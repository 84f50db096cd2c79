package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// CaptionSystem toggles caption slots as the position crosses caption
// windows. When two windows on one slot change in the same tick, the later
// declared one is applied last and wins.
type CaptionSystem struct {
	sink CaptionSink
}

func NewCaptionSystem(sink CaptionSink) *CaptionSystem {
	return &CaptionSystem{sink: sink}
}

func (s *CaptionSystem) Update(w *ecs.World) {
	if w == nil || s.sink == nil {
		return
	}
	position := timelinePosition(w)
	for _, entry := range windowsOfKind(w, component.WindowCaption) {
		active := entry.window.Contains(position)
		if entry.state.Known && entry.state.Active == active {
			continue
		}
		entry.state.Known = true
		entry.state.Active = active
		s.sink.SetTextVisibility(entry.window.Slot, active)

		evt := EventCaptionHidden
		if active {
			evt = EventCaptionShown
		}
		ecs.Emit(w, evt, TargetEvent{Slot: entry.window.Slot, Active: active, Position: position})
	}
}
