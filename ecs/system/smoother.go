package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

const defaultDamping = 0.02

// SmootherSystem eases the timeline position toward the scroll target and
// pushes it to the sequence player. It must run first in the tick.
type SmootherSystem struct {
	player SequencePlayer
}

func NewSmootherSystem(player SequencePlayer) *SmootherSystem {
	return &SmootherSystem{player: player}
}

func (s *SmootherSystem) Update(w *ecs.World) {
	_, tl, ok := ecs.Singleton(w, component.TimelineComponent.Kind())
	if !ok || tl == nil {
		return
	}
	if s.player != nil {
		if length := s.player.Length(); length > 0 {
			tl.Length = length
		}
	}

	damping := tl.Damping
	if damping <= 0 {
		damping = defaultDamping
	}
	if damping > 1 {
		damping = 1
	}

	tl.Target = tl.RawOffset * tl.Length
	tl.Position += (tl.Target - tl.Position) * damping
	tl.Ticks++

	if s.player != nil {
		s.player.SetPosition(tl.Position)
	}
}
