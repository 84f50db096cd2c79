package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// PointerSystem turns pointer presses on video targets into lightbox open
// requests. Presses are dropped while the lightbox is already open.
type PointerSystem struct {
	resolver TargetResolver
}

func NewPointerSystem(resolver TargetResolver) *PointerSystem {
	return &PointerSystem{resolver: resolver}
}

func (s *PointerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var nodes []string
	var requests []ecs.Entity
	ecs.ForEach(w, component.PointerRequestComponent.Kind(), func(e ecs.Entity, req *component.PointerRequest) {
		requests = append(requests, e)
		nodes = append(nodes, req.Node)
	})
	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}
	if len(nodes) == 0 || s.resolver == nil || lightboxOpen(w) {
		return
	}

	for _, node := range nodes {
		index, ok := s.resolver.Resolve(node)
		if !ok {
			ecs.Emit(w, EventVideoUnresolved, InterruptEvent{Node: node, Position: timelinePosition(w)})
			continue
		}
		RequestInterrupt(w, component.InterruptOpen, index)
		return
	}
}
