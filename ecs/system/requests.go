package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// RequestPointer queues a pointer press on a scene node for the next tick.
func RequestPointer(w *ecs.World, node string) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.PointerRequestComponent.Kind(), &component.PointerRequest{Node: node})
}

// RequestInterrupt queues a lightbox request for the next tick.
func RequestInterrupt(w *ecs.World, kind component.InterruptKind, index int) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.InterruptRequestComponent.Kind(), &component.InterruptRequest{Kind: kind, Index: index})
}

// RequestInteraction records a user gesture for the next tick.
func RequestInteraction(w *ecs.World) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.InteractionRequestComponent.Kind(), &component.InteractionRequest{})
}

func timelinePosition(w *ecs.World) float64 {
	_, tl, ok := ecs.Singleton(w, component.TimelineComponent.Kind())
	if !ok || tl == nil {
		return 0
	}
	return tl.Position
}

func lightboxOpen(w *ecs.World) bool {
	_, in, ok := ecs.Singleton(w, component.InterruptComponent.Kind())
	return ok && in != nil && in.LightboxOpen
}
