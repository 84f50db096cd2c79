package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

// VisualSystem maps the timeline position onto scene visibility and the
// dominant highlight. Commands go out only on state changes.
type VisualSystem struct {
	scene SceneGraph
}

func NewVisualSystem(scene SceneGraph) *VisualSystem {
	return &VisualSystem{scene: scene}
}

func (s *VisualSystem) Update(w *ecs.World) {
	if w == nil || s.scene == nil {
		return
	}
	position := timelinePosition(w)
	s.updateVisibility(w, position)
	s.updateHighlight(w, position)
}

func (s *VisualSystem) updateVisibility(w *ecs.World, position float64) {
	for _, entry := range windowsOfKind(w, component.WindowVisibility) {
		active := entry.window.Contains(position)
		if entry.state.Known && entry.state.Active == active {
			continue
		}
		entry.state.Known = true
		entry.state.Active = active
		s.scene.SetVisible(entry.window.Target, active)
		ecs.Emit(w, EventVisibilityChanged, TargetEvent{Target: entry.window.Target, Active: active, Position: position})
	}
}

func (s *VisualSystem) updateHighlight(w *ecs.World, position float64) {
	_, hl, ok := ecs.Singleton(w, component.HighlightComponent.Kind())
	if !ok || hl == nil {
		return
	}

	entries := windowsOfKind(w, component.WindowHighlight)
	dominant := ""
	for _, entry := range entries {
		active := entry.window.Contains(position)
		entry.state.Known = true
		entry.state.Active = active
		if active && dominant == "" {
			dominant = entry.window.Target
		}
	}

	if hl.Known && hl.Dominant == dominant {
		return
	}
	hl.Known = true
	hl.Dominant = dominant

	if dominant != "" {
		s.scene.SetGlobalHighlight(hl.Depressed, []string{dominant})
		s.scene.SetHighlight(dominant, hl.Boost)
	} else {
		s.scene.SetGlobalHighlight(hl.Neutral, nil)
		seen := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			target := entry.window.Target
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}
			s.scene.SetHighlight(target, hl.Neutral)
		}
	}
	ecs.Emit(w, EventHighlightChanged, TargetEvent{Target: dominant, Active: dominant != "", Position: position})
}
