package system

import (
	"sort"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

type windowEntry struct {
	entity ecs.Entity
	window *component.Window
	state  *component.WindowState
}

// windowsOfKind returns the windows of one kind in declaration order.
func windowsOfKind(w *ecs.World, kind component.WindowKind) []windowEntry {
	var out []windowEntry
	ecs.ForEach2(w, component.WindowComponent.Kind(), component.WindowStateComponent.Kind(), func(e ecs.Entity, win *component.Window, st *component.WindowState) {
		if win.Kind != kind {
			return
		}
		out = append(out, windowEntry{entity: e, window: win, state: st})
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].window.Order < out[j].window.Order
	})
	return out
}
