package system

import (
	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

type EndCardSystem struct {
	view EndCardView
}

func NewEndCardSystem(view EndCardView) *EndCardSystem {
	return &EndCardSystem{view: view}
}

func (s *EndCardSystem) Update(w *ecs.World) {
	_, card, ok := ecs.Singleton(w, component.EndCardComponent.Kind())
	if !ok || card == nil || s.view == nil {
		return
	}
	position := timelinePosition(w)
	visible := position >= card.Threshold && !lightboxOpen(w)
	if card.Known && card.Visible == visible {
		return
	}
	card.Known = true
	card.Visible = visible
	s.view.SetEndCardVisible(visible)
	ecs.Emit(w, EventEndCard, TargetEvent{Target: "end_card", Active: visible, Position: position})
}
