package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
	"github.com/milk9111/musicstrip/scenes"
)

const (
	defaultFadeIn  = 600 * time.Millisecond
	defaultFadeOut = 400 * time.Millisecond
)

// BuildWindowTable creates one entity per visibility, highlight and caption
// window, keeping declaration order in Window.Order.
func BuildWindowTable(w *ecs.World, specs []scenes.WindowSpec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(specs))
	for i, spec := range specs {
		e := ecs.CreateEntity(w)
		win := &component.Window{
			ID:     spec.ID,
			Kind:   component.WindowKind(spec.Kind),
			Start:  spec.Start,
			End:    spec.End,
			Target: spec.Target,
			Slot:   spec.Slot,
			Order:  i,
		}
		if err := ecs.Add(w, e, component.WindowComponent.Kind(), win); err != nil {
			return out, fmt.Errorf("build window %q: %w", spec.ID, err)
		}
		if err := ecs.Add(w, e, component.WindowStateComponent.Kind(), &component.WindowState{}); err != nil {
			return out, fmt.Errorf("build window %q: %w", spec.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// BuildChannelTable creates one entity per ambient channel carrying its
// window, its state and its audio source.
func BuildChannelTable(w *ecs.World, specs []scenes.ChannelSpec, ctx *BuildContext) ([]ecs.Entity, error) {
	if ctx == nil {
		ctx = &BuildContext{}
	}
	out := make([]ecs.Entity, 0, len(specs))
	for i, spec := range specs {
		fadeIn := spec.FadeIn
		if fadeIn == 0 {
			fadeIn = defaultFadeIn
		}
		fadeOut := spec.FadeOut
		if fadeOut == 0 {
			fadeOut = defaultFadeOut
		}

		e := ecs.CreateEntity(w)
		err := ecs.Add(w, e, component.WindowComponent.Kind(), &component.Window{
			ID:     spec.Name,
			Kind:   component.WindowAmbient,
			Start:  spec.Start,
			End:    spec.End,
			Target: spec.Name,
			Order:  i,
		})
		if err == nil {
			err = ecs.Add(w, e, component.ChannelComponent.Kind(), &component.Channel{
				Name:         spec.Name,
				TargetVolume: spec.Volume,
				FadeIn:       fadeIn,
				FadeOut:      fadeOut,
			})
		}
		if err == nil {
			err = ecs.Add(w, e, component.AudioSourceComponent.Kind(), newAudioSource(spec.Name, spec.Track, ctx))
		}
		if err != nil {
			ecs.DestroyEntity(w, e)
			return out, fmt.Errorf("build channel %q: %w", spec.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}
