package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
	"github.com/milk9111/musicstrip/scenes"
	"go.uber.org/zap"
)

type entityPrefabSpec = scenes.EntityBuildSpec

// TransportFactory opens the playback transport for a track.
type TransportFactory func(track string) (component.Transport, error)

// BuildContext carries what component builders need beyond the raw spec.
type BuildContext struct {
	Transports TransportFactory
	Logger     *zap.Logger
	// Now is the clock reading at mount.
	Now time.Duration
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"timeline":     addTimeline,
	"highlight":    addHighlight,
	"end_card":     addEndCard,
	"interrupt":    addInterrupt,
	"audio_source": addAudioSource,
	"master_track": addMasterTrack,
}

var componentBuildOrder = []string{
	"timeline",
	"highlight",
	"end_card",
	"interrupt",
	"audio_source",
	"master_track",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := scenes.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if spec.Name == "" {
		spec.Name = prefabPath
	}
	return BuildEntityFromSpec(w, spec, ctx)
}

func BuildEntityFromSpec(w *ecs.World, spec entityPrefabSpec, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", spec.Name)
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, name)
		}
	}

	e := ecs.CreateEntity(w)
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
		delete(remaining, name)
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := componentRegistry[name](w, e, remaining[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}

	return e, nil
}

type timelineSpec = scenes.TimelineComponentSpec

func addTimeline(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := scenes.DecodeComponentSpec[timelineSpec](raw)
	if err != nil {
		return fmt.Errorf("decode timeline spec: %w", err)
	}
	if spec.Length <= 0 {
		return fmt.Errorf("timeline length must be positive, got %v", spec.Length)
	}
	if spec.Damping <= 0 || spec.Damping > 1 {
		spec.Damping = 0.02
	}
	return ecs.Add(w, e, component.TimelineComponent.Kind(), &component.Timeline{
		Length:  spec.Length,
		Damping: spec.Damping,
	})
}

type highlightSpec = scenes.HighlightComponentSpec

func addHighlight(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := scenes.DecodeComponentSpec[highlightSpec](raw)
	if err != nil {
		return fmt.Errorf("decode highlight spec: %w", err)
	}
	if spec.Neutral <= 0 {
		spec.Neutral = 1
	}
	return ecs.Add(w, e, component.HighlightComponent.Kind(), &component.Highlight{
		Boost:     spec.Boost,
		Depressed: spec.Depressed,
		Neutral:   spec.Neutral,
	})
}

type endCardSpec = scenes.EndCardComponentSpec

func addEndCard(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := scenes.DecodeComponentSpec[endCardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode end_card spec: %w", err)
	}
	return ecs.Add(w, e, component.EndCardComponent.Kind(), &component.EndCard{Threshold: spec.Threshold})
}

type interruptSpec = scenes.InterruptComponentSpec

func addInterrupt(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := scenes.DecodeComponentSpec[interruptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interrupt spec: %w", err)
	}
	return ecs.Add(w, e, component.InterruptComponent.Kind(), &component.Interrupt{FadeOut: spec.FadeOut})
}

type audioSourceSpec = scenes.AudioSourceComponentSpec

func addAudioSource(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := scenes.DecodeComponentSpec[audioSourceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio_source spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioSourceComponent.Kind(), newAudioSource(spec.Name, spec.Track, ctx))
}

type masterTrackSpec = scenes.MasterTrackComponentSpec

func addMasterTrack(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := scenes.DecodeComponentSpec[masterTrackSpec](raw)
	if err != nil {
		return fmt.Errorf("decode master_track spec: %w", err)
	}
	if !ecs.Has(w, e, component.AudioSourceComponent.Kind()) {
		return fmt.Errorf("master_track requires audio_source on the same entity")
	}
	return ecs.Add(w, e, component.MasterTrackComponent.Kind(), &component.MasterTrack{
		Threshold:  spec.Threshold,
		NearVolume: spec.NearVolume,
		FarVolume:  spec.FarVolume,
		TierFade:   spec.TierFade,
		StartDelay: spec.StartDelay,
		StartFade:  spec.StartFade,
		RetryFade:  spec.RetryFade,
		ResumeFade: spec.ResumeFade,
		MountedAt:  ctx.Now,
		Tier:       -1,
	})
}

// newAudioSource opens the track's transport. A track that fails to open
// yields a silent source rather than an error.
func newAudioSource(name, track string, ctx *BuildContext) *component.AudioSource {
	src := &component.AudioSource{Name: name, Track: track}
	if ctx.Transports == nil || track == "" {
		return src
	}
	transport, err := ctx.Transports(track)
	if err != nil {
		if ctx.Logger != nil {
			ctx.Logger.Warn("audio track unavailable", zap.String("source", name), zap.String("track", track), zap.Error(err))
		}
		return src
	}
	src.Transport = transport
	return src
}
