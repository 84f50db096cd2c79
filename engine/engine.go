// Package engine mounts a scene into an ECS world and drives the timeline
// systems one tick at a time.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
	"github.com/milk9111/musicstrip/ecs/entity"
	"github.com/milk9111/musicstrip/ecs/system"
	"github.com/milk9111/musicstrip/scenes"
	"go.uber.org/zap"
)

var ErrNoTimeline = errors.New("engine: scene has no timeline prefab")

// Collaborators are the outputs the engine drives. Any of them may be nil;
// the matching system then does nothing.
type Collaborators struct {
	Sequence   system.SequencePlayer
	Scene      system.SceneGraph
	Resolver   system.TargetResolver
	Captions   system.CaptionSink
	Overlay    system.Overlay
	EndCard    system.EndCardView
	Clock      system.Clock
	Transports entity.TransportFactory
}

type Engine struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	overlay   system.Overlay
	logger    *zap.Logger
	torn      bool
}

// ChannelStatus is a read-only snapshot of one ambient channel.
type ChannelStatus struct {
	Name    string
	Start   float64
	End     float64
	Active  bool
	Pending bool
	Playing bool
	Volume  float64
}

// New builds the world for scene: its prefabs, the window table and the
// channel table. Every channel starts inactive and silent.
func New(scene *scenes.Scene, c Collaborators, logger *zap.Logger) (*Engine, error) {
	if scene == nil {
		return nil, fmt.Errorf("engine: scene is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if c.Clock == nil {
		c.Clock = system.NewSystemClock()
	}

	w := ecs.NewWorld()
	ctx := &entity.BuildContext{Transports: c.Transports, Logger: logger, Now: c.Clock.Now()}
	for _, prefab := range scene.Prefabs {
		if _, err := entity.BuildEntity(w, prefab, ctx); err != nil {
			return nil, fmt.Errorf("engine: mount %s: %w", scene.Name, err)
		}
	}
	if _, ok := ecs.First(w, component.TimelineComponent.Kind()); !ok {
		return nil, ErrNoTimeline
	}
	if _, ok := ecs.First(w, component.InterruptComponent.Kind()); !ok {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.InterruptComponent.Kind(), &component.Interrupt{}); err != nil {
			return nil, fmt.Errorf("engine: mount %s: %w", scene.Name, err)
		}
	}
	if _, err := entity.BuildWindowTable(w, scene.Windows); err != nil {
		return nil, fmt.Errorf("engine: mount %s: %w", scene.Name, err)
	}
	if _, err := entity.BuildChannelTable(w, scene.Channels, ctx); err != nil {
		return nil, fmt.Errorf("engine: mount %s: %w", scene.Name, err)
	}

	scheduler := ecs.NewScheduler(
		system.NewSmootherSystem(c.Sequence),
		system.NewPointerSystem(c.Resolver),
		system.NewInterruptSystem(c.Clock, c.Overlay),
		system.NewVisualSystem(c.Scene),
		system.NewCaptionSystem(c.Captions),
		system.NewMasterTrackSystem(c.Clock),
		system.NewAmbientSystem(c.Clock),
		system.NewAutoplaySystem(c.Clock),
		system.NewFadeSystem(c.Clock),
		system.NewEndCardSystem(c.EndCard),
		system.NewTelemetrySystem(logger),
	)

	logger.Info("scene mounted",
		zap.String("scene", scene.Name),
		zap.Int("windows", len(scene.Windows)),
		zap.Int("channels", len(scene.Channels)),
	)
	return &Engine{world: w, scheduler: scheduler, overlay: c.Overlay, logger: logger}, nil
}

// Tick runs one scheduler pass.
func (e *Engine) Tick() {
	if e == nil || e.torn {
		return
	}
	e.scheduler.Update(e.world)
}

// SetScroll records the normalized scroll offset, clamped to [0, 1].
func (e *Engine) SetScroll(offset float64) {
	tl := e.timeline()
	if tl == nil {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if offset > 1 {
		offset = 1
	}
	tl.RawOffset = offset
}

func (e *Engine) ScrollOffset() float64 {
	if tl := e.timeline(); tl != nil {
		return tl.RawOffset
	}
	return 0
}

// PointerDown queues a press on a scene node.
func (e *Engine) PointerDown(node string) {
	if e == nil || e.torn {
		return
	}
	system.RequestPointer(e.world, node)
}

// OverlayEvent queues a lightbox event: close, play, pause or ended.
func (e *Engine) OverlayEvent(kind component.InterruptKind) {
	if e == nil || e.torn {
		return
	}
	system.RequestInterrupt(e.world, kind, 0)
}

// OpenVideo opens the lightbox directly, bypassing pointer resolution.
func (e *Engine) OpenVideo(index int) {
	if e == nil || e.torn {
		return
	}
	system.RequestInterrupt(e.world, component.InterruptOpen, index)
}

// Interact records a user gesture so refused playback can be retried.
func (e *Engine) Interact() {
	if e == nil || e.torn {
		return
	}
	system.RequestInteraction(e.world)
}

func (e *Engine) Position() float64 {
	if tl := e.timeline(); tl != nil {
		return tl.Position
	}
	return 0
}

func (e *Engine) Length() float64 {
	if tl := e.timeline(); tl != nil {
		return tl.Length
	}
	return 0
}

func (e *Engine) LightboxOpen() bool {
	if e == nil {
		return false
	}
	_, in, ok := ecs.Singleton(e.world, component.InterruptComponent.Kind())
	return ok && in.LightboxOpen
}

// Channels returns the channel table in declaration order.
func (e *Engine) Channels() []ChannelStatus {
	if e == nil {
		return nil
	}
	type ordered struct {
		status ChannelStatus
		order  int
	}
	var rows []ordered
	ecs.ForEach3(e.world, component.ChannelComponent.Kind(), component.WindowComponent.Kind(), component.AudioSourceComponent.Kind(), func(_ ecs.Entity, ch *component.Channel, win *component.Window, src *component.AudioSource) {
		rows = append(rows, ordered{
			status: ChannelStatus{
				Name:    ch.Name,
				Start:   win.Start,
				End:     win.End,
				Active:  ch.IsActive,
				Pending: ch.PendingPlay,
				Playing: src.Playing,
				Volume:  src.Volume,
			},
			order: win.Order,
		})
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].order < rows[j].order })

	out := make([]ChannelStatus, len(rows))
	for i, r := range rows {
		out[i] = r.status
	}
	return out
}

// Transports returns every transport the mounted scene holds, the master
// track's included, so the owner can release them after Teardown.
func (e *Engine) Transports() []component.Transport {
	if e == nil {
		return nil
	}
	var out []component.Transport
	ecs.ForEach(e.world, component.AudioSourceComponent.Kind(), func(_ ecs.Entity, src *component.AudioSource) {
		if src.Transport != nil {
			out = append(out, src.Transport)
		}
	})
	return out
}

// Teardown pauses and silences every transport and closes the overlay. The
// engine ignores all further input.
func (e *Engine) Teardown() {
	if e == nil || e.torn {
		return
	}
	e.torn = true
	system.Teardown(e.world, e.overlay)
	e.logger.Info("scene unmounted")
}

func (e *Engine) World() *ecs.World {
	if e == nil {
		return nil
	}
	return e.world
}

func (e *Engine) timeline() *component.Timeline {
	if e == nil {
		return nil
	}
	_, tl, ok := ecs.Singleton(e.world, component.TimelineComponent.Kind())
	if !ok {
		return nil
	}
	return tl
}
