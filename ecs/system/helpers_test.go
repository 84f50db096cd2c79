package system

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
	"go.uber.org/zap"
)

const tickDuration = 16 * time.Millisecond

var (
	errNotAllowed = errors.New("play not allowed")
	errSeek       = errors.New("seek failed")
)

type fakeTransport struct {
	playing  bool
	volume   float64
	plays    int
	pauses   int
	rewinds  int
	volumes  []float64
	failPlay bool
	failSeek bool
}

func (f *fakeTransport) Play() error {
	if f.failPlay {
		return errNotAllowed
	}
	f.plays++
	f.playing = true
	return nil
}

func (f *fakeTransport) Pause() {
	f.pauses++
	f.playing = false
}

func (f *fakeTransport) SetVolume(v float64) {
	f.volume = v
	f.volumes = append(f.volumes, v)
}

func (f *fakeTransport) SetCurrentTime(d time.Duration) error {
	if f.failSeek {
		return errSeek
	}
	if d == 0 {
		f.rewinds++
	}
	return nil
}

type visibilityCall struct {
	target  string
	visible bool
}

type fakeScene struct {
	visibility []visibilityCall
	highlight  map[string]float64
	known      []string
	globals    int
}

func newFakeScene(targets ...string) *fakeScene {
	return &fakeScene{highlight: make(map[string]float64), known: targets}
}

func (f *fakeScene) SetVisible(target string, visible bool) {
	f.visibility = append(f.visibility, visibilityCall{target: target, visible: visible})
}

func (f *fakeScene) SetHighlight(target string, amount float64) {
	f.highlight[target] = amount
}

func (f *fakeScene) SetGlobalHighlight(amount float64, exclude []string) {
	f.globals++
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	for _, name := range f.known {
		if !skip[name] {
			f.highlight[name] = amount
		}
	}
}

func (f *fakeScene) count(target string, visible bool) int {
	n := 0
	for _, c := range f.visibility {
		if c.target == target && c.visible == visible {
			n++
		}
	}
	return n
}

type captionCall struct {
	slot    int
	visible bool
}

type fakeCaptions struct {
	calls []captionCall
}

func (f *fakeCaptions) SetTextVisibility(slot int, visible bool) {
	f.calls = append(f.calls, captionCall{slot: slot, visible: visible})
}

type fakeOverlay struct {
	opened []int
	closed int
}

func (f *fakeOverlay) Open(index int) { f.opened = append(f.opened, index) }
func (f *fakeOverlay) Close()         { f.closed++ }

type fakeResolver map[string]int

func (f fakeResolver) Resolve(node string) (int, bool) {
	idx, ok := f[node]
	return idx, ok
}

type fakeSequence struct {
	position float64
	length   float64
	calls    int
}

func (f *fakeSequence) SetPosition(p float64) {
	f.position = p
	f.calls++
}

func (f *fakeSequence) Length() float64 { return f.length }

type fakeEndCard struct {
	visible bool
	calls   int
}

func (f *fakeEndCard) SetEndCardVisible(v bool) {
	f.visible = v
	f.calls++
}

type channelDef struct {
	name       string
	start, end float64
}

// the channel table of the shipped scene
var defaultChannels = []channelDef{
	{"first", 2.3, 6},
	{"2nd", 6, 8.72},
	{"hippie", 8.72, 10},
	{"cubbon", 10, 15},
	{"street", 15, 17.5},
	{"metro", 17.5, 18.10},
	{"churchStreet", 18.10, 19.8},
}

type harness struct {
	t          *testing.T
	w          *ecs.World
	clock      *ManualClock
	scene      *fakeScene
	captions   *fakeCaptions
	overlay    *fakeOverlay
	sequence   *fakeSequence
	endCard    *fakeEndCard
	sched      *ecs.Scheduler
	timeline   *component.Timeline
	master     ecs.Entity
	masterFake *fakeTransport
	channels   map[string]ecs.Entity
	transports map[string]*fakeTransport
}

func newHarness(t *testing.T, logger *zap.Logger) *harness {
	t.Helper()
	h := &harness{
		t:          t,
		w:          ecs.NewWorld(),
		clock:      &ManualClock{},
		scene:      newFakeScene(),
		captions:   &fakeCaptions{},
		overlay:    &fakeOverlay{},
		sequence:   &fakeSequence{},
		endCard:    &fakeEndCard{},
		channels:   make(map[string]ecs.Entity),
		transports: make(map[string]*fakeTransport),
	}

	h.timeline = &component.Timeline{Length: 20, Damping: 1}
	mustAdd(h.t, h.w, ecs.CreateEntity(h.w), component.TimelineComponent.Kind(), h.timeline)
	mustAdd(h.t, h.w, ecs.CreateEntity(h.w), component.InterruptComponent.Kind(), &component.Interrupt{FadeOut: 800 * time.Millisecond})
	mustAdd(h.t, h.w, ecs.CreateEntity(h.w), component.HighlightComponent.Kind(), &component.Highlight{Boost: 1.8, Depressed: 0.3, Neutral: 1})
	mustAdd(h.t, h.w, ecs.CreateEntity(h.w), component.EndCardComponent.Kind(), &component.EndCard{Threshold: 19.8})

	h.master = ecs.CreateEntity(h.w)
	h.masterFake = &fakeTransport{}
	mustAdd(h.t, h.w, h.master, component.MasterTrackComponent.Kind(), &component.MasterTrack{
		Threshold:  2,
		NearVolume: 0.10,
		FarVolume:  0.08,
		TierFade:   time.Second,
		StartDelay: 500 * time.Millisecond,
		StartFade:  2 * time.Second,
		RetryFade:  2 * time.Second,
		ResumeFade: 800 * time.Millisecond,
		Tier:       -1,
	})
	mustAdd(h.t, h.w, h.master, component.AudioSourceComponent.Kind(), &component.AudioSource{Name: "master", Transport: h.masterFake})

	for i, def := range defaultChannels {
		h.addChannel(i, def)
	}

	logger = loggerOrNop(logger)
	h.sched = ecs.NewScheduler(
		NewSmootherSystem(h.sequence),
		NewPointerSystem(fakeResolver{"P3": 3, "screen": 3}),
		NewInterruptSystem(h.clock, h.overlay),
		NewVisualSystem(h.scene),
		NewCaptionSystem(h.captions),
		NewMasterTrackSystem(h.clock),
		NewAmbientSystem(h.clock),
		NewAutoplaySystem(h.clock),
		NewFadeSystem(h.clock),
		NewEndCardSystem(h.endCard),
		NewTelemetrySystem(logger),
	)
	return h
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], value *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, value); err != nil {
		t.Fatalf("add %s: %v", kind.Name(), err)
	}
}

func (h *harness) addChannel(order int, def channelDef) {
	e := ecs.CreateEntity(h.w)
	fake := &fakeTransport{}
	mustAdd(h.t, h.w, e, component.WindowComponent.Kind(), &component.Window{ID: def.name, Kind: component.WindowAmbient, Start: def.start, End: def.end, Target: def.name, Order: order})
	mustAdd(h.t, h.w, e, component.WindowStateComponent.Kind(), &component.WindowState{})
	mustAdd(h.t, h.w, e, component.ChannelComponent.Kind(), &component.Channel{
		Name:         def.name,
		TargetVolume: 1,
		FadeIn:       600 * time.Millisecond,
		FadeOut:      400 * time.Millisecond,
	})
	mustAdd(h.t, h.w, e, component.AudioSourceComponent.Kind(), &component.AudioSource{Name: def.name, Transport: fake})
	h.channels[def.name] = e
	h.transports[def.name] = fake
}

func (h *harness) addWindow(win component.Window) ecs.Entity {
	e := ecs.CreateEntity(h.w)
	mustAdd(h.t, h.w, e, component.WindowComponent.Kind(), &win)
	mustAdd(h.t, h.w, e, component.WindowStateComponent.Kind(), &component.WindowState{})
	return e
}

// seek moves the scroll target so the next tick lands on position.
func (h *harness) seek(position float64) {
	h.timeline.RawOffset = position / h.timeline.Length
	h.step(tickDuration)
}

func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Update(h.w)
}

// run keeps ticking at the current offset for d.
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tickDuration {
		h.step(tickDuration)
	}
}

func (h *harness) channel(name string) (*component.Channel, *component.AudioSource) {
	h.t.Helper()
	e := h.channels[name]
	ch, ok := ecs.Get(h.w, e, component.ChannelComponent.Kind())
	if !ok {
		h.t.Fatalf("channel %q missing", name)
	}
	src, _ := ecs.Get(h.w, e, component.AudioSourceComponent.Kind())
	return ch, src
}

func (h *harness) masterSource() (*component.MasterTrack, *component.AudioSource) {
	m, _ := ecs.Get(h.w, h.master, component.MasterTrackComponent.Kind())
	src, _ := ecs.Get(h.w, h.master, component.AudioSourceComponent.Kind())
	return m, src
}

func (h *harness) activeChannels() []string {
	var names []string
	for _, def := range defaultChannels {
		if ch, _ := h.channel(def.name); ch.IsActive {
			names = append(names, def.name)
		}
	}
	return names
}

func (h *harness) lightboxOpen() bool {
	return lightboxOpen(h.w)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
