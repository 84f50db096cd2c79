package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
	"github.com/milk9111/musicstrip/scenes"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type nopTransport struct{ track string }

func (nopTransport) Play() error                        { return nil }
func (nopTransport) Pause()                             {}
func (nopTransport) SetVolume(float64)                  {}
func (nopTransport) SetCurrentTime(time.Duration) error { return nil }

func transports(missing ...string) TransportFactory {
	return func(track string) (component.Transport, error) {
		for _, m := range missing {
			if m == track {
				return nil, errors.New("not found")
			}
		}
		return nopTransport{track: track}, nil
	}
}

func TestBuildEntityFromPrefabs(t *testing.T) {
	cases := []struct {
		prefab string
		check  func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{"timeline.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			tl, ok := ecs.Get(w, e, component.TimelineComponent.Kind())
			if !ok || tl.Length != 20 || tl.Damping != 0.02 {
				t.Fatalf("unexpected timeline %+v", tl)
			}
		}},
		{"master_track.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			m, ok := ecs.Get(w, e, component.MasterTrackComponent.Kind())
			if !ok || m.Tier != -1 || m.StartDelay != 500*time.Millisecond || m.MountedAt != 5*time.Second {
				t.Fatalf("unexpected master %+v", m)
			}
			src, ok := ecs.Get(w, e, component.AudioSourceComponent.Kind())
			if !ok || src.Transport == nil || src.Track != "music/bg.wav" {
				t.Fatalf("unexpected master source %+v", src)
			}
		}},
		{"interrupt.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			in, ok := ecs.Get(w, e, component.InterruptComponent.Kind())
			if !ok || in.FadeOut != 800*time.Millisecond || in.LightboxOpen {
				t.Fatalf("unexpected interrupt %+v", in)
			}
		}},
		{"highlight.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			h, ok := ecs.Get(w, e, component.HighlightComponent.Kind())
			if !ok || h.Boost != 1.8 || h.Depressed != 0.3 || h.Neutral != 1 {
				t.Fatalf("unexpected highlight %+v", h)
			}
		}},
		{"end_card.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			c, ok := ecs.Get(w, e, component.EndCardComponent.Kind())
			if !ok || c.Threshold != 19.8 {
				t.Fatalf("unexpected end card %+v", c)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, c.prefab, &BuildContext{Transports: transports(), Now: 5 * time.Second})
			if err != nil {
				t.Fatalf("BuildEntity: %v", err)
			}
			c.check(t, w, e)
		})
	}
}

func TestBuildEntityErrors(t *testing.T) {
	cases := []struct {
		name string
		spec scenes.EntityBuildSpec
		want string
	}{
		{"no_components", scenes.EntityBuildSpec{Name: "empty"}, "does not define components"},
		{"unknown_component", scenes.EntityBuildSpec{Name: "odd", Components: map[string]any{"sprite": nil}}, `no builder for component "sprite"`},
		{"master_without_source", scenes.EntityBuildSpec{Name: "m", Components: map[string]any{"master_track": map[string]any{"threshold": 2}}}, "requires audio_source"},
		{"zero_length_timeline", scenes.EntityBuildSpec{Name: "t", Components: map[string]any{"timeline": map[string]any{"length": 0}}}, "length must be positive"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntityFromSpec(w, c.spec, nil)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build should leave no entities, got %d", n)
			}
		})
	}
}

func TestBuildTables(t *testing.T) {
	scene, err := scenes.LoadScene("musicstrip.yaml")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	core, observed := observer.New(zap.WarnLevel)
	ctx := &BuildContext{Transports: transports("sounds/metro.wav"), Logger: zap.New(core)}
	w := ecs.NewWorld()

	windows, err := BuildWindowTable(w, scene.Windows)
	if err != nil {
		t.Fatalf("BuildWindowTable: %v", err)
	}
	if len(windows) != len(scene.Windows) {
		t.Fatalf("expected %d windows, got %d", len(scene.Windows), len(windows))
	}
	for i, e := range windows {
		win, _ := ecs.Get(w, e, component.WindowComponent.Kind())
		if win.Order != i || win.ID != scene.Windows[i].ID {
			t.Fatalf("window %d out of order: %+v", i, win)
		}
		if !ecs.Has(w, e, component.WindowStateComponent.Kind()) {
			t.Fatalf("window %q missing state", win.ID)
		}
	}

	channels, err := BuildChannelTable(w, scene.Channels, ctx)
	if err != nil {
		t.Fatalf("BuildChannelTable: %v", err)
	}
	if len(channels) != 7 {
		t.Fatalf("expected 7 channels, got %d", len(channels))
	}
	for _, e := range channels {
		ch, _ := ecs.Get(w, e, component.ChannelComponent.Kind())
		win, _ := ecs.Get(w, e, component.WindowComponent.Kind())
		src, _ := ecs.Get(w, e, component.AudioSourceComponent.Kind())
		if win.Kind != component.WindowAmbient || win.Target != ch.Name {
			t.Fatalf("channel %q has wrong window %+v", ch.Name, win)
		}
		if ch.IsActive || ch.FadeIn != 600*time.Millisecond || ch.FadeOut != 400*time.Millisecond {
			t.Fatalf("unexpected channel state %+v", ch)
		}
		if (src.Transport == nil) != (ch.Name == "metro") {
			t.Fatalf("channel %q transport presence wrong", ch.Name)
		}
	}
	if observed.FilterMessage("audio track unavailable").Len() != 1 {
		t.Fatalf("expected the missing track to be logged once")
	}
}

func TestChannelFadeDefaults(t *testing.T) {
	w := ecs.NewWorld()
	ents, err := BuildChannelTable(w, []scenes.ChannelSpec{{Name: "x", Volume: 0.5, Start: 0, End: 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ch, _ := ecs.Get(w, ents[0], component.ChannelComponent.Kind())
	if ch.FadeIn != defaultFadeIn || ch.FadeOut != defaultFadeOut || ch.TargetVolume != 0.5 {
		t.Fatalf("unexpected defaults %+v", ch)
	}
}
