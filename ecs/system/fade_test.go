package system

import (
	"testing"
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

func TestFadeValueAt(t *testing.T) {
	f := component.Fade{From: 0, To: 1, Duration: 600 * time.Millisecond, StartedAt: time.Second}
	cases := []struct {
		name     string
		now      time.Duration
		want     float64
		wantDone bool
	}{
		{"before_start", 900 * time.Millisecond, 0, false},
		{"at_start", time.Second, 0, false},
		{"half_way", 1300 * time.Millisecond, 0.5, false},
		{"at_end", 1600 * time.Millisecond, 1, true},
		{"after_end", 3 * time.Second, 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, done := f.ValueAt(c.now)
			if !approx(got, c.want) || done != c.wantDone {
				t.Fatalf("ValueAt(%v) = %v, %v; want %v, %v", c.now, got, done, c.want, c.wantDone)
			}
		})
	}

	t.Run("zero_duration_is_immediate", func(t *testing.T) {
		got, done := component.Fade{From: 1, To: 0}.ValueAt(0)
		if got != 0 || !done {
			t.Fatalf("expected immediate completion, got %v %v", got, done)
		}
	})
}

func newFadeWorld(t *testing.T) (*ecs.World, ecs.Entity, *fakeTransport, *ManualClock, *FadeSystem) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	fake := &fakeTransport{playing: true}
	mustAdd(t, w, e, component.AudioSourceComponent.Kind(), &component.AudioSource{Name: "ch", Transport: fake, Playing: true})
	clock := &ManualClock{}
	return w, e, fake, clock, NewFadeSystem(clock)
}

func TestFadeRampAndPause(t *testing.T) {
	cases := []struct {
		name      string
		from, to  float64
		pause     bool
		wantPause bool
	}{
		{"fade_in_keeps_playing", 0, 1, false, false},
		{"fade_out_pauses", 1, 0, true, true},
		{"fade_down_not_to_zero_keeps_playing", 1, 0.5, true, false},
		{"fade_out_without_pause", 1, 0, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, e, fake, clock, fs := newFadeWorld(t)
			src, _ := ecs.Get(w, e, component.AudioSourceComponent.Kind())
			src.SetVolume(c.from)

			StartFade(w, e, c.to, 400*time.Millisecond, c.pause, clock.Now())
			for i := 0; i < 30; i++ {
				clock.Advance(tickDuration)
				fs.Update(w)
			}
			if !approx(fake.volume, c.to) {
				t.Fatalf("expected final volume %v, got %v", c.to, fake.volume)
			}
			if ecs.Has(w, e, component.FadeComponent.Kind()) {
				t.Fatalf("expected fade removed on completion")
			}
			if paused := fake.pauses > 0; paused != c.wantPause {
				t.Fatalf("expected paused=%v, got %v", c.wantPause, paused)
			}
		})
	}
}

func TestFadeCancelAndReplace(t *testing.T) {
	w, e, fake, clock, fs := newFadeWorld(t)

	StartFade(w, e, 1, 600*time.Millisecond, false, clock.Now())
	for i := 0; i < 12; i++ {
		clock.Advance(tickDuration)
		fs.Update(w)
	}
	mid := fake.volume
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected a partial ramp, got %v", mid)
	}

	StartFade(w, e, 1, 600*time.Millisecond, false, clock.Now())
	if ecs.Count(w, component.FadeComponent.Kind()) != 1 {
		t.Fatalf("expected a single fade after replace")
	}
	f, _ := ecs.Get(w, e, component.FadeComponent.Kind())
	if f.From != mid || f.StartedAt != clock.Now() {
		t.Fatalf("replacement should start from %v at %v, got %+v", mid, clock.Now(), *f)
	}

	prev := mid
	for i := 0; i < 60; i++ {
		clock.Advance(tickDuration)
		fs.Update(w)
		if fake.volume < prev-1e-12 {
			t.Fatalf("tick %d: volume went backwards %v -> %v", i, prev, fake.volume)
		}
		prev = fake.volume
	}
	if fake.volume != 1 {
		t.Fatalf("expected to settle at 1, got %v", fake.volume)
	}
}

func TestStartFadeZeroDuration(t *testing.T) {
	w, e, fake, clock, _ := newFadeWorld(t)
	StartFade(w, e, 1, 600*time.Millisecond, false, clock.Now())
	StartFade(w, e, 0, 0, true, clock.Now())
	if ecs.Has(w, e, component.FadeComponent.Kind()) {
		t.Fatalf("immediate fade should cancel the running one")
	}
	if fake.volume != 0 || fake.playing {
		t.Fatalf("expected silent and paused, got volume=%v playing=%v", fake.volume, fake.playing)
	}
}
