package system

import (
	"reflect"
	"testing"
	"time"

	"github.com/milk9111/musicstrip/ecs"
	"github.com/milk9111/musicstrip/ecs/component"
)

func TestInterruptSuspendAndResumeAtSamePosition(t *testing.T) {
	h := newHarness(t, nil)
	h.seek(3)
	h.run(time.Second)

	first, src := h.channel("first")
	_, masterSrc := h.masterSource()
	if src.Volume != 1 || masterSrc.Volume <= 0 {
		t.Fatalf("expected first and master audible before the video, got %v / %v", src.Volume, masterSrc.Volume)
	}

	RequestPointer(h.w, "P3")
	h.step(tickDuration)
	if !h.lightboxOpen() {
		t.Fatalf("expected lightbox open")
	}
	if !reflect.DeepEqual(h.overlay.opened, []int{3}) {
		t.Fatalf("expected overlay opened with video 3, got %v", h.overlay.opened)
	}
	if first.IsActive {
		t.Fatalf("expected first marked inactive on suspend")
	}

	h.run(800 * time.Millisecond)
	fake := h.transports["first"]
	if src.Volume != 0 || fake.playing {
		t.Fatalf("expected first silent and paused within the interrupt fade, got %v playing=%v", src.Volume, fake.playing)
	}
	if masterSrc.Volume != 0 || h.masterFake.playing {
		t.Fatalf("expected master silent and paused, got %v playing=%v", masterSrc.Volume, h.masterFake.playing)
	}

	playsBefore := fake.plays
	RequestInterrupt(h.w, component.InterruptClose, 0)
	h.step(tickDuration)
	if h.lightboxOpen() {
		t.Fatalf("expected lightbox closed")
	}
	if !first.IsActive || fake.plays != playsBefore+1 {
		t.Fatalf("expected first restarted, active=%v plays=%d", first.IsActive, fake.plays)
	}
	if src.Volume != 0 {
		t.Fatalf("expected restart from 0, got %v", src.Volume)
	}
	f, ok := ecs.Get(h.w, h.channels["first"], component.FadeComponent.Kind())
	if !ok || f.To != 1 || f.Duration != 600*time.Millisecond {
		t.Fatalf("expected normal fade-in back to 1, got %+v ok=%v", f, ok)
	}

	h.run(800 * time.Millisecond)
	if src.Volume != 1 {
		t.Fatalf("expected first back at 1, got %v", src.Volume)
	}
	if !approx(masterSrc.Volume, 0.08) || !h.masterFake.playing {
		t.Fatalf("expected master back at its tier, got %v playing=%v", masterSrc.Volume, h.masterFake.playing)
	}
}

func TestResumeMatchesWindowsAtNewPosition(t *testing.T) {
	cases := []struct {
		name   string
		resume float64
		want   []string
	}{
		{"inside_cubbon", 12, []string{"cubbon"}},
		{"inside_church_street", 19, []string{"churchStreet"}},
		{"no_window", 1, nil},
		{"past_last_window", 19.9, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.seek(3)
			h.run(time.Second)

			RequestInterrupt(h.w, component.InterruptOpen, 2)
			h.step(tickDuration)
			h.seek(c.resume)
			h.run(time.Second)
			if got := h.activeChannels(); len(got) != 0 {
				t.Fatalf("expected no active channel while open, got %v", got)
			}

			RequestInterrupt(h.w, component.InterruptClose, 0)
			h.step(tickDuration)
			if got := h.activeChannels(); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected active %v after resume, got %v", c.want, got)
			}
			for _, def := range defaultChannels {
				if contains(c.want, def.name) {
					continue
				}
				if h.transports[def.name].playing {
					t.Fatalf("channel %s should be silent", def.name)
				}
			}
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestInterruptRequestsIgnoredInWrongState(t *testing.T) {
	h := newHarness(t, nil)
	h.seek(3)

	RequestInterrupt(h.w, component.InterruptClose, 0)
	h.step(tickDuration)
	if h.lightboxOpen() || h.transports["first"].plays != 1 {
		t.Fatalf("close while running must be a no-op")
	}

	RequestInterrupt(h.w, component.InterruptOpen, 4)
	RequestInterrupt(h.w, component.InterruptOpen, 5)
	h.step(tickDuration)
	if !reflect.DeepEqual(h.overlay.opened, []int{4}) {
		t.Fatalf("second open while suspended must be ignored, got %v", h.overlay.opened)
	}
}

func TestPointerResolution(t *testing.T) {
	cases := []struct {
		name  string
		nodes []string
		want  []int
	}{
		{"resolved_node", []string{"screen"}, []int{3}},
		{"unresolved_node", []string{"floor"}, nil},
		{"first_resolved_wins", []string{"floor", "P3", "screen"}, []int{3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.seek(1)
			for _, node := range c.nodes {
				RequestPointer(h.w, node)
			}
			h.step(tickDuration)
			if !reflect.DeepEqual(h.overlay.opened, c.want) {
				t.Fatalf("expected opened %v, got %v", c.want, h.overlay.opened)
			}
			if ecs.Count(h.w, component.PointerRequestComponent.Kind()) != 0 {
				t.Fatalf("pointer requests should be consumed")
			}
		})
	}

	t.Run("ignored_while_open", func(t *testing.T) {
		h := newHarness(t, nil)
		RequestPointer(h.w, "P3")
		h.step(tickDuration)
		RequestPointer(h.w, "P3")
		h.step(tickDuration)
		if len(h.overlay.opened) != 1 {
			t.Fatalf("expected one open, got %v", h.overlay.opened)
		}
	})
}

func TestOverlayPlaySilencesMaster(t *testing.T) {
	h := newHarness(t, nil)
	h.seek(3)
	h.run(time.Second)
	_, masterSrc := h.masterSource()

	RequestInterrupt(h.w, component.InterruptOpen, 1)
	h.step(tickDuration)
	if masterSrc.Volume == 0 {
		t.Fatalf("expected master still fading when the video starts")
	}

	RequestInterrupt(h.w, component.InterruptPlay, 0)
	h.step(tickDuration)
	if masterSrc.Volume != 0 || h.masterFake.playing {
		t.Fatalf("expected master cut at once, got %v playing=%v", masterSrc.Volume, h.masterFake.playing)
	}
	if ecs.Has(h.w, h.master, component.FadeComponent.Kind()) {
		t.Fatalf("expected master fade cancelled")
	}

	RequestInterrupt(h.w, component.InterruptPause, 0)
	RequestInterrupt(h.w, component.InterruptEnded, 0)
	h.step(tickDuration)
	if !h.lightboxOpen() || h.masterFake.playing {
		t.Fatalf("pause and end must leave audio suspended")
	}
}

func TestTeardownSilencesEverything(t *testing.T) {
	h := newHarness(t, nil)
	h.seek(3)
	h.run(time.Second)

	Teardown(h.w, h.overlay)
	for name, fake := range h.transports {
		if fake.playing || fake.volume != 0 {
			t.Fatalf("channel %s still audible after teardown", name)
		}
	}
	if h.masterFake.playing || h.masterFake.volume != 0 {
		t.Fatalf("master still audible after teardown")
	}
	if h.overlay.closed != 1 {
		t.Fatalf("expected overlay closed once, got %d", h.overlay.closed)
	}
	if ecs.Count(h.w, component.FadeComponent.Kind()) != 0 {
		t.Fatalf("expected no running fades after teardown")
	}
}
