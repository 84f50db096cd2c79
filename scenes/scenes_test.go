package scenes

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedScene(t *testing.T) {
	scene, err := LoadScene("musicstrip.yaml")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	counts := map[string]int{}
	for _, w := range scene.Windows {
		counts[w.Kind]++
	}
	if counts["visibility"] != 10 || counts["highlight"] != 8 || counts["caption"] != 9 {
		t.Fatalf("unexpected window counts %v", counts)
	}
	if len(scene.Channels) != 7 {
		t.Fatalf("expected 7 channels, got %d", len(scene.Channels))
	}
	if scene.Windows[1].Target != "S2" || !math.IsInf(scene.Windows[1].End, 1) {
		t.Fatalf("expected S2 open-ended, got %+v", scene.Windows[1])
	}
	first := scene.Channels[0]
	if first.Name != "first" || first.Start != 2.3 || first.End != 6 || first.FadeIn != 600*time.Millisecond || first.FadeOut != 400*time.Millisecond {
		t.Fatalf("unexpected first channel %+v", first)
	}
	if len(scene.Captions) != 9 || scene.Captions[0].Align != "center" {
		t.Fatalf("unexpected captions %+v", scene.Captions)
	}
	if scene.Videos.Fallback != "tvintro" || len(scene.Videos.Entries) != 9 {
		t.Fatalf("unexpected video catalog %+v", scene.Videos)
	}
	if len(scene.Prefabs) != 5 {
		t.Fatalf("expected 5 prefabs, got %v", scene.Prefabs)
	}
	if scene.Credits.Title != "Credits" || len(scene.Credits.People) != 11 || len(scene.Credits.Lines) != 2 {
		t.Fatalf("unexpected credits %+v", scene.Credits)
	}
}

func TestLoadPrefabs(t *testing.T) {
	spec, err := LoadEntityBuildSpec("master_track.yaml")
	if err != nil {
		t.Fatalf("LoadEntityBuildSpec: %v", err)
	}
	master, err := DecodeComponentSpec[MasterTrackComponentSpec](spec.Components["master_track"])
	if err != nil {
		t.Fatalf("decode master_track: %v", err)
	}
	if master.StartDelay != 500*time.Millisecond || master.TierFade != time.Second || master.NearVolume != 0.10 {
		t.Fatalf("unexpected master spec %+v", master)
	}
	src, err := DecodeComponentSpec[AudioSourceComponentSpec](spec.Components["audio_source"])
	if err != nil || src.Track != "music/bg.wav" {
		t.Fatalf("unexpected audio source %+v err=%v", src, err)
	}

	none, err := DecodeComponentSpec[TimelineComponentSpec](nil)
	if err != nil || none != (TimelineComponentSpec{}) {
		t.Fatalf("nil raw should decode to zero value, got %+v err=%v", none, err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		scene   Scene
		wantErr error
	}{
		{
			name: "valid",
			scene: Scene{
				Windows:  []WindowSpec{{ID: "a", Kind: "visibility", Start: 0, End: 1, Target: "A"}, {ID: "c", Kind: "caption", Start: 0, End: 1, Slot: 0}},
				Channels: []ChannelSpec{{Name: "x", Volume: 1, Start: 0, End: 1}},
			},
		},
		{
			name:    "empty_window",
			scene:   Scene{Windows: []WindowSpec{{ID: "a", Kind: "visibility", Start: 2, End: 2, Target: "A"}}},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "ambient_kind_in_window_table",
			scene:   Scene{Windows: []WindowSpec{{ID: "a", Kind: "ambient", Start: 0, End: 1, Target: "A"}}},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "missing_target",
			scene:   Scene{Windows: []WindowSpec{{ID: "a", Kind: "highlight", Start: 0, End: 1}}},
			wantErr: ErrInvalidWindow,
		},
		{
			name: "duplicate_id",
			scene: Scene{Windows: []WindowSpec{
				{ID: "a", Kind: "visibility", Start: 0, End: 1, Target: "A"},
				{ID: "a", Kind: "visibility", Start: 1, End: 2, Target: "B"},
			}},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "channel_volume",
			scene:   Scene{Channels: []ChannelSpec{{Name: "x", Volume: 1.5, Start: 0, End: 1}}},
			wantErr: ErrInvalidChannel,
		},
		{
			name:    "duplicate_channel",
			scene:   Scene{Channels: []ChannelSpec{{Name: "x", Volume: 1, Start: 0, End: 1}, {Name: "x", Volume: 1, Start: 1, End: 2}}},
			wantErr: ErrInvalidChannel,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(&c.scene)
			if c.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	if _, ok := ModTime("timeline.yaml"); ok {
		t.Fatalf("expected no disk copy yet")
	}
	override := "name: timeline\ncomponents:\n  timeline:\n    length: 30\n    damping: 0.5\n"
	if err := os.WriteFile(filepath.Join(dir, "timeline.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := ModTime(filepath.Join(dir, "timeline.yaml")); !ok {
		t.Fatalf("expected disk copy to be found")
	}

	spec, err := LoadEntityBuildSpec("timeline.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tl, err := DecodeComponentSpec[TimelineComponentSpec](spec.Components["timeline"])
	if err != nil || tl.Length != 30 {
		t.Fatalf("expected disk override to win, got %+v err=%v", tl, err)
	}
}

func TestWatcherReloadsSceneAfterBurst(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	base, err := ScenesFS.ReadFile("musicstrip.yaml")
	if err != nil {
		t.Fatal(err)
	}
	w, err := WatchScene(dir, "musicstrip.yaml", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchScene: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "musicstrip.yaml")
	edited := bytes.Replace(base, []byte("name: musicstrip"), []byte("name: edited"), 1)
	for range 3 {
		if err := os.WriteFile(target, edited, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r := waitReload(t, w)
	if r.Err != nil {
		t.Fatalf("reload: %v", r.Err)
	}
	if r.File != "musicstrip.yaml" || r.Scene == nil || r.Scene.Name != "edited" {
		t.Fatalf("unexpected reload %+v", r)
	}
	select {
	case extra := <-w.Reloads():
		t.Fatalf("expected one reload for the burst, got another %+v", extra)
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(target, []byte("name: broken\nwindows: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := waitReload(t, w); r.Err == nil || r.Scene != nil {
		t.Fatalf("expected a load error for a broken file, got %+v", r)
	}
}

func TestWatcherCloseClosesReloads(t *testing.T) {
	w, err := WatchScene(t.TempDir(), "musicstrip.yaml", 0)
	if err != nil {
		t.Fatalf("WatchScene: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := <-w.Reloads(); ok {
		t.Fatalf("expected reloads closed")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func waitReload(t *testing.T, w *Watcher) Reload {
	t.Helper()
	select {
	case r := <-w.Reloads():
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
	return Reload{}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		fallback string
		want     color.NRGBA
		wantErr  bool
	}{
		{name: "hex", value: "#ff8000", fallback: "gray", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{name: "named", value: "white", fallback: "gray", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "blank_uses_fallback", value: "  ", fallback: "black", want: color.NRGBA{A: 255}},
		{name: "garbage", value: "not-a-color", fallback: "gray", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseColor(c.value, c.fallback)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", c.value, err)
			}
			if got != c.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", c.value, got, c.want)
			}
		})
	}
}
