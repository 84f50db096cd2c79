package assets

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

// Transport loops one decoded track. The player is created on the first
// successful Play.
type Transport struct {
	lib    *Library
	track  string
	pcm    []byte
	player *audio.Player
	volume   float64
	released bool
}

func (t *Transport) Play() error {
	if t.released {
		return ErrReleased
	}
	ctx, ok := t.lib.ready()
	if !ok {
		return ErrContextNotReady
	}
	if t.player == nil {
		loop := audio.NewInfiniteLoop(bytes.NewReader(t.pcm), int64(len(t.pcm)))
		player, err := ctx.NewPlayer(loop)
		if err != nil {
			return fmt.Errorf("assets: player %q: %w", t.track, err)
		}
		t.player = player
		t.applyVolume()
	}
	t.player.Play()
	return nil
}

func (t *Transport) Pause() {
	if t.player != nil {
		t.player.Pause()
	}
}

func (t *Transport) SetVolume(v float64) {
	t.volume = v
	t.applyVolume()
}

// Volume is the requested volume before the mute gain.
func (t *Transport) Volume() float64 {
	return t.volume
}

func (t *Transport) SetCurrentTime(d time.Duration) error {
	if t.player == nil {
		return nil
	}
	return t.player.SetPosition(d)
}

func (t *Transport) release() {
	t.released = true
	if t.player == nil {
		return
	}
	t.player.Pause()
	if err := t.player.Close(); err != nil {
		t.lib.logger.Warn("audio player close failed", zap.String("track", t.track), zap.Error(err))
	}
	t.player = nil
}

func (t *Transport) applyVolume() {
	if t.player != nil {
		t.player.SetVolume(t.volume * t.lib.gain())
	}
}
