package component

import (
	"fmt"
	"time"
)

// Transport is the playback surface of one audio clip.
type Transport interface {
	Play() error
	Pause()
	SetVolume(v float64)
	SetCurrentTime(d time.Duration) error
}

// AudioSource wraps a Transport and mirrors the last volume and play state
// pushed to it. A nil Transport turns every call into a no-op.
type AudioSource struct {
	Name      string
	Track     string
	Transport Transport

	Volume  float64
	Playing bool
}

func (a *AudioSource) Play() error {
	if a == nil {
		return nil
	}
	if a.Transport != nil {
		if err := a.Transport.Play(); err != nil {
			a.Playing = false
			return fmt.Errorf("play %q: %w", a.Name, err)
		}
	}
	a.Playing = true
	return nil
}

func (a *AudioSource) Pause() {
	if a == nil {
		return
	}
	if a.Transport != nil {
		a.Transport.Pause()
	}
	a.Playing = false
}

func (a *AudioSource) SetVolume(v float64) {
	if a == nil {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	a.Volume = v
	if a.Transport != nil {
		a.Transport.SetVolume(v)
	}
}

func (a *AudioSource) Rewind() error {
	if a == nil || a.Transport == nil {
		return nil
	}
	if err := a.Transport.SetCurrentTime(0); err != nil {
		return fmt.Errorf("rewind %q: %w", a.Name, err)
	}
	return nil
}

var AudioSourceComponent = NewComponent[AudioSource]("audio_source")
