package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/musicstrip/ecs/component"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrContextNotReady   = errors.New("assets: audio context not ready")
	ErrUnsupportedFormat = errors.New("assets: unsupported audio format")
	ErrReleased          = errors.New("assets: transport released")
)

const preloadWorkers = 4

// Library decodes audio assets once and hands out looping transports over
// the decoded PCM. Volume changes are scaled by the global mute.
type Library struct {
	dir        string
	sampleRate int
	logger     *zap.Logger

	mu         sync.Mutex
	ctx        *audio.Context
	pcm        map[string][]byte
	transports []*Transport
	muted      bool
}

func NewLibrary(dir string, sampleRate int, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		dir:        dir,
		sampleRate: sampleRate,
		logger:     logger,
		pcm:        make(map[string][]byte),
	}
}

// Start creates the process audio context, or adopts the one that already
// exists. Transports refuse to play until it is ready.
func (l *Library) Start() *audio.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx != nil {
		return l.ctx
	}
	if ctx := audio.CurrentContext(); ctx != nil {
		l.ctx = ctx
	} else {
		l.ctx = audio.NewContext(l.sampleRate)
	}
	return l.ctx
}

func (l *Library) ready() (*audio.Context, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx, l.ctx != nil && l.ctx.IsReady()
}

// Decode returns 16-bit stereo PCM at the library sample rate, decoding on
// first use.
func (l *Library) Decode(track string) ([]byte, error) {
	l.mu.Lock()
	if pcm, ok := l.pcm[track]; ok {
		l.mu.Unlock()
		return pcm, nil
	}
	l.mu.Unlock()

	if _, ok := decoders[strings.ToLower(path.Ext(track))]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, track)
	}
	b, err := LoadFile(l.dir, track)
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", track, err)
	}
	pcm, err := decode(l.sampleRate, track, b)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.pcm[track] = pcm
	l.mu.Unlock()
	return pcm, nil
}

type decoder func(sampleRate int, r *bytes.Reader) (io.Reader, error)

var decoders = map[string]decoder{
	".wav": func(sr int, r *bytes.Reader) (io.Reader, error) { return wav.DecodeWithSampleRate(sr, r) },
	".mp3": func(sr int, r *bytes.Reader) (io.Reader, error) { return mp3.DecodeWithSampleRate(sr, r) },
	".ogg": func(sr int, r *bytes.Reader) (io.Reader, error) { return vorbis.DecodeWithSampleRate(sr, r) },
}

func decode(sampleRate int, track string, b []byte) ([]byte, error) {
	dec, ok := decoders[strings.ToLower(path.Ext(track))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, track)
	}
	stream, err := dec(sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", track, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("assets: read %q: %w", track, err)
	}
	return pcm, nil
}

// Preload decodes tracks concurrently. The first failure cancels the rest.
func (l *Library) Preload(ctx context.Context, tracks []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadWorkers)
	for _, track := range tracks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pcm, err := l.Decode(track)
			if err != nil {
				return err
			}
			l.logger.Debug("audio decoded", zap.String("track", track), zap.Int("bytes", len(pcm)))
			return nil
		})
	}
	return g.Wait()
}

// Transport returns a new looping transport for track. It matches
// entity.TransportFactory.
func (l *Library) Transport(track string) (component.Transport, error) {
	pcm, err := l.Decode(track)
	if err != nil {
		return nil, err
	}
	t := &Transport{lib: l, track: track, pcm: pcm}
	l.mu.Lock()
	l.transports = append(l.transports, t)
	l.mu.Unlock()
	return t, nil
}

// Release closes the players behind transports handed out by this library
// and stops tracking them. Other transport values are ignored.
func (l *Library) Release(transports ...component.Transport) {
	drop := make(map[*Transport]bool, len(transports))
	for _, tr := range transports {
		if t, ok := tr.(*Transport); ok && t.lib == l {
			drop[t] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	l.mu.Lock()
	kept := l.transports[:0]
	for _, t := range l.transports {
		if !drop[t] {
			kept = append(kept, t)
		}
	}
	clear(l.transports[len(kept):])
	l.transports = kept
	l.mu.Unlock()

	for t := range drop {
		t.release()
	}
	l.logger.Debug("audio transports released", zap.Int("count", len(drop)))
}

// Live reports how many transports are still tracked.
func (l *Library) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transports)
}

func (l *Library) Muted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.muted
}

// SetMuted silences every transport without touching channel state.
func (l *Library) SetMuted(muted bool) {
	l.mu.Lock()
	l.muted = muted
	transports := append([]*Transport(nil), l.transports...)
	l.mu.Unlock()

	for _, t := range transports {
		t.applyVolume()
	}
	l.logger.Info("audio mute toggled", zap.Bool("muted", muted))
}

func (l *Library) ToggleMute() bool {
	muted := !l.Muted()
	l.SetMuted(muted)
	return muted
}

func (l *Library) gain() float64 {
	if l.Muted() {
		return 0
	}
	return 1
}
