package overlay

import (
	"errors"
	"sync"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/musicstrip/ecs/component"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

var ErrNotOpen = errors.New("overlay: lightbox is not open")

// Clipboard receives copied links.
type Clipboard interface {
	WriteText(s string) error
}

type systemClipboard struct {
	once sync.Once
	err  error
}

func (c *systemClipboard) WriteText(s string) error {
	c.once.Do(func() { c.err = clipboard.Init() })
	if c.err != nil {
		return c.err
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// Lightbox is the modal video panel and implements system.Overlay. Button
// presses are reported through the events callback; the engine decides what
// happens to the audio.
type Lightbox struct {
	catalog   *Catalog
	events    func(component.InterruptKind)
	clipboard Clipboard
	logger    *zap.Logger

	open    bool
	playing bool
	ref     Reference

	width, height int
	ui            *ebitenui.UI
	title         *widget.Text
	names         *widget.Text
	description   *widget.Text
	link          *widget.Text
	playButton    *widget.Button
}

type LightboxOption func(*Lightbox)

func WithClipboard(c Clipboard) LightboxOption {
	return func(l *Lightbox) { l.clipboard = c }
}

func WithLogger(logger *zap.Logger) LightboxOption {
	return func(l *Lightbox) { l.logger = logger }
}

// WithSize sets the layout size the panel is centered in.
func WithSize(width, height int) LightboxOption {
	return func(l *Lightbox) { l.width, l.height = width, height }
}

func NewLightbox(catalog *Catalog, events func(component.InterruptKind), opts ...LightboxOption) *Lightbox {
	l := &Lightbox{
		catalog:   catalog,
		events:    events,
		clipboard: &systemClipboard{},
		logger:    zap.NewNop(),
		width:     1280,
		height:    720,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lightbox) Open(videoIndex int) {
	l.ref = l.catalog.Reference(videoIndex)
	l.open = true
	l.playing = false
	l.refresh()
	l.logger.Info("lightbox opened",
		zap.Int("video", videoIndex),
		zap.String("url", l.ref.URL),
		zap.String("clip", l.ref.ClipPath),
	)
}

func (l *Lightbox) Close() {
	if !l.open {
		return
	}
	l.open = false
	l.playing = false
}

func (l *Lightbox) IsOpen() bool {
	return l.open
}

func (l *Lightbox) Playing() bool {
	return l.playing
}

func (l *Lightbox) Reference() Reference {
	return l.ref
}

func (l *Lightbox) Play() {
	if !l.open || l.playing {
		return
	}
	l.playing = true
	l.refresh()
	l.emit(component.InterruptPlay)
}

func (l *Lightbox) Pause() {
	if !l.open || !l.playing {
		return
	}
	l.playing = false
	l.refresh()
	l.emit(component.InterruptPause)
}

func (l *Lightbox) Ended() {
	if !l.open {
		return
	}
	l.playing = false
	l.refresh()
	l.emit(component.InterruptEnded)
}

// RequestClose hides the panel and asks the engine to resume.
func (l *Lightbox) RequestClose() {
	if !l.open {
		return
	}
	l.Close()
	l.emit(component.InterruptClose)
}

func (l *Lightbox) CopyLink() error {
	if !l.open {
		return ErrNotOpen
	}
	if err := l.clipboard.WriteText(l.ref.URL); err != nil {
		l.logger.Warn("copy link failed", zap.Error(err))
		return err
	}
	l.logger.Debug("link copied", zap.String("url", l.ref.URL))
	return nil
}

func (l *Lightbox) emit(kind component.InterruptKind) {
	if l.events != nil {
		l.events(kind)
	}
}

// Update handles input while open. Escape closes.
func (l *Lightbox) Update() {
	if !l.open {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		l.RequestClose()
		return
	}
	l.ensureUI().Update()
}

func (l *Lightbox) Draw(screen *ebiten.Image) {
	if !l.open {
		return
	}
	l.ensureUI().Draw(screen)
}

func (l *Lightbox) ensureUI() *ebitenui.UI {
	if l.ui != nil {
		return l.ui
	}
	t := newTheme()
	maxText := float64(l.width) * 0.6

	l.title = t.text("", white, maxText)
	l.names = t.text("", white, maxText)
	l.description = t.text("", mutedWhite, maxText)
	l.link = t.text("", mutedWhite, maxText)
	l.playButton = t.newButton("Play", func() {
		if l.playing {
			l.Pause()
			return
		}
		l.Play()
	})

	buttons := t.row()
	buttons.AddChild(l.playButton)
	buttons.AddChild(t.newButton("Copy link", func() { _ = l.CopyLink() }))
	buttons.AddChild(t.newButton("Close", l.RequestClose))

	panel := t.column(l.width*2/3, l.height/2)
	panel.AddChild(l.title)
	panel.AddChild(l.link)
	panel.AddChild(buttons)
	panel.AddChild(l.names)
	panel.AddChild(l.description)

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(t.backdrop),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	l.ui = &ebitenui.UI{Container: root}
	l.refresh()
	return l.ui
}

func (l *Lightbox) refresh() {
	if l.ui == nil {
		return
	}
	l.title.Label = l.ref.Key
	if l.ref.Index == 0 {
		l.title.Label = "Introduction"
	}
	l.link.Label = l.ref.PlayerURL()
	l.names.Label = ""
	if l.ref.Names != "" {
		l.names.Label = "Interviewed personalities: " + l.ref.Names
	}
	l.description.Label = l.ref.Description
	if text := l.playButton.Text(); text != nil {
		text.Label = "Play"
		if l.playing {
			text.Label = "Pause"
		}
	}
}
