// Package caption draws the timed text captions and implements
// system.CaptionSink.
package caption

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/musicstrip/scenes"
	"github.com/milk9111/musicstrip/tween"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const (
	fadeDuration = 700 * time.Millisecond
	defaultColor = "#111111"
	maxWidth     = 0.35
	lineSpacing  = 16
)

type caption struct {
	spec    scenes.CaptionSpec
	key     string
	color   color.NRGBA
	align   text.Align
	visible bool
}

// Overlay holds one caption per slot. Alpha is animated on the shared tween
// engine; the host advances it.
type Overlay struct {
	captions map[int]*caption
	order    []int
	tweens   *tween.Engine
	face     text.Face
	logger   *zap.Logger
}

func New(specs []scenes.CaptionSpec, tweens *tween.Engine, logger *zap.Logger) (*Overlay, error) {
	if tweens == nil {
		tweens = tween.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Overlay{
		captions: make(map[int]*caption, len(specs)),
		tweens:   tweens,
		face:     text.NewGoXFace(basicfont.Face7x13),
		logger:   logger,
	}
	for _, spec := range specs {
		if _, dup := o.captions[spec.Slot]; dup {
			return nil, fmt.Errorf("caption: duplicate slot %d", spec.Slot)
		}
		c, err := scenes.ParseColor(spec.Color, defaultColor)
		if err != nil {
			return nil, fmt.Errorf("caption: slot %d: %w", spec.Slot, err)
		}
		key := "caption/" + strconv.Itoa(spec.Slot)
		tweens.Set(key, 0)
		o.captions[spec.Slot] = &caption{spec: spec, key: key, color: c, align: parseAlign(spec.Align)}
		o.order = append(o.order, spec.Slot)
	}
	return o, nil
}

// SetTextVisibility fades a slot in with an ease-in or out with an ease-out.
// Repeating the current state is ignored.
func (o *Overlay) SetTextVisibility(slot int, visible bool) {
	c, ok := o.captions[slot]
	if !ok {
		o.logger.Debug("caption slot unknown", zap.Int("slot", slot))
		return
	}
	if c.visible == visible {
		return
	}
	c.visible = visible

	to, ease := 0.0, tween.Easing(tween.Power2Out)
	if visible {
		to, ease = 1, tween.Power2In
	}
	o.tweens.Animate(c.key, to, fadeDuration, ease, tween.Callbacks{})
}

func (o *Overlay) Visible(slot int) bool {
	c, ok := o.captions[slot]
	return ok && c.visible
}

func (o *Overlay) Alpha(slot int) float64 {
	c, ok := o.captions[slot]
	if !ok {
		return 0
	}
	return o.tweens.ValueOr(c.key, 0)
}

// Draw renders every caption with a non-zero alpha at its screen-relative
// anchor.
func (o *Overlay) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	for _, slot := range o.order {
		c := o.captions[slot]
		alpha := o.tweens.ValueOr(c.key, 0)
		if alpha <= 0 {
			continue
		}
		lines := wrap(c.spec.Text, o.face, w*maxWidth)
		op := &text.DrawOptions{}
		op.GeoM.Translate(c.spec.X*w, c.spec.Y*h-float64(len(lines)*lineSpacing)/2)
		op.ColorScale.ScaleWithColor(c.color)
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.LineSpacing = lineSpacing
		op.PrimaryAlign = c.align
		text.Draw(screen, strings.Join(lines, "\n"), o.face, op)
	}
}

func parseAlign(value string) text.Align {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "center":
		return text.AlignCenter
	case "right":
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

// wrap breaks s into lines no wider than width. A single word wider than
// width gets a line of its own.
func wrap(s string, face text.Face, width float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if text.Advance(candidate, face) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
