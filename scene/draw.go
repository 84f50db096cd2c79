package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/musicstrip/sequence"
	"golang.org/x/image/font/basicfont"
)

var labelFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// Viewport maps world space to a screen of the given size centered on the
// camera.
type Viewport struct {
	Camera        sequence.Camera
	Width, Height float64
}

func (v Viewport) zoom() float64 {
	if v.Camera.Zoom <= 0 {
		return 1
	}
	return v.Camera.Zoom
}

func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	z := v.zoom()
	return (x-v.Camera.X)*z + v.Width/2, (y-v.Camera.Y)*z + v.Height/2
}

func (v Viewport) ToWorld(sx, sy float64) (float64, float64) {
	z := v.zoom()
	return (sx-v.Width/2)/z + v.Camera.X, (sy-v.Height/2)/z + v.Camera.Y
}

// PickScreen picks the node under a screen-space point.
func (g *Graph) PickScreen(v Viewport, sx, sy float64) (string, bool) {
	x, y := v.ToWorld(sx, sy)
	return g.Pick(x, y)
}

func (g *Graph) Draw(screen *ebiten.Image, v Viewport) {
	z := v.zoom()
	for _, n := range g.order {
		if !n.Visible() {
			continue
		}
		alpha := g.alpha(n)
		if alpha <= 0 {
			continue
		}
		scale := g.scale(n)
		cx, cy := n.X+n.Width/2, n.Y+n.Height/2
		w, h := n.Width*scale, n.Height*scale
		sx, sy := v.ToScreen(cx-w/2, cy-h/2)

		c := n.Color()
		c.A = uint8(float64(c.A) * alpha)
		vector.FillRect(screen, float32(sx), float32(sy), float32(w*z), float32(h*z), c, true)

		if n.Label == "" {
			continue
		}
		lx, ly := v.ToScreen(cx, n.Y+n.Height)
		op := &text.DrawOptions{}
		op.GeoM.Translate(lx, ly+4)
		op.ColorScale.ScaleWithColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff})
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, n.Label, labelFace, op)
	}
}
