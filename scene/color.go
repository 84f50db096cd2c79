package scene

import (
	"image/color"
	"math"
)

type hsl struct {
	h, s, l float64
}

func toHSL(c color.NRGBA) hsl {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2
	if maxC == minC {
		return hsl{l: l}
	}

	d := maxC - minC
	s := d / (maxC + minC)
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return hsl{h: h / 6, s: s, l: l}
}

func (c hsl) toNRGBA(alpha uint8) color.NRGBA {
	if c.s == 0 {
		v := channel(c.l)
		return color.NRGBA{R: v, G: v, B: v, A: alpha}
	}
	q := c.l * (1 + c.s)
	if c.l >= 0.5 {
		q = c.l + c.s - c.l*c.s
	}
	p := 2*c.l - q
	return color.NRGBA{
		R: channel(hueToRGB(p, q, c.h+1.0/3)),
		G: channel(hueToRGB(p, q, c.h)),
		B: channel(hueToRGB(p, q, c.h-1.0/3)),
		A: alpha,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// saturate scales the saturation of base by amount, capped at full
// saturation.
func saturate(base color.NRGBA, amount float64) color.NRGBA {
	c := toHSL(base)
	c.s = math.Min(1, c.s*amount)
	return c.toNRGBA(base.A)
}
