package scenes

import (
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor decodes a CSS color string. A blank value decodes fallback
// instead.
func ParseColor(value, fallback string) (color.NRGBA, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
