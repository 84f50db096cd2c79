package tween

import "github.com/tanema/gween/ease"

// Easing is a gween easing curve: (elapsed, begin, change, duration).
type Easing = ease.TweenFunc

var (
	Linear         Easing = ease.Linear
	EaseInOutCubic Easing = ease.InOutCubic
	Power2InOut    Easing = ease.InOutQuad
	Power2In       Easing = ease.InQuad
	Power2Out      Easing = ease.OutQuad
	SineInOut      Easing = ease.InOutSine
	SineOut        Easing = ease.OutSine
)

// Progress maps linear progress t in [0, 1] through fn.
func Progress(fn Easing, t float64) float64 {
	return float64(fn(float32(t), 0, 1, 1))
}
