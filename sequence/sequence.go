// Package sequence plays the camera keyframe track at the smoothed timeline
// position.
package sequence

import (
	"sort"

	"github.com/milk9111/musicstrip/scenes"
	"github.com/milk9111/musicstrip/tween"
)

// Camera is the camera pose at one position.
type Camera struct {
	X    float64
	Y    float64
	Zoom float64
}

// Player implements system.SequencePlayer over a keyframe list.
type Player struct {
	keyframes []scenes.KeyframeSpec
	length    float64
	position  float64
	camera    Camera
}

// NewPlayer sorts keyframes by position. The track length is the last
// keyframe position unless length is positive.
func NewPlayer(keyframes []scenes.KeyframeSpec, length float64) *Player {
	kfs := append([]scenes.KeyframeSpec(nil), keyframes...)
	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Position < kfs[j].Position })
	if length <= 0 && len(kfs) > 0 {
		length = kfs[len(kfs)-1].Position
	}
	p := &Player{keyframes: kfs, length: length}
	p.SetPosition(0)
	return p
}

func (p *Player) Length() float64 {
	return p.length
}

func (p *Player) Position() float64 {
	return p.position
}

func (p *Player) SetPosition(position float64) {
	p.position = position
	p.camera = Interpolate(p.keyframes, position)
}

func (p *Player) Camera() Camera {
	return p.camera
}

// Interpolate eases between the keyframes around position and holds the
// first and last poses outside the track.
func Interpolate(keyframes []scenes.KeyframeSpec, position float64) Camera {
	if len(keyframes) == 0 {
		return Camera{Zoom: 1}
	}

	first, last := keyframes[0], keyframes[len(keyframes)-1]
	if position <= first.Position {
		return pose(first)
	}
	if position >= last.Position {
		return pose(last)
	}

	i := sort.Search(len(keyframes), func(i int) bool { return keyframes[i].Position > position })
	prev, next := keyframes[i-1], keyframes[i]

	span := next.Position - prev.Position
	if span == 0 {
		return pose(next)
	}
	t := tween.Progress(tween.EaseInOutCubic, (position-prev.Position)/span)

	return Camera{
		X:    lerp(prev.X, next.X, t),
		Y:    lerp(prev.Y, next.Y, t),
		Zoom: lerp(zoomOf(prev), zoomOf(next), t),
	}
}

func pose(kf scenes.KeyframeSpec) Camera {
	return Camera{X: kf.X, Y: kf.Y, Zoom: zoomOf(kf)}
}

func zoomOf(kf scenes.KeyframeSpec) float64 {
	if kf.Zoom <= 0 {
		return 1
	}
	return kf.Zoom
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
