// Package tween animates named float values over time.
package tween

import (
	"time"

	"github.com/tanema/gween"
)

// Callbacks are optional hooks fired from Update.
type Callbacks struct {
	OnStart    func()
	OnUpdate   func(v float64)
	OnComplete func()
}

type tween struct {
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	ease     Easing
	cb       Callbacks
	started  bool
	yoyo     bool
	leg      *gween.Tween
}

// Engine owns a set of keyed values and at most one running tween per key.
// Starting a tween on a key kills the one already running there.
type Engine struct {
	values map[string]float64
	tweens map[string]*tween
}

func New() *Engine {
	return &Engine{
		values: make(map[string]float64),
		tweens: make(map[string]*tween),
	}
}

// Animate tweens key from its current value to to over d.
func (e *Engine) Animate(key string, to float64, d time.Duration, ease Easing, cb Callbacks) {
	e.start(key, &tween{to: to, duration: d, ease: ease, cb: cb})
}

// Yoyo swings key between its current value and to forever, d each way.
func (e *Engine) Yoyo(key string, to float64, d time.Duration, ease Easing) {
	e.start(key, &tween{to: to, duration: d, ease: ease, yoyo: true})
}

func (e *Engine) start(key string, tw *tween) {
	if tw.ease == nil {
		tw.ease = Linear
	}
	tw.from = e.values[key]
	e.tweens[key] = tw
	if tw.duration <= 0 {
		e.finish(key, tw)
		return
	}
	tw.newLeg()
}

// newLeg builds the gween tween for the current direction.
func (tw *tween) newLeg() {
	tw.leg = gween.New(float32(tw.from), float32(tw.to), float32(tw.duration.Seconds()), tw.ease)
}

// Kill stops the tween on key, leaving the value where it is.
func (e *Engine) Kill(key string) {
	delete(e.tweens, key)
}

// Set kills any tween on key and writes v.
func (e *Engine) Set(key string, v float64) {
	delete(e.tweens, key)
	e.values[key] = v
}

func (e *Engine) Value(key string) (float64, bool) {
	v, ok := e.values[key]
	return v, ok
}

// ValueOr returns def for keys that were never written.
func (e *Engine) ValueOr(key string, def float64) float64 {
	if v, ok := e.values[key]; ok {
		return v
	}
	return def
}

func (e *Engine) Active(key string) bool {
	_, ok := e.tweens[key]
	return ok
}

func (e *Engine) Len() int {
	return len(e.tweens)
}

// Update advances every running tween by dt. Elapsed time is kept as a
// Duration and the leg is set to it, so float32 drift never delays the end.
func (e *Engine) Update(dt time.Duration) {
	for key, tw := range e.tweens {
		if !tw.started {
			tw.started = true
			if tw.cb.OnStart != nil {
				tw.cb.OnStart()
			}
		}
		tw.elapsed += dt
		if tw.elapsed >= tw.duration {
			if tw.yoyo {
				tw.elapsed -= tw.duration
				tw.from, tw.to = tw.to, tw.from
				tw.newLeg()
				v, _ := tw.leg.Set(float32(tw.elapsed.Seconds()))
				e.values[key] = float64(v)
				continue
			}
			e.finish(key, tw)
			continue
		}
		cur, _ := tw.leg.Set(float32(tw.elapsed.Seconds()))
		v := float64(cur)
		e.values[key] = v
		if tw.cb.OnUpdate != nil {
			tw.cb.OnUpdate(v)
		}
	}
}

func (e *Engine) finish(key string, tw *tween) {
	if e.tweens[key] == tw {
		delete(e.tweens, key)
	}
	e.values[key] = tw.to
	if tw.cb.OnUpdate != nil {
		tw.cb.OnUpdate(tw.to)
	}
	if tw.cb.OnComplete != nil {
		tw.cb.OnComplete()
	}
}
