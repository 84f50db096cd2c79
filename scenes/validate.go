package scenes

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidWindow  = errors.New("invalid window")
	ErrInvalidChannel = errors.New("invalid channel")
)

var windowKinds = map[string]bool{
	"visibility": true,
	"highlight":  true,
	"caption":    true,
}

// Validate checks the window and channel tables. Windows must be non-empty
// half-open intervals; ambient windows are declared on channels only.
func Validate(s *Scene) error {
	if s == nil {
		return errors.New("scene is nil")
	}
	var errs []error

	ids := make(map[string]bool, len(s.Windows))
	for i, w := range s.Windows {
		label := w.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		switch {
		case !windowKinds[w.Kind]:
			errs = append(errs, fmt.Errorf("window %s: unknown kind %q: %w", label, w.Kind, ErrInvalidWindow))
		case math.IsNaN(w.Start) || math.IsNaN(w.End) || !(w.Start < w.End):
			errs = append(errs, fmt.Errorf("window %s: start %v must be below end %v: %w", label, w.Start, w.End, ErrInvalidWindow))
		case w.Kind == "caption" && w.Slot < 0:
			errs = append(errs, fmt.Errorf("window %s: negative caption slot: %w", label, ErrInvalidWindow))
		case w.Kind != "caption" && w.Target == "":
			errs = append(errs, fmt.Errorf("window %s: missing target: %w", label, ErrInvalidWindow))
		}
		if w.ID != "" {
			if ids[w.ID] {
				errs = append(errs, fmt.Errorf("window %s: duplicate id: %w", label, ErrInvalidWindow))
			}
			ids[w.ID] = true
		}
	}

	names := make(map[string]bool, len(s.Channels))
	for _, c := range s.Channels {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("channel without name: %w", ErrInvalidChannel))
		case names[c.Name]:
			errs = append(errs, fmt.Errorf("channel %s: duplicate name: %w", c.Name, ErrInvalidChannel))
		case c.Volume < 0 || c.Volume > 1:
			errs = append(errs, fmt.Errorf("channel %s: volume %v outside [0, 1]: %w", c.Name, c.Volume, ErrInvalidChannel))
		case !(c.Start < c.End):
			errs = append(errs, fmt.Errorf("channel %s: start %v must be below end %v: %w", c.Name, c.Start, c.End, ErrInvalidChannel))
		case c.FadeIn < 0 || c.FadeOut < 0:
			errs = append(errs, fmt.Errorf("channel %s: negative fade: %w", c.Name, ErrInvalidChannel))
		}
		names[c.Name] = true
	}

	return errors.Join(errs...)
}
