package component

// Timeline holds the smoothed playback position every mapper reads. The host
// writes RawOffset, a normalized scroll offset in [0, 1]; only the smoother
// writes Target and Position. Damping is the per-tick approach factor in
// (0, 1].
type Timeline struct {
	RawOffset float64
	Target    float64
	Position  float64
	Length    float64
	Damping   float64
	Ticks     uint64
}

var TimelineComponent = NewComponent[Timeline]("timeline")
