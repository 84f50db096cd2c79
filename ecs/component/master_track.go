package component

import "time"

// MasterTrack is the background bed under the ambient channels. Its level is
// picked from two tiers split at Threshold. Tier is -1 until the first start.
type MasterTrack struct {
	Threshold  float64
	NearVolume float64
	FarVolume  float64

	TierFade   time.Duration
	StartDelay time.Duration
	StartFade  time.Duration
	RetryFade  time.Duration
	ResumeFade time.Duration

	MountedAt   time.Duration
	Started     bool
	PendingPlay bool
	Tier        int
}

// TierFor returns the tier index and its volume for a timeline position.
func (m MasterTrack) TierFor(position float64) (int, float64) {
	if position >= m.Threshold {
		return 1, m.FarVolume
	}
	return 0, m.NearVolume
}

var MasterTrackComponent = NewComponent[MasterTrack]("master_track")
