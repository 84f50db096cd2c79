package component

import "time"

// Channel is one independently faded ambient source. Its window lives on the
// same entity as a Window of kind ambient.
//
// IsActive implies the transport is playing or fading in; !IsActive implies it
// is paused or fading out. PendingPlay marks an active channel whose Play was
// refused and waits for the next user interaction.
type Channel struct {
	Name         string
	TargetVolume float64
	FadeIn       time.Duration
	FadeOut      time.Duration

	IsActive    bool
	PendingPlay bool
}

var ChannelComponent = NewComponent[Channel]("channel")
