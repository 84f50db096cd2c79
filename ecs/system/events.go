package system

const (
	EventVisibilityChanged = "visibility changed"
	EventHighlightChanged  = "highlight changed"
	EventCaptionShown      = "caption shown"
	EventCaptionHidden     = "caption hidden"
	EventChannelStarted    = "channel started"
	EventChannelStopped    = "channel stopped"
	EventPlaybackDeferred  = "playback deferred"
	EventPlaybackRetried   = "playback retried"
	EventRewindFailed      = "rewind failed"
	EventMasterStarted     = "master started"
	EventMasterTier        = "master tier changed"
	EventSuspended         = "suspended"
	EventResumed           = "resumed"
	EventOverlayPlay       = "overlay play"
	EventOverlayPause      = "overlay pause"
	EventOverlayEnded      = "overlay ended"
	EventVideoUnresolved   = "video target unresolved"
	EventEndCard           = "end card"
)

// TargetEvent reports a visual command for one target or slot.
type TargetEvent struct {
	Target   string
	Slot     int
	Active   bool
	Position float64
}

// AudioEvent reports a transport level change on a channel or the master.
type AudioEvent struct {
	Name     string
	Volume   float64
	Position float64
	Err      error
}

// InterruptEvent reports a lightbox transition.
type InterruptEvent struct {
	VideoIndex int
	Node       string
	Position   float64
	Active     []string
}
