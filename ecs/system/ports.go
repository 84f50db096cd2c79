package system

// SceneGraph receives visibility and saturation commands for named targets.
type SceneGraph interface {
	SetVisible(target string, visible bool)
	SetHighlight(target string, amount float64)
	SetGlobalHighlight(amount float64, exclude []string)
}

// CaptionSink shows and hides caption slots.
type CaptionSink interface {
	SetTextVisibility(slot int, visible bool)
}

// SequencePlayer follows the smoothed position.
type SequencePlayer interface {
	SetPosition(position float64)
	Length() float64
}

// TargetResolver maps a picked scene node to a video index.
type TargetResolver interface {
	Resolve(node string) (int, bool)
}

// Overlay is the modal video surface.
type Overlay interface {
	Open(videoIndex int)
	Close()
}

// EndCardView reveals the closing navigation.
type EndCardView interface {
	SetEndCardVisible(visible bool)
}
