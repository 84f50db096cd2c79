package component

import "time"

// Interrupt is the singleton lightbox state. While LightboxOpen is true no
// position driven fade-in may start.
type Interrupt struct {
	LightboxOpen bool
	VideoIndex   int
	FadeOut      time.Duration
}

var InterruptComponent = NewComponent[Interrupt]("interrupt")

type InterruptKind string

const (
	InterruptOpen  InterruptKind = "open"
	InterruptClose InterruptKind = "close"
	InterruptPlay  InterruptKind = "play"
	InterruptPause InterruptKind = "pause"
	InterruptEnded InterruptKind = "ended"
)

// InterruptRequest is a one-shot request consumed and destroyed by the
// interrupt system. Requests share one store so arrival order is kept.
type InterruptRequest struct {
	Kind  InterruptKind
	Index int
}

var InterruptRequestComponent = NewComponent[InterruptRequest]("interrupt_request")
