package component

// PointerRequest is a one-shot pointer press on a scene node.
type PointerRequest struct {
	Node string
}

var PointerRequestComponent = NewComponent[PointerRequest]("pointer_request")

// InteractionRequest records a user gesture that allows deferred playback to
// be retried.
type InteractionRequest struct{}

var InteractionRequestComponent = NewComponent[InteractionRequest]("interaction_request")
