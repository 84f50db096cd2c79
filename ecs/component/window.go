package component

type WindowKind string

const (
	WindowVisibility WindowKind = "visibility"
	WindowHighlight  WindowKind = "highlight"
	WindowCaption    WindowKind = "caption"
	WindowAmbient    WindowKind = "ambient"
)

// Window binds a half-open position interval [Start, End) to one effect.
// Target names a scene node or a channel; Slot is used by caption windows.
// Order is the declaration index and breaks ties between overlapping windows.
type Window struct {
	ID     string
	Kind   WindowKind
	Start  float64
	End    float64
	Target string
	Slot   int
	Order  int
}

func (w Window) Contains(position float64) bool {
	return position >= w.Start && position < w.End
}

var WindowComponent = NewComponent[Window]("window")

// WindowState is the edge bookkeeping owned by the mapper for the window's
// kind. Known stays false until the first evaluation.
type WindowState struct {
	Active bool
	Known  bool
}

var WindowStateComponent = NewComponent[WindowState]("window_state")
