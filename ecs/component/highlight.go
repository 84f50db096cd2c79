package component

// Highlight is the singleton saturation policy shared by all highlight
// windows. Dominant is the target currently boosted, empty when none.
type Highlight struct {
	Boost     float64
	Depressed float64
	Neutral   float64

	Dominant string
	Known    bool
}

var HighlightComponent = NewComponent[Highlight]("highlight")
