package component

// EndCard reveals the closing navigation once the timeline nears its end.
type EndCard struct {
	Threshold float64
	Visible   bool
	Known     bool
}

var EndCardComponent = NewComponent[EndCard]("end_card")
