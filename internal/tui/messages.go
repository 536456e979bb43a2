package tui

// SelectionChangedMsg reports a new active name on a segment gauge or
// legend. Active is empty when the selection was cleared.
type SelectionChangedMsg struct {
	Gauge  string
	Active string
}
