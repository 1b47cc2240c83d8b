package core

// VisibilityState is the fog-of-war state of a hex for one civilization.
// State only advances from Undiscovered; it never regresses past Discovered.
type VisibilityState int

const (
	// Undiscovered tiles have never been seen.
	Undiscovered VisibilityState = iota
	// Discovered tiles were seen before but are not in sight right now.
	Discovered
	// Visible tiles are currently within sight of at least one unit.
	Visible
)

func (s VisibilityState) String() string {
	switch s {
	case Undiscovered:
		return "Undiscovered"
	case Discovered:
		return "Discovered"
	case Visible:
		return "Visible"
	default:
		return "Unknown"
	}
}
