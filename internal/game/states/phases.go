package states

import "fmt"

// GamePhase identifies where a game is in its lifecycle.
type GamePhase int

const (
	// PhaseInitializing covers game object creation.
	PhaseInitializing GamePhase = iota
	// PhaseStarting covers map generation and civilization placement.
	PhaseStarting
	// PhaseRunning covers active turn processing.
	PhaseRunning
	// PhaseEnding covers winner determination.
	PhaseEnding
	// PhaseEnded is the terminal state of a finished game.
	PhaseEnded
	// PhaseError is the terminal state after an unrecoverable failure.
	PhaseError
)

var phaseNames = map[GamePhase]string{
	PhaseInitializing: "Initializing",
	PhaseStarting:     "Starting",
	PhaseRunning:      "Running",
	PhaseEnding:       "Ending",
	PhaseEnded:        "Ended",
	PhaseError:        "Error",
}

// phaseTransitions is the complete lifecycle graph. Phases absent from the
// map (or with empty slices) are terminal.
var phaseTransitions = map[GamePhase][]GamePhase{
	PhaseInitializing: {PhaseStarting, PhaseError},
	PhaseStarting:     {PhaseRunning, PhaseError},
	PhaseRunning:      {PhaseEnding, PhaseError},
	PhaseEnding:       {PhaseEnded, PhaseError},
}

func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal reports whether the game cannot leave this phase.
func (p GamePhase) IsTerminal() bool {
	return len(phaseTransitions[p]) == 0
}

// CanReceiveActions reports whether player commands are accepted in this phase.
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the phases reachable from this one.
func (p GamePhase) AllowedTransitions() []GamePhase {
	targets := phaseTransitions[p]
	out := make([]GamePhase, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether the lifecycle graph permits moving from
// this phase to target.
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, t := range phaseTransitions[p] {
		if t == target {
			return true
		}
	}
	return false
}

// ParsePhase maps a phase name back to its GamePhase. Unknown names map to
// PhaseInitializing.
func ParsePhase(s string) GamePhase {
	for phase, name := range phaseNames {
		if name == s {
			return phase
		}
	}
	return PhaseInitializing
}
