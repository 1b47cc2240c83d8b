package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHex   = errors.New("hex is not on the grid")
	ErrNotAdjacent  = errors.New("hexes are not adjacent")
	ErrNotOwned     = errors.New("unit not owned by civilization")
	ErrUnreachable  = errors.New("hex is not reachable with remaining movement")
	ErrOccupied     = errors.New("hex is already occupied")
	ErrNotSettler   = errors.New("only settlers can found cities")
	ErrInvalidCiv   = errors.New("invalid civilization ID")
	ErrGameOver     = errors.New("game is over")
	ErrUnitNotFound = errors.New("unit not found")
)

// GameStateError wraps an error with the turn and phase it occurred in.
type GameStateError struct {
	Turn  int
	Phase string
	Err   error
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("turn %d, %s: %v", e.Turn, e.Phase, e.Err)
}

func (e *GameStateError) Unwrap() error { return e.Err }

// WrapGameStateError attaches turn and phase context to an error. Returns nil
// if err is nil.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &GameStateError{Turn: turn, Phase: phase, Err: err}
}
