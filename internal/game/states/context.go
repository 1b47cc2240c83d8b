package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// CivCount is the number of civilizations in the game
	CivCount int

	// Turn is the current turn number
	Turn int

	// StartTime is when the game started (PhaseRunning entered)
	StartTime time.Time

	// WinnerID is the civilization ID of the winner, -1 while undecided
	WinnerID int

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, civCount int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		CivCount: civCount,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
		WinnerID: -1,
	}
}

// Elapsed returns the time elapsed since the game entered PhaseRunning
func (gc *GameContext) Elapsed() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}
