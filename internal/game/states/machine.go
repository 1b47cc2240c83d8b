package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/hexciv/hexciv/internal/game/events"
)

// phaseHooks bundles the lifecycle callbacks for one phase. Any hook may be
// nil. validate runs before the transition commits; enter runs after the
// phase changes and rolls the transition back on error; exit runs when the
// phase is left and its error is logged but does not stop the transition.
type phaseHooks struct {
	validate func(ctx *GameContext) error
	enter    func(ctx *GameContext) error
	exit     func(ctx *GameContext) error
}

func requireCivs(ctx *GameContext) error {
	if ctx.CivCount < 1 {
		return fmt.Errorf("need at least 1 civilization, got %d", ctx.CivCount)
	}
	return nil
}

// lifecycleHooks holds the built-in behavior of each phase.
var lifecycleHooks = map[GamePhase]phaseHooks{
	PhaseStarting: {
		validate: requireCivs,
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().Int("civilizations", ctx.CivCount).Msg("Starting game setup")
			return nil
		},
	},
	PhaseRunning: {
		validate: requireCivs,
		enter: func(ctx *GameContext) error {
			ctx.StartTime = time.Now()
			ctx.Logger.Info().Time("start_time", ctx.StartTime).Msg("Game started")
			return nil
		},
		exit: func(ctx *GameContext) error {
			ctx.Logger.Info().Dur("elapsed", ctx.Elapsed()).Int("turn", ctx.Turn).Msg("Turn processing finished")
			return nil
		},
	},
	PhaseEnding: {
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().Int("winner_id", ctx.WinnerID).Int("turn", ctx.Turn).Msg("Game ending")
			return nil
		},
	},
	PhaseEnded: {
		enter: func(ctx *GameContext) error {
			ctx.Logger.Info().Int("winner_id", ctx.WinnerID).Dur("duration", ctx.Elapsed()).Msg("Game ended")
			return nil
		},
	},
	PhaseError: {
		enter: func(ctx *GameContext) error {
			ctx.Logger.Error().Err(ctx.Error).Msg("Game entered error state")
			return nil
		},
	},
}

// Transition is one recorded phase change.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine drives a game through its lifecycle phases, enforcing the
// transition graph and keeping a history of every change. Each successful
// transition publishes a PhaseChanged event.
type StateMachine struct {
	mu      sync.RWMutex
	phase   GamePhase
	hooks   map[GamePhase]phaseHooks
	context *GameContext
	history []Transition
	bus     *events.EventBus
}

// NewStateMachine creates a machine in PhaseInitializing. The bus may be nil
// when no event delivery is wanted.
func NewStateMachine(ctx *GameContext, bus *events.EventBus) *StateMachine {
	return &StateMachine{
		phase:   PhaseInitializing,
		hooks:   lifecycleHooks,
		context: ctx,
		history: make([]Transition, 0, 8),
		bus:     bus,
	}
}

// CurrentPhase returns the phase the machine is in.
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// CanTransitionTo reports whether the machine may move to the target phase.
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase.CanTransitionTo(target)
}

// TransitionTo moves the machine to the target phase if the lifecycle graph
// and the target's validation allow it.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.phase
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}

	targetHooks := sm.hooks[target]
	if targetHooks.validate != nil {
		if err := targetHooks.validate(sm.context); err != nil {
			return fmt.Errorf("%s validation failed: %w", target, err)
		}
	}

	if exit := sm.hooks[from].exit; exit != nil {
		if err := exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting phase")
		}
	}

	sm.phase = target
	if targetHooks.enter != nil {
		if err := targetHooks.enter(sm.context); err != nil {
			sm.phase = from
			return fmt.Errorf("failed to enter %s: %w", target, err)
		}
	}

	sm.history = append(sm.history, Transition{
		From:      from,
		To:        target,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.bus != nil {
		sm.bus.Publish(events.NewPhaseChangedEvent(
			sm.context.GameID, from.String(), target.String(), reason))
	}

	sm.context.Logger.Info().
		Str("from_phase", from.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("Phase transition completed")
	return nil
}

// GetHistory returns a copy of the recorded transitions.
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]Transition, len(sm.history))
	copy(out, sm.history)
	return out
}

// GetContext returns the context shared with the hooks.
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}
