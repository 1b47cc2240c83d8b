package states

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexciv/hexciv/internal/game/events"
)

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseStarting, "Starting"},
		{PhaseRunning, "Running"},
		{PhaseEnding, "Ending"},
		{PhaseEnded, "Ended"},
		{PhaseError, "Error"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestGamePhase_Properties(t *testing.T) {
	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnded.IsTerminal())
		assert.True(t, PhaseError.IsTerminal())
		assert.False(t, PhaseRunning.IsTerminal())
		assert.False(t, PhaseStarting.IsTerminal())
	})

	t.Run("CanReceiveActions", func(t *testing.T) {
		assert.True(t, PhaseRunning.CanReceiveActions())
		assert.False(t, PhaseStarting.CanReceiveActions())
		assert.False(t, PhaseEnded.CanReceiveActions())
	})
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseInitializing, []GamePhase{PhaseStarting, PhaseError}},
		{PhaseStarting, []GamePhase{PhaseRunning, PhaseError}},
		{PhaseRunning, []GamePhase{PhaseEnding, PhaseError}},
		{PhaseEnding, []GamePhase{PhaseEnded, PhaseError}},
		{PhaseEnded, []GamePhase{}},
		{PhaseError, []GamePhase{}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())
			for _, target := range tt.allowed {
				assert.True(t, tt.from.CanTransitionTo(target))
			}
			assert.False(t, tt.from.CanTransitionTo(tt.from))
		})
	}
}

func TestParsePhase(t *testing.T) {
	assert.Equal(t, PhaseRunning, ParsePhase("Running"))
	assert.Equal(t, PhaseEnded, ParsePhase("Ended"))
	assert.Equal(t, PhaseInitializing, ParsePhase("garbage"))
}

func newTestMachine(t *testing.T) (*StateMachine, *events.EventBus) {
	t.Helper()
	bus := events.NewEventBus()
	ctx := NewGameContext("test-game", 2, zerolog.Nop())
	return NewStateMachine(ctx, bus), bus
}

func TestStateMachine_FullLifecycle(t *testing.T) {
	sm, _ := newTestMachine(t)

	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())

	require.NoError(t, sm.TransitionTo(PhaseStarting, "setup begun"))
	require.NoError(t, sm.TransitionTo(PhaseRunning, "setup complete"))
	require.NoError(t, sm.TransitionTo(PhaseEnding, "one civilization remains"))
	require.NoError(t, sm.TransitionTo(PhaseEnded, "cleanup complete"))

	assert.Equal(t, PhaseEnded, sm.CurrentPhase())

	history := sm.GetHistory()
	require.Len(t, history, 4)
	assert.Equal(t, PhaseInitializing, history[0].From)
	assert.Equal(t, PhaseStarting, history[0].To)
	assert.Equal(t, "setup begun", history[0].Reason)
	assert.Equal(t, PhaseEnded, history[3].To)
}

func TestStateMachine_InvalidTransition(t *testing.T) {
	sm, _ := newTestMachine(t)

	err := sm.TransitionTo(PhaseEnded, "skipping ahead")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.Empty(t, sm.GetHistory())
}

func TestStateMachine_ValidationBlocksTransition(t *testing.T) {
	bus := events.NewEventBus()
	ctx := NewGameContext("test-game", 0, zerolog.Nop())
	sm := NewStateMachine(ctx, bus)

	err := sm.TransitionTo(PhaseStarting, "no civs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
}

func TestStateMachine_PublishesPhaseChangedEvent(t *testing.T) {
	sm, bus := newTestMachine(t)

	var got *events.PhaseChangedEvent
	bus.SubscribeFunc(events.TypePhaseChanged, func(e events.Event) {
		got = e.(*events.PhaseChangedEvent)
	})

	require.NoError(t, sm.TransitionTo(PhaseStarting, "setup begun"))

	require.NotNil(t, got)
	assert.Equal(t, "Initializing", got.FromPhase)
	assert.Equal(t, "Starting", got.ToPhase)
	assert.Equal(t, "setup begun", got.Reason)
	assert.Equal(t, "test-game", got.GameID())
}

func TestStateMachine_CanTransitionTo(t *testing.T) {
	sm, _ := newTestMachine(t)

	assert.True(t, sm.CanTransitionTo(PhaseStarting))
	assert.False(t, sm.CanTransitionTo(PhaseRunning))
}
