package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexciv/hexciv/internal/config"
	"github.com/hexciv/hexciv/internal/game/core"
)

func TestResolveAttack_WarriorVersusScout(t *testing.T) {
	// Warrior (attack 25, health 120) hits scout (health 80): scout drops to
	// 55 and counterattacks for 15*0.5=7, warrior drops to 113. Nobody dies.
	e := newTestEngine(t, 2, 6)
	warrior := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
	scout := placeUnit(e, 1, core.UnitScout, core.NewHex(1, 0))

	result := e.ResolveAttack(warrior, scout, core.NewHex(0, 0))

	require.True(t, result.Valid)
	assert.Equal(t, 25, result.AttackerDamage)
	assert.Equal(t, 55, scout.Health)
	assert.Equal(t, 7, result.DefenderDamage)
	assert.Equal(t, 113, warrior.Health)
	assert.False(t, result.HasWinner())
	assert.True(t, warrior.Attacked)
	assert.Equal(t, warrior.Type.MaxMovement()-1, warrior.Movement, "attack costs one movement")
}

func TestResolveAttack_Deterministic(t *testing.T) {
	run := func() core.CombatResult {
		e := newTestEngine(t, 2, 6)
		a := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
		d := placeUnit(e, 1, core.UnitScout, core.NewHex(1, 0))
		return e.ResolveAttack(a, d, core.NewHex(0, 0))
	}

	assert.Equal(t, run(), run())
}

func TestResolveAttack_CivilianDiesInstantly(t *testing.T) {
	// A settler attacked by any melee unit dies in one hit regardless of the
	// attacker's strength, and the attacker takes no counterattack.
	e := newTestEngine(t, 2, 6)
	scout := placeUnit(e, 0, core.UnitScout, core.NewHex(0, 0)) // attack 15 < settler health 100
	settler := placeUnit(e, 1, core.UnitSettler, core.NewHex(1, 0))

	result := e.ResolveAttack(scout, settler, core.NewHex(0, 0))

	require.True(t, result.Valid)
	assert.Equal(t, 100, result.AttackerDamage, "damage equals the civilian's full health")
	assert.True(t, result.DefenderKilled)
	assert.Equal(t, 0, result.DefenderDamage, "civilians never counterattack")
	assert.False(t, result.AttackerKilled)
}

func TestResolveAttack_AdvanceAfterKill(t *testing.T) {
	e := newTestEngine(t, 2, 6)
	scout := placeUnit(e, 0, core.UnitScout, core.NewHex(0, 0))
	settlerHex := core.NewHex(1, 0)
	settler := placeUnit(e, 1, core.UnitSettler, settlerHex)

	result := e.ResolveAttack(scout, settler, core.NewHex(0, 0))

	require.True(t, result.DefenderKilled)
	assert.Equal(t, settlerHex, scout.Pos, "attacker occupies the dead defender's hex")
	assert.Nil(t, e.Civilization(1).UnitByID(settler.ID))
}

func TestResolveAttack_InvalidPreconditionsDoNotMutate(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(e *Engine, attacker, defender *core.Unit)
	}{
		{"civilian attacker", func(e *Engine, a, d *core.Unit) { a.Type = core.UnitSettler }},
		{"already attacked", func(e *Engine, a, d *core.Unit) { a.Attacked = true }},
		{"dead defender", func(e *Engine, a, d *core.Unit) { d.Health = 0 }},
		{"same civilization", func(e *Engine, a, d *core.Unit) { d.OwnerID = a.OwnerID }},
		{"no movement", func(e *Engine, a, d *core.Unit) { a.Movement = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 2, 6)
			attacker := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
			defender := placeUnit(e, 1, core.UnitScout, core.NewHex(1, 0))
			tt.prepare(e, attacker, defender)

			beforeAttackerPos := attacker.Pos
			beforeDefenderHealth := defender.Health
			beforeMovement := attacker.Movement

			result := e.ResolveAttack(attacker, defender, core.NewHex(0, 0))

			require.False(t, result.Valid)
			assert.NotEmpty(t, result.Reason)
			assert.Equal(t, beforeAttackerPos, attacker.Pos)
			assert.Equal(t, beforeDefenderHealth, defender.Health)
			assert.Equal(t, beforeMovement, attacker.Movement)
		})
	}
}

func TestResolveAttack_AttackHexMustBeAdjacent(t *testing.T) {
	e := newTestEngine(t, 2, 6)
	attacker := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
	defender := placeUnit(e, 1, core.UnitScout, core.NewHex(3, 0))

	result := e.ResolveAttack(attacker, defender, core.NewHex(0, 0))

	assert.False(t, result.Valid)
}

func TestResolveAttack_CounterattackCanKill(t *testing.T) {
	e := newTestEngine(t, 2, 6)
	attacker := placeUnit(e, 0, core.UnitScout, core.NewHex(0, 0))
	defender := placeUnit(e, 1, core.UnitWarrior, core.NewHex(1, 0))
	attacker.Health = 5 // warrior counter = 25*0.5 = 12

	result := e.ResolveAttack(attacker, defender, core.NewHex(0, 0))

	require.True(t, result.Valid)
	assert.True(t, result.AttackerKilled)
	assert.False(t, result.DefenderKilled)
	assert.Nil(t, e.Civilization(0).UnitByID(attacker.ID))
	assert.True(t, result.HasWinner())
}

func TestResolveAttack_SecondAttackSameTurnRejected(t *testing.T) {
	e := newTestEngine(t, 2, 6)
	attacker := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
	placeUnit(e, 1, core.UnitWarrior, core.NewHex(1, 0))
	second := placeUnit(e, 1, core.UnitWarrior, core.NewHex(0, 1))

	first := e.ResolveAttack(attacker, e.Civilization(1).Units[0], core.NewHex(0, 0))
	require.True(t, first.Valid)

	again := e.ResolveAttack(attacker, second, core.NewHex(0, 0))
	assert.False(t, again.Valid)
}

func TestComputeAttackTargets(t *testing.T) {
	e := newTestEngine(t, 2, 8)
	warrior := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
	near := placeUnit(e, 1, core.UnitScout, core.NewHex(2, 0))
	placeUnit(e, 1, core.UnitScout, core.NewHex(-20, 20)) // far beyond reach

	targets := e.ComputeAttackTargets(warrior)

	require.Len(t, targets, 1)
	assert.Equal(t, near, targets[0].Target)
	assert.True(t, targets[0].AttackHex.IsAdjacentTo(near.Pos))
	assert.Less(t, targets[0].MoveCost, warrior.Movement, "cost must leave movement for the attack")
	assert.Equal(t, 1, targets[0].MoveCost, "cheapest adjacent hex is one step away")
}

func TestComputeAttackTargets_AdjacentEnemyCostZero(t *testing.T) {
	e := newTestEngine(t, 2, 6)
	warrior := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
	placeUnit(e, 1, core.UnitScout, core.NewHex(1, 0))

	targets := e.ComputeAttackTargets(warrior)

	require.Len(t, targets, 1)
	assert.Equal(t, core.NewHex(0, 0), targets[0].AttackHex, "attacking in place is free")
	assert.Equal(t, 0, targets[0].MoveCost)
}

func TestComputeAttackTargets_UsesConfiguredAttackCost(t *testing.T) {
	config.Set("game.combat.attack_movement_cost", 3)
	defer config.Set("game.combat.attack_movement_cost", 1)

	e := newTestEngine(t, 2, 8)
	warrior := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0)) // movement 6
	near := placeUnit(e, 1, core.UnitScout, core.NewHex(3, 0))      // best attack hex costs 2
	placeUnit(e, 1, core.UnitScout, core.NewHex(6, 0))              // best attack hex costs 5

	targets := e.ComputeAttackTargets(warrior)

	require.Len(t, targets, 1, "a pricier attack leaves less budget for the approach")
	assert.Equal(t, near, targets[0].Target)
	assert.LessOrEqual(t, targets[0].MoveCost+AttackMovementCost(), warrior.Movement)

	result := e.ResolveAttack(warrior, near, targets[0].AttackHex)
	assert.True(t, result.Valid, "every computed target must be attackable")
}

func TestComputeAttackTargets_NoneWhenAlreadyAttacked(t *testing.T) {
	e := newTestEngine(t, 2, 6)
	warrior := placeUnit(e, 0, core.UnitWarrior, core.NewHex(0, 0))
	placeUnit(e, 1, core.UnitScout, core.NewHex(1, 0))
	warrior.Attacked = true

	assert.Empty(t, e.ComputeAttackTargets(warrior))
}
