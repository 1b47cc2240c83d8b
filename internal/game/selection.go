package game

import (
	"github.com/hexciv/hexciv/internal/game/core"
	"github.com/hexciv/hexciv/internal/game/events"
)

// SelectUnit makes a unit the active selection and computes its reachable
// hexes and attack targets. Only the current civilization's units can be
// selected.
func (e *Engine) SelectUnit(u *core.Unit) error {
	if u == nil || u.Dead() {
		return core.ErrUnitNotFound
	}
	if u.OwnerID != e.CurrentCiv().ID {
		return core.ErrNotOwned
	}

	e.selected = u
	e.reachable = e.ComputeReachable(u)
	e.targets = e.ComputeAttackTargets(u)
	return nil
}

// SelectedUnit returns the active selection, or nil.
func (e *Engine) SelectedUnit() *core.Unit { return e.selected }

// ReachableHexes returns the movement planner output for the selection.
func (e *Engine) ReachableHexes() map[core.Hex]int { return e.reachable }

// AttackTargets returns the attack targets computed for the selection.
func (e *Engine) AttackTargets() []core.AttackTarget { return e.targets }

// ClearSelection drops the active selection and its cached plans.
func (e *Engine) ClearSelection() {
	e.selected = nil
	e.reachable = nil
	e.targets = nil
}

// MoveSelectedUnit moves the selection to dest, spending the planned cost.
// The destination must be reachable within the remaining budget, unoccupied,
// and outside rival territory. Visibility refreshes after the move and the
// selection's plans are recomputed from the new position.
func (e *Engine) MoveSelectedUnit(dest core.Hex) error {
	u := e.selected
	if u == nil {
		return core.ErrUnitNotFound
	}
	cost, ok := e.reachable[dest]
	if !ok || dest == u.Pos {
		return core.ErrUnreachable
	}
	if e.UnitAt(dest) != nil {
		return core.ErrOccupied
	}
	if e.enemyTerritory(u.OwnerID, dest) {
		return core.ErrNotOwned
	}

	from := u.Pos
	u.Pos = dest
	u.Movement -= cost

	civ := e.Civilization(u.OwnerID)
	e.refreshVisibility(civ)
	e.bus.Publish(events.NewUnitMovedEvent(e.gameID, u, from, dest, cost))

	// Re-plan from the new position with the reduced budget.
	e.reachable = e.ComputeReachable(u)
	e.targets = e.ComputeAttackTargets(u)
	return nil
}

// AttackWithSelected resolves an attack by the selection against one of its
// computed targets. Attacks on units that are not valid targets are rejected
// without mutation.
func (e *Engine) AttackWithSelected(defender *core.Unit) core.CombatResult {
	u := e.selected
	if u == nil {
		return core.InvalidCombat("no unit selected")
	}

	for _, target := range e.targets {
		if target.Target == defender {
			result := e.ResolveAttack(u, defender, target.AttackHex)
			if result.Valid && !result.AttackerKilled {
				// Attacker may have advanced; re-plan.
				e.reachable = e.ComputeReachable(u)
				e.targets = e.ComputeAttackTargets(u)
			}
			return result
		}
	}
	return core.InvalidCombat("defender is not a computed attack target")
}

// NextUnit cycles the selection to the current civilization's next unit with
// movement remaining, starting after the currently selected unit. Returns
// nil and clears the selection when no unit can still act.
func (e *Engine) NextUnit() *core.Unit {
	civ := e.CurrentCiv()
	if len(civ.Units) == 0 {
		e.ClearSelection()
		return nil
	}

	start := 0
	if e.selected != nil {
		for i, u := range civ.Units {
			if u == e.selected {
				start = i + 1
				break
			}
		}
	}

	for step := 0; step < len(civ.Units); step++ {
		u := civ.Units[(start+step)%len(civ.Units)]
		if u.Movement > 0 {
			if err := e.SelectUnit(u); err == nil {
				return u
			}
		}
	}

	e.ClearSelection()
	return nil
}
