package game

import (
	"github.com/hexciv/hexciv/internal/game/core"
	"github.com/hexciv/hexciv/internal/game/events"
)

// ResolveAttack resolves one attack: validate, reposition the attacker onto
// the attack hex, exchange damage (with counterattack), handle deaths, and
// return the result. Invalid preconditions return an invalid CombatResult
// with a reason and mutate nothing. Once the attacker has repositioned the
// resolution is committed; there is no rollback.
func (e *Engine) ResolveAttack(attacker, defender *core.Unit, attackHex core.Hex) core.CombatResult {
	// Validate
	if attacker == nil || defender == nil {
		return core.InvalidCombat("missing attacker or defender")
	}
	if !attacker.CanAttack() {
		return core.InvalidCombat("attacker category cannot attack")
	}
	if attacker.Attacked {
		return core.InvalidCombat("attacker has already attacked this turn")
	}
	if attacker.Dead() || defender.Dead() {
		return core.InvalidCombat("combatant is already dead")
	}
	if attacker.OwnerID == defender.OwnerID {
		return core.InvalidCombat("units belong to the same civilization")
	}
	if attacker.Movement < AttackMovementCost() {
		return core.InvalidCombat("insufficient movement to attack")
	}
	if !e.grid.Contains(attackHex) || !attackHex.IsAdjacentTo(defender.Pos) {
		return core.InvalidCombat("attack hex is not adjacent to the defender")
	}

	// Reposition: committed from here on.
	attacker.Pos = attackHex
	attacker.Movement -= AttackMovementCost()

	// DamageExchange
	result := exchangeDamage(attacker, defender, CounterattackMultiplier())

	// DeathHandling
	defenderHex := defender.Pos
	if result.DefenderKilled && !result.AttackerKilled {
		attacker.Pos = defenderHex // advance after kill
	}
	if result.DefenderKilled {
		e.removeUnit(defender)
	}
	if result.AttackerKilled {
		e.removeUnit(attacker)
	}
	attacker.Attacked = true

	if attackerCiv := e.Civilization(attacker.OwnerID); attackerCiv != nil {
		e.refreshVisibility(attackerCiv)
	}
	if defenderCiv := e.Civilization(defender.OwnerID); defenderCiv != nil {
		e.refreshVisibility(defenderCiv)
	}

	e.bus.Publish(events.NewCombatResolvedEvent(e.gameID, attacker, defender, result))
	e.logger.Info().
		Str("attacker", attacker.String()).
		Str("defender", defender.String()).
		Str("result", result.String()).
		Msg("Combat resolved")

	return result
}

// exchangeDamage applies the damage exchange to both units and reports what
// happened. A civilian defender hit by a melee attacker takes its full
// current health as damage. A surviving defender whose category permits it
// counterattacks at the given multiplier of its attack strength.
func exchangeDamage(attacker, defender *core.Unit, counterMultiplier float64) core.CombatResult {
	result := core.CombatResult{Valid: true}

	attackerCat := attacker.Type.Category()
	if defender.Type.Category().InstantDeathVulnerable() &&
		attackerCat.CanAttack() && !attackerCat.CanRangedAttack() {
		result.AttackerDamage = defender.Health
	} else {
		result.AttackerDamage = attacker.Type.AttackStrength()
	}
	result.DefenderKilled = defender.TakeDamage(result.AttackerDamage)

	if !result.DefenderKilled && defender.CanCounterattack() {
		result.DefenderDamage = int(float64(defender.Type.AttackStrength()) * counterMultiplier)
		result.AttackerKilled = attacker.TakeDamage(result.DefenderDamage)
	}

	return result
}

// ComputeAttackTargets enumerates every enemy unit the selected unit could
// attack this turn, paired with the cheapest reachable hex adjacent to it.
// The move cost must leave movement for the attack itself, so only hexes
// with cost strictly below the remaining budget qualify. Hexes occupied by
// any unit or inside an enemy city's territory are not valid attack
// positions (the unit's own current hex always is).
func (e *Engine) ComputeAttackTargets(unit *core.Unit) []core.AttackTarget {
	if unit == nil || !unit.CanAttackThisTurn() {
		return nil
	}

	reachable := e.ComputeReachable(unit)
	var targets []core.AttackTarget

	for _, civ := range e.civs {
		if civ.ID == unit.OwnerID {
			continue
		}
		for _, enemy := range civ.Units {
			best, found := e.bestAttackHex(unit, enemy, reachable)
			if found {
				targets = append(targets, core.AttackTarget{
					Target:    enemy,
					AttackHex: best.pos,
					MoveCost:  best.cost,
				})
			}
		}
	}
	return targets
}

func (e *Engine) bestAttackHex(unit, enemy *core.Unit, reachable map[core.Hex]int) (searchNode, bool) {
	best := searchNode{cost: unit.Movement}
	found := false

	consider := func(pos core.Hex, cost int) {
		if cost+AttackMovementCost() > unit.Movement {
			return // nothing left for the attack itself
		}
		if pos != unit.Pos {
			if e.UnitAt(pos) != nil {
				return
			}
			if e.enemyTerritory(unit.OwnerID, pos) {
				return
			}
		}
		if !found || cost < best.cost {
			best = searchNode{pos: pos, cost: cost}
			found = true
		}
	}

	for _, pos := range enemy.Pos.Neighbors() {
		if cost, ok := reachable[pos]; ok {
			consider(pos, cost)
		}
	}
	return best, found
}

// enemyTerritory reports whether pos belongs to a rival civilization's city.
func (e *Engine) enemyTerritory(ownerID int, pos core.Hex) bool {
	for _, civ := range e.civs {
		if civ.ID == ownerID {
			continue
		}
		if civ.OwnsTile(pos) {
			return true
		}
	}
	return false
}
