package core

import "fmt"

// CombatResult is the outcome of a single attack resolution. Invalid results
// carry a reason and guarantee no game state was mutated.
type CombatResult struct {
	AttackerDamage int // damage the attacker dealt to the defender
	DefenderDamage int // counterattack damage the defender dealt back
	DefenderKilled bool
	AttackerKilled bool
	Valid          bool
	Reason         string // set only when Valid is false
}

// InvalidCombat returns a combat result for a rejected attack.
func InvalidCombat(reason string) CombatResult {
	return CombatResult{Valid: false, Reason: reason}
}

// HasWinner reports whether either side died.
func (r CombatResult) HasWinner() bool { return r.DefenderKilled || r.AttackerKilled }

func (r CombatResult) String() string {
	if !r.Valid {
		return fmt.Sprintf("CombatResult[invalid: %s]", r.Reason)
	}
	return fmt.Sprintf("CombatResult[attacker dealt %d, defender dealt %d, defenderKilled=%t, attackerKilled=%t]",
		r.AttackerDamage, r.DefenderDamage, r.DefenderKilled, r.AttackerKilled)
}

// AttackTarget pairs an enemy unit with the cheapest reachable hex the
// selected unit could legally attack it from. Targets are recomputed on every
// selection and are not retained across turns.
type AttackTarget struct {
	Target    *Unit
	AttackHex Hex
	MoveCost  int // cost to reach AttackHex, excluding the attack itself
}

func (t AttackTarget) String() string {
	return fmt.Sprintf("AttackTarget[%s from %s cost %d]", t.Target, t.AttackHex, t.MoveCost)
}
