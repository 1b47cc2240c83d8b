package core

import "fmt"

// UnitCategory groups unit types by their combat capabilities.
type UnitCategory int

const (
	// CategoryCivilian units cannot attack and die instantly to melee.
	CategoryCivilian UnitCategory = iota
	CategoryLandMelee
	CategoryLandRanged
	CategoryNavalMelee
	CategoryNavalRanged
)

type categoryAttrs struct {
	name             string
	canAttack        bool
	canRangedAttack  bool
	canCounterattack bool
}

var categoryTable = [...]categoryAttrs{
	CategoryCivilian:    {"Civilian", false, false, false},
	CategoryLandMelee:   {"LandMelee", true, false, true},
	CategoryLandRanged:  {"LandRanged", true, true, true},
	CategoryNavalMelee:  {"NavalMelee", true, false, true},
	CategoryNavalRanged: {"NavalRanged", true, true, true},
}

// CanAttack reports whether units of this category may initiate attacks.
func (c UnitCategory) CanAttack() bool { return categoryTable[c].canAttack }

// CanRangedAttack reports whether units of this category attack at range.
func (c UnitCategory) CanRangedAttack() bool { return categoryTable[c].canRangedAttack }

// CanCounterattack reports whether units of this category strike back when
// they survive an attack.
func (c UnitCategory) CanCounterattack() bool { return categoryTable[c].canCounterattack }

// InstantDeathVulnerable reports whether melee attacks kill units of this
// category outright, modeling civilians being captured or eliminated.
func (c UnitCategory) InstantDeathVulnerable() bool { return c == CategoryCivilian }

func (c UnitCategory) String() string { return categoryTable[c].name }

// UnitType identifies a kind of unit and defines its base stats.
type UnitType int

const (
	UnitSettler UnitType = iota
	UnitScout
	UnitWarrior
)

type unitStats struct {
	name           string
	symbol         string
	category       UnitCategory
	maxMovement    int
	maxVisibility  int
	attackStrength int
	maxHealth      int
	productionCost int
}

var unitTable = [...]unitStats{
	UnitSettler: {"Settler", "St", CategoryCivilian, 8, 6, 0, 100, 50},
	UnitScout:   {"Scout", "Sc", CategoryLandMelee, 12, 8, 15, 80, 25},
	UnitWarrior: {"Warrior", "Wr", CategoryLandMelee, 6, 4, 25, 120, 30},
}

// Category returns the combat category of this unit type.
func (t UnitType) Category() UnitCategory { return unitTable[t].category }

// MaxMovement is the movement budget units of this type start each turn with.
func (t UnitType) MaxMovement() int { return unitTable[t].maxMovement }

// MaxVisibility is the vision budget for units of this type.
func (t UnitType) MaxVisibility() int { return unitTable[t].maxVisibility }

// AttackStrength is the base damage dealt in combat.
func (t UnitType) AttackStrength() int { return unitTable[t].attackStrength }

// MaxHealth is the health points units of this type start with.
func (t UnitType) MaxHealth() int { return unitTable[t].maxHealth }

// ProductionCost is the number of production points a city spends to
// build one unit of this type.
func (t UnitType) ProductionCost() int { return unitTable[t].productionCost }

// Symbol is the two-character map marker for this unit type.
func (t UnitType) Symbol() string { return unitTable[t].symbol }

func (t UnitType) String() string {
	if t < 0 || int(t) >= len(unitTable) {
		return "Unknown"
	}
	return unitTable[t].name
}

// Unit is a single unit on the map. Units are owned by exactly one
// civilization; OwnerID is a non-owning back-reference resolved through the
// engine's civilization lookup.
type Unit struct {
	ID       int
	Type     UnitType
	OwnerID  int
	Pos      Hex
	Movement int // remaining movement points this turn
	Health   int
	Attacked bool // set once the unit has attacked this turn
}

// NewUnit creates a unit at full health and movement.
func NewUnit(id int, t UnitType, ownerID int, pos Hex) *Unit {
	return &Unit{
		ID:       id,
		Type:     t,
		OwnerID:  ownerID,
		Pos:      pos,
		Movement: t.MaxMovement(),
		Health:   t.MaxHealth(),
	}
}

// Refresh resets the movement budget and attack flag at the start of the
// owning civilization's turn.
func (u *Unit) Refresh() {
	u.Movement = u.Type.MaxMovement()
	u.Attacked = false
}

// TakeDamage reduces health, clamping at zero, and reports whether the unit
// died from this damage.
func (u *Unit) TakeDamage(damage int) bool {
	u.Health -= damage
	if u.Health < 0 {
		u.Health = 0
	}
	return u.Dead()
}

// Dead reports whether the unit has no health remaining.
func (u *Unit) Dead() bool { return u.Health <= 0 }

// CanAttack reports whether this unit's category permits attacking.
func (u *Unit) CanAttack() bool { return u.Type.Category().CanAttack() }

// CanCounterattack reports whether this unit strikes back when attacked.
func (u *Unit) CanCounterattack() bool { return u.Type.Category().CanCounterattack() }

// CanAttackThisTurn reports whether the unit may still attack this turn.
func (u *Unit) CanAttackThisTurn() bool { return u.CanAttack() && !u.Attacked }

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d at %s HP:%d/%d", u.Type, u.ID, u.Pos, u.Health, u.Type.MaxHealth())
}
