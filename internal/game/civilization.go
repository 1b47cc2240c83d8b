package game

import (
	"github.com/hexciv/hexciv/internal/game/core"
)

// Civilization owns a set of units and cities and tracks its private
// fog-of-war over the grid. Units and cities refer back to it by OwnerID
// only; the engine resolves the reference.
type Civilization struct {
	ID     int
	Name   string
	Units  []*core.Unit
	Cities []*City

	// fog maps hexes to their visibility state; absent means Undiscovered.
	fog map[core.Hex]core.VisibilityState
}

// NewCivilization creates an empty civilization.
func NewCivilization(id int, name string) *Civilization {
	return &Civilization{
		ID:   id,
		Name: name,
		fog:  make(map[core.Hex]core.VisibilityState),
	}
}

// Alive reports whether the civilization still has any units or cities.
func (c *Civilization) Alive() bool {
	return len(c.Units) > 0 || len(c.Cities) > 0
}

// AddUnit appends a unit to the civilization's collection.
func (c *Civilization) AddUnit(u *core.Unit) {
	c.Units = append(c.Units, u)
}

// RemoveUnit removes the unit with the given ID. Returns false if absent.
func (c *Civilization) RemoveUnit(id int) bool {
	for i, u := range c.Units {
		if u.ID == id {
			c.Units = append(c.Units[:i], c.Units[i+1:]...)
			return true
		}
	}
	return false
}

// UnitByID returns the unit with the given ID, or nil.
func (c *Civilization) UnitByID(id int) *core.Unit {
	for _, u := range c.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UnitAt returns the civilization's unit standing on pos, or nil.
func (c *Civilization) UnitAt(pos core.Hex) *core.Unit {
	for _, u := range c.Units {
		if u.Pos == pos {
			return u
		}
	}
	return nil
}

// AddCity appends a city to the civilization's collection.
func (c *Civilization) AddCity(city *City) {
	c.Cities = append(c.Cities, city)
}

// CityAt returns the civilization's city centered on pos, or nil.
func (c *Civilization) CityAt(pos core.Hex) *City {
	for _, city := range c.Cities {
		if city.Center == pos {
			return city
		}
	}
	return nil
}

// OwnsTile reports whether any of the civilization's cities owns pos.
func (c *Civilization) OwnsTile(pos core.Hex) bool {
	for _, city := range c.Cities {
		if city.Owns(pos) {
			return true
		}
	}
	return false
}

// VisibilityState returns the fog state for a hex.
func (c *Civilization) VisibilityState(pos core.Hex) core.VisibilityState {
	return c.fog[pos]
}

// DiscoveredCount counts hexes that have been seen at least once.
func (c *Civilization) DiscoveredCount() int {
	n := 0
	for _, state := range c.fog {
		if state != core.Undiscovered {
			n++
		}
	}
	return n
}
