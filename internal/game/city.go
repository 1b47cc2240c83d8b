package game

import (
	"sort"

	"github.com/hexciv/hexciv/internal/game/core"
)

// expansionRingStart is the first ring distance a city expands into; the
// center and its immediate neighbors are granted free at founding.
const expansionRingStart = 2

// City is a settlement owned by one civilization. The founding position is
// immutable; territory grows monotonically through culture expansion.
type City struct {
	ID         int
	Name       string
	OwnerID    int
	Center     core.Hex
	Population int

	FoodStored int

	// Production state: points accumulate against the head of the queue.
	Progress int
	Queue    []core.UnitType

	// Culture/expansion state.
	Culture    int
	Expansions int
	ringIndex  int              // current expansion ring distance
	rings      map[int][]core.Hex // unclaimed candidate tiles per ring
	ringsDirty bool

	owned  map[core.Hex]struct{}
	worked map[core.Hex]struct{}
}

// claimChecker reports whether a tile is already owned by any city.
type claimChecker func(core.Hex) bool

// NewCity founds a city at center, granting the center plus its six
// neighbors (those on the grid) as initial territory and assigning citizens
// to the best workable tiles.
func NewCity(id int, name string, ownerID int, center core.Hex, grid *core.Grid, claimed claimChecker) *City {
	c := &City{
		ID:         id,
		Name:       name,
		OwnerID:    ownerID,
		Center:     center,
		Population: 1,
		ringIndex:  expansionRingStart,
		rings:      make(map[int][]core.Hex),
		owned:      make(map[core.Hex]struct{}),
		worked:     make(map[core.Hex]struct{}),
	}

	c.owned[center] = struct{}{}
	for _, n := range grid.Neighbors(center) {
		if claimed == nil || !claimed(n) {
			c.owned[n] = struct{}{}
		}
	}

	c.RecalculateRings(grid, claimed)
	c.AssignCitizens(grid)
	return c
}

// Owns reports whether pos is part of the city's territory.
func (c *City) Owns(pos core.Hex) bool {
	_, ok := c.owned[pos]
	return ok
}

// OwnedTiles returns the city's territory in no particular order.
func (c *City) OwnedTiles() []core.Hex {
	tiles := make([]core.Hex, 0, len(c.owned))
	for pos := range c.owned {
		tiles = append(tiles, pos)
	}
	return tiles
}

// OwnedCount returns the size of the city's territory.
func (c *City) OwnedCount() int { return len(c.owned) }

// WorkedTiles returns the tiles currently worked by citizens.
func (c *City) WorkedTiles() []core.Hex {
	tiles := make([]core.Hex, 0, len(c.worked))
	for pos := range c.worked {
		tiles = append(tiles, pos)
	}
	return tiles
}

// AssignCitizens assigns population to the owned workable tiles with the
// highest total yield. The center is always worked for free and does not
// consume a citizen.
func (c *City) AssignCitizens(grid *core.Grid) {
	candidates := make([]core.Hex, 0, len(c.owned))
	for pos := range c.owned {
		if pos == c.Center {
			continue
		}
		if tile := grid.TileAt(pos); tile != nil && tile.Biome.Workable() {
			candidates = append(candidates, pos)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		yi := grid.TileAt(candidates[i]).Biome.TotalYield()
		yj := grid.TileAt(candidates[j]).Biome.TotalYield()
		if yi != yj {
			return yi > yj
		}
		// Stable order for equal yields
		if candidates[i].Q != candidates[j].Q {
			return candidates[i].Q < candidates[j].Q
		}
		return candidates[i].R < candidates[j].R
	})

	c.worked = make(map[core.Hex]struct{})
	for i := 0; i < len(candidates) && i < c.Population; i++ {
		c.worked[candidates[i]] = struct{}{}
	}
}

// FoodPerTurn is the city's food income: a fixed center yield plus the food
// yields of all worked tiles.
func (c *City) FoodPerTurn(grid *core.Grid) int {
	food := CityCenterFood()
	for pos := range c.worked {
		food += grid.TileAt(pos).Biome.FoodYield()
	}
	return food
}

// ProductionPerTurn is the city's production income: a fixed center yield
// plus the production yields of all worked tiles.
func (c *City) ProductionPerTurn(grid *core.Grid) int {
	prod := CityCenterProduction()
	for pos := range c.worked {
		prod += grid.TileAt(pos).Biome.ProductionYield()
	}
	return prod
}

// GrowthThreshold is the food required for the next population point.
func (c *City) GrowthThreshold() int {
	return c.Population * CityGrowthFactor()
}

// AddFood accumulates food and grows population when the threshold is
// crossed, carrying excess food over. Returns true if the city grew.
func (c *City) AddFood(amount int, grid *core.Grid) bool {
	c.FoodStored += amount
	grew := false
	for c.FoodStored >= c.GrowthThreshold() {
		c.FoodStored -= c.GrowthThreshold()
		c.Population++
		grew = true
	}
	if grew {
		c.AssignCitizens(grid)
	}
	return grew
}

// Enqueue appends a unit type to the production queue.
func (c *City) Enqueue(t core.UnitType) {
	c.Queue = append(c.Queue, t)
}

// CurrentProduction returns the unit type at the head of the queue and true,
// or false when the queue is empty.
func (c *City) CurrentProduction() (core.UnitType, bool) {
	if len(c.Queue) == 0 {
		return 0, false
	}
	return c.Queue[0], true
}

// AddProduction accumulates production points against the head of the queue
// and returns the unit types completed this call, in completion order.
// Leftover points carry into the next queued item.
func (c *City) AddProduction(points int) []core.UnitType {
	if len(c.Queue) == 0 {
		return nil
	}
	c.Progress += points

	var completed []core.UnitType
	for len(c.Queue) > 0 && c.Progress >= c.Queue[0].ProductionCost() {
		c.Progress -= c.Queue[0].ProductionCost()
		completed = append(completed, c.Queue[0])
		c.Queue = c.Queue[1:]
	}
	if len(c.Queue) == 0 {
		c.Progress = 0
	}
	return completed
}

// CulturePerTurn is the culture income derived from population.
func (c *City) CulturePerTurn() int {
	return 1 + c.Population/5
}

// CultureThreshold is the banked culture required for the next expansion.
// The threshold grows by a fixed step per expansion.
func (c *City) CultureThreshold() int {
	return CultureBaseThreshold() + CultureThresholdStep()*c.Expansions
}
