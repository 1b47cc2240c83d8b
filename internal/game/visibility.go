package game

import (
	"container/heap"

	"github.com/hexciv/hexciv/internal/game/core"
)

// ComputeVisible returns the set of hexes visible from start within the given
// visibility budget. The search has the same budgeted-Dijkstra shape as
// movement planning but uses per-hex visibility costs. Vision-blocking biomes
// (mountains, peaks) are added to the result but never expanded, so they stop
// propagation without full line-of-sight tracing.
func ComputeVisible(grid *core.Grid, start core.Hex, budget int) map[core.Hex]struct{} {
	visible := map[core.Hex]struct{}{}
	if !grid.Contains(start) {
		return visible
	}
	visible[start] = struct{}{}

	costs := map[core.Hex]int{start: 0}
	frontier := &searchQueue{{pos: start, cost: 0}}
	heap.Init(frontier)

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(searchNode)
		if current.cost > costs[current.pos] {
			continue
		}
		// Blocking terrain is a dead end: visible, never expanded through.
		if current.pos != start && grid.TileAt(current.pos).Biome.BlocksVision() {
			continue
		}

		for _, next := range grid.Neighbors(current.pos) {
			newCost := current.cost + grid.TileAt(next).Biome.VisibilityCost()
			if newCost > budget {
				continue
			}
			if prev, seen := costs[next]; seen && prev <= newCost {
				continue
			}
			costs[next] = newCost
			visible[next] = struct{}{}
			heap.Push(frontier, searchNode{pos: next, cost: newCost})
		}
	}

	return visible
}

// ComputeVisible runs the visibility search for a unit's current position
// using its type's vision budget.
func (e *Engine) ComputeVisible(unit *core.Unit) map[core.Hex]struct{} {
	return ComputeVisible(e.grid, unit.Pos, unit.Type.MaxVisibility())
}

// RefreshVisibility recomputes a civilization's fog-of-war from scratch by
// unioning the visible sets of every living unit it owns. Cities contribute
// nothing on their own; with no units nearby their surroundings regress to
// Discovered. Hexes in the union become Visible; hexes that were Visible but
// are not in the union regress to Discovered; all other states are unchanged,
// so a hex never returns to Undiscovered.
func (c *Civilization) RefreshVisibility(grid *core.Grid) {
	union := map[core.Hex]struct{}{}
	for _, u := range c.Units {
		if u.Dead() {
			continue
		}
		for pos := range ComputeVisible(grid, u.Pos, u.Type.MaxVisibility()) {
			union[pos] = struct{}{}
		}
	}

	for _, pos := range grid.Hexes() {
		if _, seen := union[pos]; seen {
			c.fog[pos] = core.Visible
		} else if c.fog[pos] == core.Visible {
			c.fog[pos] = core.Discovered
		}
	}
}

// refreshVisibility recomputes fog for one civilization. Called strictly
// after any unit spawn, move, or death.
func (e *Engine) refreshVisibility(civ *Civilization) {
	civ.RefreshVisibility(e.grid)
}

// VisibilityState reports a civilization's fog state for a hex.
func (e *Engine) VisibilityState(civID int, pos core.Hex) core.VisibilityState {
	civ := e.Civilization(civID)
	if civ == nil {
		return core.Undiscovered
	}
	return civ.VisibilityState(pos)
}
