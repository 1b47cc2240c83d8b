package game

import (
	"github.com/hexciv/hexciv/internal/game/core"
)

// RecalculateRings rebuilds the per-ring candidate pools: for each ring
// distance from the first expansion ring up to the configured maximum, the
// currently-unclaimed, non-impassable tiles at that distance from the city
// center. The current ring advances past any ring left empty, and the dirty
// flag is cleared.
func (c *City) RecalculateRings(grid *core.Grid, claimed claimChecker) {
	maxRing := expansionRingStart + MaxExpansionRings() - 1
	c.rings = make(map[int][]core.Hex, MaxExpansionRings())

	for d := expansionRingStart; d <= maxRing; d++ {
		var candidates []core.Hex
		for _, pos := range grid.Ring(c.Center, d) {
			if !grid.TileAt(pos).Biome.Expandable() {
				continue
			}
			if c.Owns(pos) || (claimed != nil && claimed(pos)) {
				continue
			}
			candidates = append(candidates, pos)
		}
		c.rings[d] = candidates
	}

	c.ringIndex = expansionRingStart
	for c.ringIndex <= maxRing && len(c.rings[c.ringIndex]) == 0 {
		c.ringIndex++
	}
	c.ringsDirty = false
}

// RingsDirty reports whether the candidate pools need recalculation because
// a ring was exhausted since the last rebuild.
func (c *City) RingsDirty() bool { return c.ringsDirty }

// RingCandidates returns the remaining unclaimed candidates for a ring.
func (c *City) RingCandidates(distance int) []core.Hex {
	return c.rings[distance]
}

// CanExpand reports whether any ring up to the maximum still holds a tile
// the city could claim.
func (c *City) CanExpand(claimed claimChecker) bool {
	maxRing := expansionRingStart + MaxExpansionRings() - 1
	for d := c.ringIndex; d <= maxRing; d++ {
		for _, pos := range c.rings[d] {
			if c.Owns(pos) || (claimed != nil && claimed(pos)) {
				continue
			}
			return true
		}
	}
	return false
}

// AddCulture accumulates culture and performs as many expansions as the
// total affords. Culture is never spent: the thresholds 10, 15, 20, ... are
// absolute trigger points on the cumulative amount, so the first tile costs
// 10 and each further tile 5 more. Returns the tiles claimed by this call,
// in claim order. Culture keeps accumulating after the rings are exhausted;
// it simply stops buying tiles.
func (c *City) AddCulture(amount int, claimed claimChecker) []core.Hex {
	c.Culture += amount

	var gained []core.Hex
	for c.Culture >= c.CultureThreshold() {
		pos, ok := c.expandOnce(claimed)
		if !ok {
			break
		}
		c.Expansions++
		gained = append(gained, pos)
	}
	return gained
}

// expandOnce claims one tile from the current ring. Candidates claimed by a
// rival since the last recalculation are discarded on the spot; exhausting a
// ring advances to the next and marks the pools dirty so the per-turn driver
// rebuilds them.
func (c *City) expandOnce(claimed claimChecker) (core.Hex, bool) {
	maxRing := expansionRingStart + MaxExpansionRings() - 1

	for c.ringIndex <= maxRing {
		ring := c.rings[c.ringIndex]
		for len(ring) > 0 {
			pos := ring[0]
			ring = ring[1:]
			c.rings[c.ringIndex] = ring

			if c.Owns(pos) || (claimed != nil && claimed(pos)) {
				continue // claimed by a rival since the last rebuild
			}

			c.owned[pos] = struct{}{}
			if len(ring) == 0 {
				c.ringsDirty = true
			}
			return pos, true
		}
		c.ringIndex++
		c.ringsDirty = true
	}
	return core.Hex{}, false
}
