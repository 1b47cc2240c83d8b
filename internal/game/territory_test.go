package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexciv/hexciv/internal/game/core"
)

func newTestCity(grid *core.Grid, center core.Hex) *City {
	return NewCity(1, "Rome 1", 0, center, grid, nil)
}

func TestNewCity_OwnsSevenTiles(t *testing.T) {
	grid := core.NewGrid(8)
	city := newTestCity(grid, core.NewHex(0, 0))

	assert.Equal(t, 7, city.OwnedCount())
	assert.True(t, city.Owns(core.NewHex(0, 0)))
	assert.Equal(t, 1, city.Population)
}

func TestNewCity_RingsStartAtDistanceTwo(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	assert.Len(t, city.RingCandidates(2), 12)
	assert.Len(t, city.RingCandidates(3), 18)
	assert.Empty(t, city.RingCandidates(1), "ring 1 is granted free at founding")
}

func TestAddCulture_FirstExpansionClaimsOneRingTwoTile(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	// Below the threshold: nothing happens.
	gained := city.AddCulture(9, nil)
	assert.Empty(t, gained)
	assert.Equal(t, 7, city.OwnedCount())

	// Crossing it: exactly one tile, drawn from ring 2, removed from the pool.
	gained = city.AddCulture(1, nil)
	require.Len(t, gained, 1)
	assert.Equal(t, 8, city.OwnedCount())
	assert.Equal(t, 2, core.NewHex(0, 0).DistanceTo(gained[0]))
	assert.Len(t, city.RingCandidates(2), 11)
	assert.NotContains(t, city.RingCandidates(2), gained[0])
	assert.Equal(t, 1, city.Expansions)
	assert.Equal(t, 10, city.Culture, "culture is cumulative, never spent")
}

func TestAddCulture_ThresholdSteps(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	require.Equal(t, 10, city.CultureThreshold())
	city.AddCulture(10, nil)
	assert.Equal(t, 15, city.CultureThreshold())
	city.AddCulture(5, nil)
	assert.Equal(t, 20, city.CultureThreshold())
	city.AddCulture(5, nil)
	assert.Equal(t, 25, city.CultureThreshold())
	assert.Equal(t, 20, city.Culture)
}

func TestAddCulture_AccumulatedCultureBuysMultipleTiles(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	// Cumulative 20 crosses the absolute thresholds 10, 15 and 20, so each
	// tile past the first costs only the 5-point step.
	gained := city.AddCulture(20, nil)

	assert.Len(t, gained, 3)
	assert.Equal(t, 10, city.OwnedCount())
	assert.Equal(t, 20, city.Culture)
	assert.Equal(t, 3, city.Expansions)
}

func TestAddCulture_SkipsTilesClaimedByRivals(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	// A rival grabbed half of ring 2 since the last recalculation.
	rival := map[core.Hex]struct{}{}
	for i, pos := range grid.Ring(core.NewHex(0, 0), 2) {
		if i%2 == 0 {
			rival[pos] = struct{}{}
		}
	}
	claimed := func(pos core.Hex) bool {
		_, ok := rival[pos]
		return ok
	}

	gained := city.AddCulture(10, claimed)

	require.Len(t, gained, 1)
	_, stolen := rival[gained[0]]
	assert.False(t, stolen, "expansion must not claim a rival's tile")
}

func TestAddCulture_MonotonicGrowth(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	prev := city.OwnedCount()
	for i := 0; i < 60; i++ {
		city.AddCulture(7, nil)
		if city.RingsDirty() {
			city.RecalculateRings(grid, nil)
		}
		assert.GreaterOrEqual(t, city.OwnedCount(), prev)
		prev = city.OwnedCount()
	}
}

func TestAddCulture_StopsAtMaxRings(t *testing.T) {
	grid := core.NewGrid(12)
	city := newTestCity(grid, core.NewHex(0, 0))

	// Rings 2..6 hold 12+18+24+30+36 = 120 candidate tiles on open grassland.
	for i := 0; i < 2000; i++ {
		city.AddCulture(1000, nil)
		if city.RingsDirty() {
			city.RecalculateRings(grid, nil)
		}
	}

	assert.Equal(t, 7+120, city.OwnedCount(), "territory is capped by the maximum ring")
	assert.False(t, city.CanExpand(nil))

	// Further culture banks without claiming anything.
	before := city.OwnedCount()
	city.AddCulture(10000, nil)
	assert.Equal(t, before, city.OwnedCount())
}

func TestRecalculateRings_ExcludesImpassableAndClaimed(t *testing.T) {
	grid := core.NewGrid(10)
	peak := core.NewHex(2, 0)
	grid.TileAt(peak).Biome = core.BiomePeaks
	deep := core.NewHex(0, 2)
	grid.TileAt(deep).Biome = core.BiomeDeepOcean
	mountain := core.NewHex(-2, 0)
	grid.TileAt(mountain).Biome = core.BiomeMountains

	taken := core.NewHex(2, -2)
	claimed := func(pos core.Hex) bool { return pos == taken }

	city := NewCity(1, "Rome 1", 0, core.NewHex(0, 0), grid, claimed)

	ring2 := city.RingCandidates(2)
	assert.NotContains(t, ring2, peak)
	assert.NotContains(t, ring2, deep)
	assert.NotContains(t, ring2, taken)
	assert.Contains(t, ring2, mountain, "mountains are expandable, only peaks and deep ocean are not")
	assert.Len(t, ring2, 9)
}

func TestExpandOnce_AdvancesRingWhenExhausted(t *testing.T) {
	grid := core.NewGrid(10)
	city := newTestCity(grid, core.NewHex(0, 0))

	// Claim all 12 ring-2 tiles: the 12th threshold is 10 + 5*11 = 65.
	gained := city.AddCulture(65, nil)

	require.Len(t, gained, 12)
	assert.True(t, city.RingsDirty(), "exhausting a ring must flag recalculation")

	// The 13th threshold is 70; five more points cross it.
	city.RecalculateRings(grid, nil)
	gained = city.AddCulture(5, nil)
	require.Len(t, gained, 1)
	assert.Equal(t, 3, core.NewHex(0, 0).DistanceTo(gained[0]), "next claim comes from ring 3")
}
