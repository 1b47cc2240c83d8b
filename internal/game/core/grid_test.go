package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridShape(t *testing.T) {
	tests := []struct {
		radius   int
		expected int // 1 + 3*R*(R+1)
	}{
		{0, 1},
		{1, 7},
		{2, 19},
		{5, 91},
		{20, 1261},
	}

	for _, tt := range tests {
		g := NewGrid(tt.radius)
		assert.Equal(t, tt.expected, g.Len(), "radius %d", tt.radius)
		assert.Len(t, g.Hexes(), tt.expected)
	}
}

func TestGridContains(t *testing.T) {
	g := NewGrid(3)

	assert.True(t, g.Contains(Hex{0, 0}))
	assert.True(t, g.Contains(Hex{3, 0}))
	assert.True(t, g.Contains(Hex{-3, 3}))
	assert.False(t, g.Contains(Hex{3, 1}), "outside the hexagonal shape")
	assert.False(t, g.Contains(Hex{4, 0}))

	require.NotNil(t, g.TileAt(Hex{1, 1}))
	assert.Nil(t, g.TileAt(Hex{4, 0}))
}

func TestGridNeighbors(t *testing.T) {
	g := NewGrid(2)

	assert.Len(t, g.Neighbors(Hex{0, 0}), 6, "interior hex has all 6 neighbors")
	assert.Len(t, g.Neighbors(Hex{2, 0}), 3, "corner hex has 3 neighbors")

	for _, n := range g.Neighbors(Hex{1, 0}) {
		assert.True(t, g.Contains(n))
	}
}

func TestGridRing(t *testing.T) {
	g := NewGrid(5)
	center := Hex{0, 0}

	assert.Equal(t, []Hex{center}, g.Ring(center, 0))

	for dist := 1; dist <= 4; dist++ {
		ring := g.Ring(center, dist)
		assert.Len(t, ring, 6*dist, "full ring at distance %d", dist)
		for _, h := range ring {
			assert.Equal(t, dist, center.DistanceTo(h))
		}
	}

	// A ring near the edge is clipped by the grid boundary.
	edgeRing := g.Ring(Hex{4, 0}, 2)
	assert.NotEmpty(t, edgeRing)
	assert.Less(t, len(edgeRing), 12)
}

func TestGridTilesStartAsGrassland(t *testing.T) {
	g := NewGrid(1)
	for _, pos := range g.Hexes() {
		assert.Equal(t, BiomeGrassland, g.TileAt(pos).Biome)
	}
}
