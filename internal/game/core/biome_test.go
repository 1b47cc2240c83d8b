package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiomeCosts(t *testing.T) {
	tests := []struct {
		biome      Biome
		moveCost   int
		visionCost int
		impassable bool
	}{
		{BiomeDeepOcean, ImpassableCost, 2, true},
		{BiomeShallowOcean, ImpassableCost, 2, true},
		{BiomeBeach, 2, 1, false},
		{BiomeGrassland, 1, 1, false},
		{BiomeForest, 3, 3, false},
		{BiomeHills, 4, 2, false},
		{BiomeMountains, 8, 4, false},
		{BiomePeaks, ImpassableCost, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.biome.String(), func(t *testing.T) {
			assert.Equal(t, tt.moveCost, tt.biome.MovementCost())
			assert.Equal(t, tt.visionCost, tt.biome.VisibilityCost())
			assert.Equal(t, tt.impassable, tt.biome.Impassable())
		})
	}
}

func TestBiomeVisionBlocking(t *testing.T) {
	assert.True(t, BiomeMountains.BlocksVision())
	assert.True(t, BiomePeaks.BlocksVision())
	assert.False(t, BiomeGrassland.BlocksVision())
	assert.False(t, BiomeForest.BlocksVision(), "forests slow vision but do not block it")
}

func TestBiomeExpandable(t *testing.T) {
	assert.False(t, BiomePeaks.Expandable())
	assert.False(t, BiomeDeepOcean.Expandable())
	assert.True(t, BiomeShallowOcean.Expandable())
	assert.True(t, BiomeMountains.Expandable())
}

func TestBiomeWorkability(t *testing.T) {
	assert.False(t, BiomeDeepOcean.Workable())
	assert.False(t, BiomePeaks.Workable())
	assert.True(t, BiomeGrassland.Workable())
	assert.Equal(t, 3, BiomeGrassland.TotalYield())
	assert.Equal(t, 3, BiomeForest.TotalYield())
}

func TestWrapGameStateError(t *testing.T) {
	assert.Nil(t, WrapGameStateError(5, "combat", nil))

	wrapped := WrapGameStateError(12, "action processing", ErrGameOver)
	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, ErrGameOver))
	assert.Contains(t, wrapped.Error(), "turn 12")
	assert.Contains(t, wrapped.Error(), "action processing")

	var gse *GameStateError
	require.True(t, errors.As(wrapped, &gse))
	assert.Equal(t, 12, gse.Turn)
}
