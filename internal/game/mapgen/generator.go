package mapgen

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/hexciv/hexciv/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Radius          int
	Seed            int64   // 0 = random
	NoiseScale      float64 // frequency of the elevation noise
	CivCount        int
	MinStartSpacing int // minimum hex distance between start positions
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(radius, civs int) MapConfig {
	return MapConfig{
		Radius:          radius,
		Seed:            0,
		NoiseScale:      0.15,
		CivCount:        civs,
		MinStartSpacing: 8,
	}
}

// Generator produces hex maps from layered elevation noise with a
// deterministic RNG for start placement.
type Generator struct {
	config MapConfig
	seed   int64
	noise  opensimplex.Noise
	rng    *rand.Rand
}

// NewGenerator creates a new map generator. A zero seed is replaced
// with a random one; the effective seed is available via Seed.
func NewGenerator(config MapConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Generator{
		config: config,
		seed:   seed,
		noise:  opensimplex.NewNormalized(seed),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the effective seed used for generation
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate creates a new grid with biomes assigned from elevation noise
func (g *Generator) Generate() *core.Grid {
	grid := core.NewGrid(g.config.Radius)

	for _, pos := range grid.Hexes() {
		// Axial to cartesian so noise distance matches visual distance:
		// x = q + r/2, y = r * sqrt(3)/2
		x := (float64(pos.Q) + float64(pos.R)*0.5) * g.config.NoiseScale
		y := float64(pos.R) * math.Sqrt(3.0) / 2.0 * g.config.NoiseScale

		elev := g.noise.Eval2(x, y)
		grid.TileAt(pos).Biome = biomeFor(elev)
	}

	return grid
}

// biomeFor maps a normalized elevation sample to a biome
func biomeFor(elev float64) core.Biome {
	switch {
	case elev < 0.15:
		return core.BiomeDeepOcean
	case elev < 0.25:
		return core.BiomeShallowOcean
	case elev < 0.35:
		return core.BiomeBeach
	case elev < 0.55:
		return core.BiomeGrassland
	case elev < 0.65:
		return core.BiomeForest
	case elev < 0.75:
		return core.BiomeHills
	case elev < 0.90:
		return core.BiomeMountains
	default:
		return core.BiomePeaks
	}
}

// FindStartPositions picks one start hex per civilization: passable,
// workable land with minimum spacing between civilizations. Spacing is
// relaxed progressively if the map cannot satisfy it.
func (g *Generator) FindStartPositions(grid *core.Grid) []core.Hex {
	positions := make([]core.Hex, 0, g.config.CivCount)
	hexes := grid.Hexes()
	spacing := g.config.MinStartSpacing

	for len(positions) < g.config.CivCount && spacing >= 0 {
		maxAttempts := grid.Len()
		for attempts := 0; attempts < maxAttempts && len(positions) < g.config.CivCount; attempts++ {
			pos := hexes[g.rng.Intn(len(hexes))]
			if g.validStart(grid, pos, positions, spacing) {
				positions = append(positions, pos)
			}
		}
		// Relax spacing if random placement could not fit everyone
		spacing--
	}

	// Deterministic fallback scan for pathological maps
	if len(positions) < g.config.CivCount {
		for _, pos := range hexes {
			if len(positions) == g.config.CivCount {
				break
			}
			if g.validStart(grid, pos, positions, 1) {
				positions = append(positions, pos)
			}
		}
	}

	return positions
}

func (g *Generator) validStart(grid *core.Grid, pos core.Hex, existing []core.Hex, spacing int) bool {
	tile := grid.TileAt(pos)
	if tile == nil || tile.Biome.Impassable() || !tile.Biome.Workable() {
		return false
	}
	// Keep starts off the map rim so a founded city gets a full first ring.
	if len(grid.Neighbors(pos)) < 6 {
		return false
	}
	for _, other := range existing {
		if pos.DistanceTo(other) < spacing {
			return false
		}
	}
	return true
}
