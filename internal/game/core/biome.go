package core

// Biome is the terrain kind of a hex tile. Biome attributes are compile-time
// constants; terrain never changes after map generation.
type Biome int

const (
	BiomeDeepOcean Biome = iota
	BiomeShallowOcean
	BiomeBeach
	BiomeGrassland
	BiomeForest
	BiomeHills
	BiomeMountains
	BiomePeaks
)

// ImpassableCost is the sentinel movement cost for terrain units cannot
// enter. It exceeds any realistic movement budget, so the movement search
// prunes such tiles naturally.
const ImpassableCost = 100000

type biomeAttrs struct {
	name            string
	movementCost    int
	visibilityCost  int
	foodYield       int
	productionYield int
	workable        bool
}

var biomeTable = [...]biomeAttrs{
	BiomeDeepOcean:    {"DeepOcean", ImpassableCost, 2, 0, 0, false},
	BiomeShallowOcean: {"ShallowOcean", ImpassableCost, 2, 1, 0, true},
	BiomeBeach:        {"Beach", 2, 1, 1, 0, true},
	BiomeGrassland:    {"Grassland", 1, 1, 2, 1, true},
	BiomeForest:       {"Forest", 3, 3, 1, 2, true},
	BiomeHills:        {"Hills", 4, 2, 1, 2, true},
	BiomeMountains:    {"Mountains", 8, 4, 0, 1, true},
	BiomePeaks:        {"Peaks", ImpassableCost, 5, 0, 0, false},
}

// MovementCost is the cost in movement points to enter a hex of this biome.
func (b Biome) MovementCost() int { return biomeTable[b].movementCost }

// VisibilityCost is the cost in vision points to see through this biome.
func (b Biome) VisibilityCost() int { return biomeTable[b].visibilityCost }

// FoodYield is the food produced per turn when a citizen works this biome.
func (b Biome) FoodYield() int { return biomeTable[b].foodYield }

// ProductionYield is the production per turn when a citizen works this biome.
func (b Biome) ProductionYield() int { return biomeTable[b].productionYield }

// Workable reports whether citizens can be assigned to tiles of this biome.
func (b Biome) Workable() bool { return biomeTable[b].workable }

// TotalYield is food plus production, used to rank tiles for citizen
// assignment.
func (b Biome) TotalYield() int { return b.FoodYield() + b.ProductionYield() }

// Impassable reports whether units can never enter this biome.
func (b Biome) Impassable() bool { return b.MovementCost() >= ImpassableCost }

// BlocksVision reports whether this biome stops visibility propagation.
// Blocking tiles are themselves visible but act as dead ends for the vision
// search, approximating line-of-sight without ray tracing.
func (b Biome) BlocksVision() bool { return b == BiomeMountains || b == BiomePeaks }

// Expandable reports whether a city may claim tiles of this biome during
// border growth.
func (b Biome) Expandable() bool { return b != BiomePeaks && b != BiomeDeepOcean }

func (b Biome) String() string {
	if b < 0 || int(b) >= len(biomeTable) {
		return "Unknown"
	}
	return biomeTable[b].name
}
