package core

// Tile is a single cell of the map: an immutable position plus the biome
// assigned during map generation.
type Tile struct {
	Pos   Hex
	Biome Biome
}

// Grid is a fixed-shape hexagonal lattice of tiles keyed by axial
// coordinates. The shape is a hexagon of the given radius around the origin;
// it never changes after construction. The grid is shared read-only between
// all civilizations.
type Grid struct {
	radius int
	tiles  map[Hex]*Tile
	order  []Hex // stable iteration order for full-grid sweeps
}

// NewGrid creates a hexagonal grid of the given radius. All tiles start as
// grassland; map generation assigns real biomes afterwards.
func NewGrid(radius int) *Grid {
	g := &Grid{
		radius: radius,
		tiles:  make(map[Hex]*Tile),
	}
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			pos := Hex{Q: q, R: r}
			g.tiles[pos] = &Tile{Pos: pos, Biome: BiomeGrassland}
			g.order = append(g.order, pos)
		}
	}
	return g
}

// Radius returns the grid radius in hexes.
func (g *Grid) Radius() int { return g.radius }

// Len returns the number of tiles on the grid.
func (g *Grid) Len() int { return len(g.tiles) }

// Contains reports whether the position lies on the grid.
func (g *Grid) Contains(pos Hex) bool {
	_, ok := g.tiles[pos]
	return ok
}

// TileAt returns the tile at the given position, or nil if the position is
// off the grid.
func (g *Grid) TileAt(pos Hex) *Tile {
	return g.tiles[pos]
}

// Neighbors returns the in-grid neighbors of the given position in canonical
// direction order. Edge hexes have fewer than six.
func (g *Grid) Neighbors(pos Hex) []Hex {
	result := make([]Hex, 0, 6)
	for _, d := range DirectionVectors {
		n := pos.Add(d)
		if g.Contains(n) {
			result = append(result, n)
		}
	}
	return result
}

// Hexes returns every position on the grid in a stable order. Callers must
// not mutate the returned slice.
func (g *Grid) Hexes() []Hex {
	return g.order
}

// Ring returns the in-grid positions at exactly the given distance from the
// center. Distance 0 yields only the center itself.
func (g *Grid) Ring(center Hex, distance int) []Hex {
	if distance == 0 {
		if g.Contains(center) {
			return []Hex{center}
		}
		return nil
	}
	var result []Hex
	for q := center.Q - distance; q <= center.Q+distance; q++ {
		for r := center.R - distance; r <= center.R+distance; r++ {
			pos := Hex{Q: q, R: r}
			if center.DistanceTo(pos) == distance && g.Contains(pos) {
				result = append(result, pos)
			}
		}
	}
	return result
}
