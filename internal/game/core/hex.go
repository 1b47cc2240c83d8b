package core

import "fmt"

// Hex is an axial-coordinate position on the hex grid.
// Identity is the (Q, R) pair; Hex is a value type and safe as a map key.
type Hex struct {
	Q, R int
}

// NewHex creates a hex position with the given axial coordinates.
func NewHex(q, r int) Hex {
	return Hex{Q: q, R: r}
}

// Direction indexes the six canonical axial directions for pointy-topped
// hexes, starting at north-east and moving clockwise.
type Direction int

const (
	NorthEast Direction = iota
	East
	SouthEast
	SouthWest
	West
	NorthWest
)

// DirectionVectors is the canonical axial offset for each direction. Every
// system that walks the grid uses this table so neighbor order is consistent.
var DirectionVectors = [6]Hex{
	NorthEast: {Q: 1, R: -1},
	East:      {Q: 1, R: 0},
	SouthEast: {Q: 0, R: 1},
	SouthWest: {Q: -1, R: 1},
	West:      {Q: -1, R: 0},
	NorthWest: {Q: 0, R: -1},
}

// Add returns the component-wise sum of two hex positions.
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

// Sub returns the component-wise difference of two hex positions.
func (h Hex) Sub(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R}
}

// Neighbor returns the adjacent hex in the given direction.
func (h Hex) Neighbor(d Direction) Hex {
	return h.Add(DirectionVectors[d])
}

// Neighbors returns the six adjacent hex positions in canonical order.
// Callers that need grid-bounded neighbors should use Grid.Neighbors.
func (h Hex) Neighbors() [6]Hex {
	var n [6]Hex
	for i, d := range DirectionVectors {
		n[i] = h.Add(d)
	}
	return n
}

// DistanceTo returns the hex distance (minimum number of steps) to another
// position using the standard axial formula.
func (h Hex) DistanceTo(other Hex) int {
	dq := h.Q - other.Q
	dr := h.R - other.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// IsAdjacentTo reports whether the two hexes share an edge.
func (h Hex) IsAdjacentTo(other Hex) bool {
	return h.DistanceTo(other) == 1
}

// String returns a string representation of the hex position.
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
