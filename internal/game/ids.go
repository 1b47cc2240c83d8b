package game

// IDGenerator hands out monotonically increasing IDs for units and cities.
// It is instance state injected through the engine constructor rather than a
// package-level counter, so independent games never share a sequence.
type IDGenerator struct {
	next int
}

// NewIDGenerator starts a sequence at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next ID in the sequence.
func (g *IDGenerator) Next() int {
	g.next++
	return g.next
}
