package game

import (
	"container/heap"

	"github.com/hexciv/hexciv/internal/game/core"
)

// searchNode is a priority-queue entry for budgeted searches.
type searchNode struct {
	pos  core.Hex
	cost int
}

// searchQueue is a min-heap of searchNodes ordered by accumulated cost.
type searchQueue []searchNode

func (q searchQueue) Len() int            { return len(q) }
func (q searchQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q searchQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *searchQueue) Push(x interface{}) { *q = append(*q, x.(searchNode)) }
func (q *searchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	*q = old[:n-1]
	return node
}

// ComputeReachable returns the minimal cumulative terrain cost to enter every
// hex reachable from start within the given movement budget. The start hex is
// always present at cost 0. Cost accumulates by summing the movement cost of
// each entered hex; a hex is reachable iff its cumulative cost <= budget.
// The search is read-only: no unit or grid state is mutated.
func ComputeReachable(grid *core.Grid, start core.Hex, budget int) map[core.Hex]int {
	costs := map[core.Hex]int{start: 0}
	if budget <= 0 || !grid.Contains(start) {
		if !grid.Contains(start) {
			return map[core.Hex]int{}
		}
		return costs
	}

	frontier := &searchQueue{{pos: start, cost: 0}}
	heap.Init(frontier)

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(searchNode)
		if current.cost > costs[current.pos] {
			continue // stale entry, already relaxed cheaper
		}

		for _, next := range grid.Neighbors(current.pos) {
			newCost := current.cost + grid.TileAt(next).Biome.MovementCost()
			if newCost > budget {
				continue
			}
			if prev, seen := costs[next]; seen && prev <= newCost {
				continue
			}
			costs[next] = newCost
			heap.Push(frontier, searchNode{pos: next, cost: newCost})
		}
	}

	return costs
}

// ComputeReachable runs the movement planner for a unit's current position
// and remaining budget.
func (e *Engine) ComputeReachable(unit *core.Unit) map[core.Hex]int {
	return ComputeReachable(e.grid, unit.Pos, unit.Movement)
}
