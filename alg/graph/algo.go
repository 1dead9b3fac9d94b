package graph

import (
	"errors"
	"fmt"

	"egov/alg"
)

var ErrCycle = errors.New("graph: hypergraph has a cycle")

// TopologicalOrder returns the vertices of g ordered so that every tail of a
// hyperedge precedes its head (Kahn's algorithm). Vertices that are ready at
// the same time keep their index order, so an already sorted graph comes back
// unchanged.
func TopologicalOrder(g HyperGraph) ([]int, error) {
	n := g.NumberOfVertices()
	pending := make([]int, n)
	consumers := make([][]int, n)
	for _, e := range g.GetEdges() {
		edge := g.GetHyperEdge(e)
		head := edge.Head()
		if head < 0 || head >= n {
			return nil, fmt.Errorf("graph: edge %d head %d out of range", e, head)
		}
		for _, tail := range edge.Tails() {
			if tail < 0 || tail >= n {
				return nil, fmt.Errorf("graph: edge %d tail %d out of range", e, tail)
			}
			pending[head]++
			consumers[tail] = append(consumers[tail], head)
		}
	}

	order := make([]int, 0, n)
	ready := alg.NewQueueSlice(n)
	for v := 0; v < n; v++ {
		if pending[v] == 0 {
			ready.Enqueue(v)
		}
	}
	for ready.Size() > 0 {
		v, _ := ready.Dequeue()
		order = append(order, v)
		for _, head := range consumers[v] {
			pending[head]--
			if pending[head] == 0 {
				ready.Enqueue(head)
			}
		}
	}
	if len(order) != n {
		return nil, ErrCycle
	}
	return order, nil
}

// Ranks inverts a vertex order: ranks[v] is the position of v in order
func Ranks(order []int) []int {
	ranks := make([]int, len(order))
	for i, v := range order {
		ranks[v] = i
	}
	return ranks
}
