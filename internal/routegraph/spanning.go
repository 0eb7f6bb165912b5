package routegraph

import (
	"time"

	"github.com/vanshika/airnet/internal/domain"
)

// SpanningForest is a spanning tree per connected component. Edges carry no
// weight, so any spanning forest is minimal.
type SpanningForest struct {
	Edges      []Edge
	Components int
}

// SpanningForest computes a spanning forest with Kruskal's algorithm over
// unit-weight edges, scanning edges in first-seen order. Self-loops are never
// part of the forest.
func (e *Engine) SpanningForest() SpanningForest {
	g := e.graph
	n := len(g.codes)
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}

	forest := SpanningForest{Components: n}
	for _, edge := range g.edges {
		ru, rv := find(edge[0]), find(edge[1])
		if ru == rv {
			continue
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
		forest.Edges = append(forest.Edges, Edge{A: g.codes[edge[0]], B: g.codes[edge[1]]})
		forest.Components--
		if forest.Components == 1 {
			break
		}
	}
	return forest
}

// Component returns the airports reachable from code, including code itself,
// in BFS order. It returns nil when code is unknown.
func (e *Engine) Component(code domain.AirportCode) []domain.AirportCode {
	g := e.graph
	s, ok := g.index[code]
	if !ok {
		return nil
	}
	seen := make([]bool, len(g.codes))
	seen[s] = true
	queue := []int{s}
	var out []domain.AirportCode
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		out = append(out, g.codes[u])
		for _, v := range g.adj[u] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return out
}

// Timed runs fn and returns how long it took. It is the only place the package
// touches the clock; query results never depend on it.
func Timed(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}
