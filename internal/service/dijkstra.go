package service

import (
	"errors"
	"sync"

	"github.com/RyanCarrier/dijkstra"

	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/routegraph"
)

var errNoDijkstraPath = errors.New("no dijkstra path")

// dijkstraIndex mirrors the route graph as a unit-weight arc list for the
// efficiency comparison. The underlying graph keeps search state between
// calls, so every query holds the lock.
type dijkstraIndex struct {
	mu     sync.Mutex
	graph  *dijkstra.Graph
	vertex map[domain.AirportCode]int
}

func newDijkstraIndex(g *routegraph.Graph) *dijkstraIndex {
	idx := &dijkstraIndex{
		graph:  dijkstra.NewGraph(),
		vertex: make(map[domain.AirportCode]int),
	}
	if g == nil {
		return idx
	}
	for i, code := range g.Codes() {
		idx.vertex[code] = i
		idx.graph.AddVertex(i)
	}
	for _, e := range g.Edges() {
		if e.A == e.B {
			continue
		}
		a, b := idx.vertex[e.A], idx.vertex[e.B]
		// Vertices were all added above, so AddArc cannot fail here.
		_ = idx.graph.AddArc(a, b, 1)
		_ = idx.graph.AddArc(b, a, 1)
	}
	return idx
}

// hops returns the number of flights on a Dijkstra shortest path.
func (d *dijkstraIndex) hops(src, dst domain.AirportCode) (int, error) {
	s, ok := d.vertex[src]
	if !ok {
		return 0, errNoDijkstraPath
	}
	t, ok := d.vertex[dst]
	if !ok {
		return 0, errNoDijkstraPath
	}
	if s == t {
		return 0, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	best, err := d.graph.Shortest(s, t)
	if err != nil || len(best.Path) == 0 {
		return 0, errNoDijkstraPath
	}
	return len(best.Path) - 1, nil
}
