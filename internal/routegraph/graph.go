package routegraph

import (
	"sort"

	"github.com/vanshika/airnet/internal/domain"
)

// Edge is an undirected adjacency between two airports. A and B are kept in the
// order the first record naming the pair was seen.
type Edge struct {
	A domain.AirportCode
	B domain.AirportCode
}

// Graph is the vertex and deduplicated undirected edge set built from a batch
// of route records.
type Graph struct {
	codes []domain.AirportCode
	index map[domain.AirportCode]int
	adj   [][]int
	edges [][2]int
}

// Build converts route records into a Graph. Duplicate and reversed records
// collapse to one edge, a record naming (A, A) yields a self-loop, and any
// code, including the empty string, becomes a vertex. Build never fails.
func Build(records []domain.RouteRecord) *Graph {
	g := &Graph{
		index: make(map[domain.AirportCode]int),
	}
	seen := make(map[[2]int]struct{}, len(records))

	for _, rec := range records {
		u := g.vertex(rec.Source)
		v := g.vertex(rec.Destination)

		key := [2]int{u, v}
		if v < u {
			key = [2]int{v, u}
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		g.edges = append(g.edges, [2]int{u, v})
		g.adj[u] = append(g.adj[u], v)
		if u != v {
			g.adj[v] = append(g.adj[v], u)
		}
	}
	return g
}

func (g *Graph) vertex(code domain.AirportCode) int {
	if idx, ok := g.index[code]; ok {
		return idx
	}
	idx := len(g.codes)
	g.index[code] = idx
	g.codes = append(g.codes, code)
	g.adj = append(g.adj, nil)
	return idx
}

// Has reports whether code is a vertex.
func (g *Graph) Has(code domain.AirportCode) bool {
	_, ok := g.index[code]
	return ok
}

// NodeCount returns the number of vertices.
func (g *Graph) NodeCount() int { return len(g.codes) }

// EdgeCount returns the number of undirected edges, self-loops included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Adjacent reports whether an edge joins a and b.
func (g *Graph) Adjacent(a, b domain.AirportCode) bool {
	u, ok := g.index[a]
	if !ok {
		return false
	}
	v, ok := g.index[b]
	if !ok {
		return false
	}
	for _, n := range g.adj[u] {
		if n == v {
			return true
		}
	}
	return false
}

// Codes returns every vertex sorted ascending.
func (g *Graph) Codes() []domain.AirportCode {
	out := make([]domain.AirportCode, len(g.codes))
	copy(out, g.codes)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns every edge in first-seen order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, Edge{A: g.codes[e[0]], B: g.codes[e[1]]})
	}
	return out
}

// Neighbors returns the airports adjacent to code in first-seen order, or nil
// when code is not a vertex.
func (g *Graph) Neighbors(code domain.AirportCode) []domain.AirportCode {
	idx, ok := g.index[code]
	if !ok {
		return nil
	}
	out := make([]domain.AirportCode, 0, len(g.adj[idx]))
	for _, n := range g.adj[idx] {
		out = append(out, g.codes[n])
	}
	return out
}
