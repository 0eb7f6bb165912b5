package routegraph

import (
	"fmt"

	"github.com/vanshika/airnet/internal/domain"
)

// DefaultPathLimit is the number of equally short paths callers ask for when
// they have no preference.
const DefaultPathLimit = 3

// Engine answers queries over one immutable Graph.
type Engine struct {
	graph *Graph
}

// NewEngine constructs an Engine over g. A nil graph behaves as an empty one.
func NewEngine(g *Graph) *Engine {
	if g == nil {
		g = Build(nil)
	}
	return &Engine{graph: g}
}

// Graph returns the underlying graph.
func (e *Engine) Graph() *Graph { return e.graph }

// HasAirport reports whether code is a vertex of the graph.
func (e *Engine) HasAirport(code domain.AirportCode) bool {
	return e.graph.Has(code)
}

// Stats returns node and edge counts.
func (e *Engine) Stats() Stats {
	return Stats{
		NodeCount: e.graph.NodeCount(),
		EdgeCount: e.graph.EdgeCount(),
	}
}

// Neighbors returns the airports directly connected to code.
func (e *Engine) Neighbors(code domain.AirportCode) []domain.AirportCode {
	return e.graph.Neighbors(code)
}

// Airports returns every airport code in the graph, sorted.
func (e *Engine) Airports() []domain.AirportCode {
	return e.graph.Codes()
}

// ShortestPath returns one minimum-hop path from src to dst. Among several
// equally short paths the one returned follows adjacency order; callers must
// not rely on which one they get.
func (e *Engine) ShortestPath(src, dst domain.AirportCode) PathResult {
	if missing := e.missing(src, dst); len(missing) > 0 {
		return PathResult{Outcome: OutcomeUnknownVertex, Missing: missing}
	}
	if src == dst {
		return PathResult{Outcome: OutcomeFound, Path: Path{src}}
	}

	g := e.graph
	s, t := g.index[src], g.index[dst]
	parent := make([]int, len(g.codes))
	for i := range parent {
		parent[i] = -1
	}
	parent[s] = s
	queue := []int{s}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.adj[u] {
			if parent[v] != -1 {
				continue
			}
			parent[v] = u
			if v == t {
				return PathResult{Outcome: OutcomeFound, Path: e.trace(parent, s, t)}
			}
			queue = append(queue, v)
		}
	}
	return PathResult{Outcome: OutcomeNoPath}
}

// AllShortestPaths returns up to limit minimum-hop paths from src to dst in
// BFS discovery order. When fewer than limit shortest paths exist all of them
// are returned. A negative limit is a programming error and panics.
func (e *Engine) AllShortestPaths(src, dst domain.AirportCode, limit int) PathsResult {
	if limit < 0 {
		panic(fmt.Sprintf("routegraph: negative path limit %d", limit))
	}
	if missing := e.missing(src, dst); len(missing) > 0 {
		return PathsResult{Outcome: OutcomeUnknownVertex, Missing: missing}
	}
	if src == dst {
		paths := []Path{}
		if limit > 0 {
			paths = append(paths, Path{src})
		}
		return PathsResult{Outcome: OutcomeFound, Paths: paths}
	}

	g := e.graph
	s, t := g.index[src], g.index[dst]
	preds := e.layer(s, t)
	if preds == nil {
		return PathsResult{Outcome: OutcomeNoPath}
	}

	paths := make([]Path, 0, min(limit, DefaultPathLimit))
	if limit == 0 {
		return PathsResult{Outcome: OutcomeFound, Paths: paths}
	}

	// Walk predecessor lists back from t; the reversed stack is a path.
	stack := []int{t}
	var walk func(v int) bool
	walk = func(v int) bool {
		if v == s {
			p := make(Path, len(stack))
			for i, idx := range stack {
				p[len(stack)-1-i] = g.codes[idx]
			}
			paths = append(paths, p)
			return len(paths) >= limit
		}
		for _, u := range preds[v] {
			stack = append(stack, u)
			done := walk(u)
			stack = stack[:len(stack)-1]
			if done {
				return true
			}
		}
		return false
	}
	walk(t)

	return PathsResult{Outcome: OutcomeFound, Paths: paths}
}

// layer runs a BFS from s that records, for every vertex up to the depth of t,
// all of its predecessors one layer closer to s. It returns nil when t is
// unreachable.
func (e *Engine) layer(s, t int) [][]int {
	g := e.graph
	dist := make([]int, len(g.codes))
	for i := range dist {
		dist[i] = -1
	}
	preds := make([][]int, len(g.codes))
	dist[s] = 0
	queue := []int{s}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if dist[t] != -1 && dist[u] >= dist[t] {
			break
		}
		for _, v := range g.adj[u] {
			switch {
			case dist[v] == -1:
				dist[v] = dist[u] + 1
				preds[v] = append(preds[v], u)
				queue = append(queue, v)
			case dist[v] == dist[u]+1:
				preds[v] = append(preds[v], u)
			}
		}
	}

	if dist[t] == -1 {
		return nil
	}
	return preds
}

func (e *Engine) trace(parent []int, s, t int) Path {
	var rev []int
	for v := t; v != s; v = parent[v] {
		rev = append(rev, v)
	}
	rev = append(rev, s)

	p := make(Path, len(rev))
	for i, idx := range rev {
		p[len(rev)-1-i] = e.graph.codes[idx]
	}
	return p
}

func (e *Engine) missing(codes ...domain.AirportCode) []domain.AirportCode {
	var out []domain.AirportCode
	for i, c := range codes {
		if i > 0 && c == codes[0] {
			continue
		}
		if !e.graph.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
