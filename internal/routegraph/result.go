package routegraph

import "github.com/vanshika/airnet/internal/domain"

// Outcome tags the result of a path query. Callers must inspect it before
// using any path.
type Outcome int

const (
	// OutcomeFound means at least one path was found.
	OutcomeFound Outcome = iota
	// OutcomeUnknownVertex means the source or destination is not in the graph.
	OutcomeUnknownVertex
	// OutcomeNoPath means both airports are known but not connected.
	OutcomeNoPath
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeUnknownVertex:
		return "unknown_vertex"
	case OutcomeNoPath:
		return "no_path"
	default:
		return "unknown"
	}
}

// Path is an ordered sequence of adjacent airports.
type Path []domain.AirportCode

// Hops returns the number of edges on the path.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// PathResult is the result of a single shortest path query.
type PathResult struct {
	Outcome Outcome
	Path    Path
	// Missing lists the queried codes absent from the graph when Outcome is
	// OutcomeUnknownVertex.
	Missing []domain.AirportCode
}

// Found reports whether the result carries a path.
func (r PathResult) Found() bool { return r.Outcome == OutcomeFound }

// PathsResult is the result of a bounded all-shortest-paths query.
type PathsResult struct {
	Outcome Outcome
	Paths   []Path
	Missing []domain.AirportCode
}

// Found reports whether the result carries paths.
func (r PathsResult) Found() bool { return r.Outcome == OutcomeFound }

// Stats holds aggregate counts over the graph.
type Stats struct {
	NodeCount int
	EdgeCount int
}
