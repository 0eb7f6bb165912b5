package domain

import "time"

// StopRole describes where an airport sits on a route.
type StopRole string

const (
	StopDeparture  StopRole = "departure"
	StopConnecting StopRole = "connecting"
	StopArrival    StopRole = "arrival"
)

// RouteStop is one airport on a resolved route. Known is false when the
// airports table carries no row for the code.
type RouteStop struct {
	Airport Airport
	Role    StopRole
	Known   bool
}

// RouteLeg is a single hop between two consecutive stops.
type RouteLeg struct {
	From AirportCode
	To   AirportCode
}

// EfficiencyReport compares algorithm timings over the route graph.
type EfficiencyReport struct {
	BFSDuration          time.Duration
	DijkstraDuration     time.Duration
	SpanningTreeDuration time.Duration
	BFSHops              int
	DijkstraHops         int
	Nodes                int
	Edges                int
	SpanningTreeEdges    int
	Components           int
}
