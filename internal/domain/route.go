package domain

// RouteRecord is a directional route read from the routes table. The graph
// treats it as an undirected adjacency between Source and Destination.
type RouteRecord struct {
	Source      AirportCode
	Destination AirportCode
}
