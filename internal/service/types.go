package service

import (
	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/routegraph"
)

// Snapshot is one batch of tables the network is built from.
type Snapshot struct {
	Airports []domain.Airport
	Routes   []domain.RouteRecord
}

// PaginationMeta captures pagination metadata returned to API clients.
type PaginationMeta struct {
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// ListAirportsParams defines filters for listing airports.
type ListAirportsParams struct {
	Page     int
	PageSize int
	Search   string
	Country  string
}

// AirportsPage represents paginated airports with metadata.
type AirportsPage struct {
	Items      []domain.AirportSummary
	Pagination PaginationMeta
}

// RouteView is a shortest path resolved against the airports table.
type RouteView struct {
	Outcome routegraph.Outcome
	Path    routegraph.Path
	Stops   []domain.RouteStop
	Legs    []domain.RouteLeg
	Missing []domain.AirportCode
}

// AlternativesView holds the shortest path and up to a limit of equally short
// routes between two airports.
type AlternativesView struct {
	Outcome  routegraph.Outcome
	Shortest routegraph.Path
	Paths    []routegraph.Path
	Missing  []domain.AirportCode
}

// EfficiencyView pairs an efficiency report with the outcome of the path
// query it timed.
type EfficiencyView struct {
	Outcome routegraph.Outcome
	Report  domain.EfficiencyReport
	Missing []domain.AirportCode
}
