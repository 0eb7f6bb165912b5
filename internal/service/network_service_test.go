package service

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/logging"
	"github.com/vanshika/airnet/internal/metrics"
	"github.com/vanshika/airnet/internal/routegraph"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Airports: []domain.Airport{
			{Code: "LHR", Name: "Heathrow Airport", City: "London", Country: "United Kingdom", Latitude: 51.47, Longitude: -0.46},
			{Code: "DEL", Name: "Indira Gandhi International Airport", City: "Delhi", Country: "India", Latitude: 28.56, Longitude: 77.10},
			{Code: "BOM", Name: "Chhatrapati Shivaji International Airport", City: "Mumbai", Country: "India", Latitude: 19.08, Longitude: 72.86},
			{Code: "BLR", Name: "Bengaluru International Airport", City: "Bangalore", Country: "India", Latitude: 13.19, Longitude: 77.70},
			{Code: "CCU", Name: "Netaji Subhash Chandra Bose International Airport", City: "Kolkata", Country: "India", Latitude: 22.65, Longitude: 88.44},
			{Code: "JFK", Name: "John F Kennedy International Airport", City: "New York", Country: "United States", Latitude: 40.63, Longitude: -73.77},
			{Code: "", Name: "Akola Airport", City: "Akola", Country: "India"},
		},
		Routes: []domain.RouteRecord{
			{Source: "DEL", Destination: "BOM"},
			{Source: "BOM", Destination: "BLR"},
			{Source: "DEL", Destination: "CCU"},
			{Source: "CCU", Destination: "BLR"},
			{Source: "BLR", Destination: "MAA"},
			{Source: "LHR", Destination: "JFK"},
			{Source: "JFK", Destination: "LHR"},
		},
	}
}

func newTestService(t *testing.T) (*NetworkService, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := NewNetworkService(sampleSnapshot(), Options{
		Metrics: metrics.New(reg),
		Logger:  logging.Discard(),
	})
	return svc, reg
}

func TestNetworkService_Stats(t *testing.T) {
	svc, reg := newTestService(t)

	assert.Equal(t, routegraph.Stats{NodeCount: 7, EdgeCount: 6}, svc.Stats())
	assert.Equal(t, routegraph.DefaultPathLimit, svc.PathsLimit())

	nodes, err := testutil.GatherAndCount(reg, "airnet_graph_nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, nodes)
}

func TestNetworkService_FindRoute(t *testing.T) {
	svc, reg := newTestService(t)

	view, err := svc.FindRoute(context.Background(), " DEL ", "MAA")
	require.NoError(t, err)
	require.Equal(t, routegraph.OutcomeFound, view.Outcome)
	assert.Equal(t, routegraph.Path{"DEL", "BOM", "BLR", "MAA"}, view.Path)

	require.Len(t, view.Stops, 4)
	assert.Equal(t, domain.StopDeparture, view.Stops[0].Role)
	assert.Equal(t, "Delhi", view.Stops[0].Airport.City)
	assert.Equal(t, domain.StopConnecting, view.Stops[1].Role)
	assert.Equal(t, domain.StopConnecting, view.Stops[2].Role)
	assert.Equal(t, domain.StopArrival, view.Stops[3].Role)
	assert.False(t, view.Stops[3].Known, "MAA has no airports table row")
	assert.Equal(t, domain.AirportCode("MAA"), view.Stops[3].Airport.Code)

	assert.Equal(t, []domain.RouteLeg{
		{From: "DEL", To: "BOM"},
		{From: "BOM", To: "BLR"},
		{From: "BLR", To: "MAA"},
	}, view.Legs)

	count, err := testutil.GatherAndCount(reg, "airnet_query_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNetworkService_FindRouteOutcomes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.FindRoute(ctx, "DEL", "XXX")
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeUnknownVertex, view.Outcome)
	assert.Equal(t, []domain.AirportCode{"XXX"}, view.Missing)
	assert.Empty(t, view.Stops)

	view, err = svc.FindRoute(ctx, "DEL", "LHR")
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeNoPath, view.Outcome)
	assert.Empty(t, view.Path)

	view, err = svc.FindRoute(ctx, "BOM", "BOM")
	require.NoError(t, err)
	require.Equal(t, routegraph.OutcomeFound, view.Outcome)
	require.Len(t, view.Stops, 1)
	assert.Equal(t, domain.StopDeparture, view.Stops[0].Role)
	assert.Empty(t, view.Legs)
}

func TestNetworkService_FindRouteInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FindRoute(context.Background(), "  ", "DEL")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.FindRoute(ctx, "DEL", "BOM")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNetworkService_FindAlternatives(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.FindAlternatives(ctx, "DEL", "BLR", 0)
	require.NoError(t, err)
	require.Equal(t, routegraph.OutcomeFound, view.Outcome)
	assert.Equal(t, 2, view.Shortest.Hops())
	assert.ElementsMatch(t, []routegraph.Path{
		{"DEL", "BOM", "BLR"},
		{"DEL", "CCU", "BLR"},
	}, view.Paths)

	view, err = svc.FindAlternatives(ctx, "DEL", "BLR", 1)
	require.NoError(t, err)
	assert.Len(t, view.Paths, 1)

	view, err = svc.FindAlternatives(ctx, "DEL", "JFK", 3)
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeNoPath, view.Outcome)
	assert.Empty(t, view.Paths)

	view, err = svc.FindAlternatives(ctx, "NOPE", "GONE", 3)
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeUnknownVertex, view.Outcome)
	assert.Equal(t, []domain.AirportCode{"NOPE", "GONE"}, view.Missing)
}

func TestNetworkService_FindAlternativesCapsLimit(t *testing.T) {
	var routes []domain.RouteRecord
	// 60 two-hop routes between A and Z.
	for i := 0; i < 60; i++ {
		mid := domain.AirportCode(string(rune('a'+i%26)) + string(rune('a'+i/26)))
		routes = append(routes,
			domain.RouteRecord{Source: "A", Destination: mid},
			domain.RouteRecord{Source: mid, Destination: "Z"},
		)
	}
	svc := NewNetworkService(Snapshot{Routes: routes}, Options{Logger: logging.Discard()})

	view, err := svc.FindAlternatives(context.Background(), "A", "Z", 1000)
	require.NoError(t, err)
	assert.Len(t, view.Paths, MaxPathsLimit)
}

func TestNetworkService_AnalyzeEfficiency(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.AnalyzeEfficiency(ctx, "DEL", "MAA")
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeFound, view.Outcome)
	r := view.Report
	assert.Equal(t, 3, r.BFSHops)
	assert.Equal(t, 3, r.DijkstraHops)
	assert.Equal(t, 7, r.Nodes)
	assert.Equal(t, 6, r.Edges)
	assert.Equal(t, 5, r.SpanningTreeEdges)
	assert.Equal(t, 2, r.Components)

	view, err = svc.AnalyzeEfficiency(ctx, "DEL", "DEL")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Report.BFSHops)
	assert.Equal(t, 0, view.Report.DijkstraHops)

	view, err = svc.AnalyzeEfficiency(ctx, "DEL", "LHR")
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeNoPath, view.Outcome)
	assert.Equal(t, -1, view.Report.BFSHops)
	assert.Equal(t, -1, view.Report.DijkstraHops)
	assert.Equal(t, 2, view.Report.Components)

	view, err = svc.AnalyzeEfficiency(ctx, "DEL", "XXX")
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeUnknownVertex, view.Outcome)
	assert.Equal(t, []domain.AirportCode{"XXX"}, view.Missing)
}

func TestNetworkService_ListAirports(t *testing.T) {
	svc, _ := newTestService(t)

	page := svc.ListAirports(ListAirportsParams{})
	assert.Equal(t, PaginationMeta{Page: 1, PageSize: 50, TotalItems: 7, TotalPages: 1}, page.Pagination)
	require.Len(t, page.Items, 7)

	var order []string
	for _, item := range page.Items {
		order = append(order, item.Country+"/"+item.Name)
	}
	assert.Equal(t, []string{
		"India/Akola Airport",
		"India/Bengaluru International Airport",
		"India/Chhatrapati Shivaji International Airport",
		"India/Indira Gandhi International Airport",
		"India/Netaji Subhash Chandra Bose International Airport",
		"United Kingdom/Heathrow Airport",
		"United States/John F Kennedy International Airport",
	}, order)

	page = svc.ListAirports(ListAirportsParams{Page: 2, PageSize: 3})
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 3, TotalItems: 7, TotalPages: 3}, page.Pagination)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Netaji Subhash Chandra Bose International Airport", page.Items[1].Name)

	page = svc.ListAirports(ListAirportsParams{Page: 9, PageSize: 500})
	assert.Equal(t, 200, page.Pagination.PageSize)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestNetworkService_ListAirportsPageBeyondRange(t *testing.T) {
	svc, _ := newTestService(t)

	for _, p := range []int{4, 368934881474191034, math.MaxInt} {
		page := svc.ListAirports(ListAirportsParams{Page: p, PageSize: 3})
		assert.Equal(t, p, page.Pagination.Page)
		assert.Empty(t, page.Items)
	}

	page := svc.ListAirports(ListAirportsParams{Page: 3, PageSize: 3})
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.AirportCode("JFK"), page.Items[0].Code)
}

func TestNetworkService_ListAirportsFilters(t *testing.T) {
	svc, _ := newTestService(t)

	page := svc.ListAirports(ListAirportsParams{Search: "  mumbai "})
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.AirportCode("BOM"), page.Items[0].Code)

	page = svc.ListAirports(ListAirportsParams{Search: "jfk"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "New York", page.Items[0].City)

	page = svc.ListAirports(ListAirportsParams{Country: "united  kingdom"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.AirportCode("LHR"), page.Items[0].Code)
}

func TestNetworkService_Countries(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, []string{"India", "United Kingdom", "United States"}, svc.Countries())
}

func TestNetworkService_AirportsByCountry(t *testing.T) {
	svc, _ := newTestService(t)

	airports, err := svc.AirportsByCountry("United Kingdom")
	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.InDelta(t, 51.47, airports[0].Latitude, 1e-9)

	lower, err := svc.AirportsByCountry("united kingdom")
	require.NoError(t, err)
	assert.Equal(t, airports, lower)
	listed := svc.ListAirports(ListAirportsParams{Country: "india"})
	india, err := svc.AirportsByCountry("india")
	require.NoError(t, err)
	assert.Len(t, india, int(listed.Pagination.TotalItems))

	_, err = svc.AirportsByCountry("Atlantis")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AirportsByCountry(" ")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestNetworkService_Reachable(t *testing.T) {
	svc, _ := newTestService(t)

	reach, err := svc.Reachable(" DEL ")
	require.NoError(t, err)
	assert.Equal(t, []domain.AirportCode{"DEL", "BOM", "CCU", "BLR", "MAA"}, reach)

	reach, err = svc.Reachable("JFK")
	require.NoError(t, err)
	assert.Equal(t, []domain.AirportCode{"JFK", "LHR"}, reach)

	_, err = svc.Reachable("AKD")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Reachable("")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestNetworkService_Airport(t *testing.T) {
	svc, _ := newTestService(t)

	a, ok := svc.Airport("CCU")
	require.True(t, ok)
	assert.Equal(t, "Kolkata", a.City)

	_, ok = svc.Airport("MAA")
	assert.False(t, ok)
}

func TestNetworkService_EmptySnapshot(t *testing.T) {
	svc := NewNetworkService(Snapshot{}, Options{})

	assert.Equal(t, routegraph.Stats{}, svc.Stats())
	assert.Empty(t, svc.Countries())
	assert.Equal(t, routegraph.SpanningForest{}, svc.SpanningForest())

	view, err := svc.FindRoute(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, routegraph.OutcomeUnknownVertex, view.Outcome)
}
