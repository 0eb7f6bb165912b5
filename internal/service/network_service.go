package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/metrics"
	"github.com/vanshika/airnet/internal/routegraph"
)

// MaxPathsLimit caps how many equally short routes one request may ask for.
const MaxPathsLimit = 50

var (
	// ErrInvalidQuery indicates a request is missing a required argument.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotFound indicates a directory lookup matched nothing.
	ErrNotFound = errors.New("not found")
)

// Options tunes a NetworkService.
type Options struct {
	// PathsLimit is the number of alternatives returned when a caller does not
	// ask for a specific number. Defaults to routegraph.DefaultPathLimit.
	PathsLimit int
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// NetworkService answers airport directory and route queries over a graph
// built once from a Snapshot.
type NetworkService struct {
	engine     *routegraph.Engine
	airports   map[domain.AirportCode]domain.Airport
	directory  []domain.Airport
	pathsLimit int
	metrics    *metrics.Metrics
	logger     *slog.Logger
	dijkstra   *dijkstraIndex
}

// NewNetworkService builds the route graph from snap and indexes its airports.
func NewNetworkService(snap Snapshot, opts Options) *NetworkService {
	if opts.PathsLimit <= 0 {
		opts.PathsLimit = routegraph.DefaultPathLimit
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var g *routegraph.Graph
	took := routegraph.Timed(func() { g = routegraph.Build(snap.Routes) })
	engine := routegraph.NewEngine(g)
	stats := engine.Stats()
	opts.Logger.Info("route graph built",
		"routes", len(snap.Routes),
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"duration_ms", took.Milliseconds(),
	)
	opts.Metrics.SetGraphSize(stats.NodeCount, stats.EdgeCount)

	airports := make(map[domain.AirportCode]domain.Airport, len(snap.Airports))
	directory := make([]domain.Airport, len(snap.Airports))
	copy(directory, snap.Airports)
	for _, a := range snap.Airports {
		if a.Code == "" {
			continue
		}
		if _, dup := airports[a.Code]; !dup {
			airports[a.Code] = a
		}
	}
	sort.SliceStable(directory, func(i, j int) bool {
		if directory[i].Country != directory[j].Country {
			return directory[i].Country < directory[j].Country
		}
		return directory[i].Name < directory[j].Name
	})

	return &NetworkService{
		engine:     engine,
		airports:   airports,
		directory:  directory,
		pathsLimit: opts.PathsLimit,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		dijkstra:   newDijkstraIndex(g),
	}
}

// PathsLimit returns the default number of alternatives.
func (s *NetworkService) PathsLimit() int { return s.pathsLimit }

// Stats returns node and edge counts of the route graph.
func (s *NetworkService) Stats() routegraph.Stats { return s.engine.Stats() }

// SpanningForest returns a spanning forest of the route graph.
func (s *NetworkService) SpanningForest() routegraph.SpanningForest {
	return s.engine.SpanningForest()
}

// Airport looks up a row of the airports table by code.
func (s *NetworkService) Airport(code domain.AirportCode) (domain.Airport, bool) {
	a, ok := s.airports[code]
	return a, ok
}

// ListAirports returns the airports table sorted by country then name.
func (s *NetworkService) ListAirports(params ListAirportsParams) AirportsPage {
	page, pageSize := normalizePagination(params.Page, params.PageSize)
	search := strings.ToLower(sanitizeString(params.Search))
	country := sanitizeString(params.Country)

	var matched []domain.Airport
	for _, a := range s.directory {
		if country != "" && !strings.EqualFold(a.Country, country) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Name), search) &&
			!strings.Contains(strings.ToLower(a.City), search) &&
			!strings.EqualFold(string(a.Code), search) {
			continue
		}
		matched = append(matched, a)
	}

	items := []domain.AirportSummary{}
	offset := len(matched)
	if page-1 < len(matched)/pageSize+1 {
		offset = (page - 1) * pageSize
	}
	for i := offset; i < len(matched) && i < offset+pageSize; i++ {
		a := matched[i]
		items = append(items, domain.AirportSummary{
			Code:    a.Code,
			Name:    a.Name,
			City:    a.City,
			Country: a.Country,
		})
	}

	return AirportsPage{
		Items:      items,
		Pagination: buildPaginationMeta(page, pageSize, int64(len(matched))),
	}
}

// Countries returns the distinct, non-empty countries of the airports table.
func (s *NetworkService) Countries() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range s.directory {
		if a.Country == "" {
			continue
		}
		if _, ok := seen[a.Country]; ok {
			continue
		}
		seen[a.Country] = struct{}{}
		out = append(out, a.Country)
	}
	sort.Strings(out)
	return out
}

// AirportsByCountry returns every airport located in country, with
// coordinates, ordered by name. Countries match case-insensitively, as in
// ListAirports.
func (s *NetworkService) AirportsByCountry(country string) ([]domain.Airport, error) {
	country = sanitizeString(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", ErrInvalidQuery)
	}
	var out []domain.Airport
	for _, a := range s.directory {
		if strings.EqualFold(a.Country, country) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no airports in %q", ErrNotFound, country)
	}
	return out, nil
}

// Reachable returns every airport connected to code by some route, code
// included, nearest first.
func (s *NetworkService) Reachable(code string) ([]domain.AirportCode, error) {
	c := normalizeCode(code)
	if c == "" {
		return nil, fmt.Errorf("%w: airport is required", ErrInvalidQuery)
	}
	reach := s.engine.Component(c)
	if reach == nil {
		return nil, fmt.Errorf("%w: airport %q is not in the route graph", ErrNotFound, c)
	}
	return reach, nil
}

// FindRoute resolves the shortest route between two airports into stops with
// coordinates and roles. Unknown airports and unreachable pairs are reported
// through the view's Outcome, not as errors.
func (s *NetworkService) FindRoute(ctx context.Context, from, to string) (RouteView, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return RouteView{}, err
	}
	if err := ctx.Err(); err != nil {
		return RouteView{}, err
	}

	var res routegraph.PathResult
	took := routegraph.Timed(func() { res = s.engine.ShortestPath(src, dst) })
	s.metrics.ObserveQuery("shortest_path", res.Outcome.String(), took)

	view := RouteView{Outcome: res.Outcome, Path: res.Path, Missing: res.Missing}
	if !res.Found() {
		s.logger.Debug("no route", "from", src, "to", dst, "outcome", res.Outcome.String())
		return view, nil
	}
	view.Stops = s.stops(res.Path)
	view.Legs = legs(res.Path)
	return view, nil
}

// FindAlternatives returns the shortest path between two airports and up to
// limit equally short routes. A limit of zero or less uses the service
// default; larger requests are capped at MaxPathsLimit.
func (s *NetworkService) FindAlternatives(ctx context.Context, from, to string, limit int) (AlternativesView, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return AlternativesView{}, err
	}
	if err := ctx.Err(); err != nil {
		return AlternativesView{}, err
	}
	if limit <= 0 {
		limit = s.pathsLimit
	}
	if limit > MaxPathsLimit {
		limit = MaxPathsLimit
	}

	var (
		sp  routegraph.PathResult
		all routegraph.PathsResult
	)
	took := routegraph.Timed(func() {
		sp = s.engine.ShortestPath(src, dst)
		if sp.Found() {
			all = s.engine.AllShortestPaths(src, dst, limit)
		}
	})
	s.metrics.ObserveQuery("alternatives", sp.Outcome.String(), took)

	return AlternativesView{
		Outcome:  sp.Outcome,
		Shortest: sp.Path,
		Paths:    all.Paths,
		Missing:  sp.Missing,
	}, nil
}

// AnalyzeEfficiency times a breadth-first shortest path, a Dijkstra shortest
// path over unit weights and a spanning forest build, and reports the graph
// size alongside. Durations are informational only.
func (s *NetworkService) AnalyzeEfficiency(ctx context.Context, from, to string) (EfficiencyView, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return EfficiencyView{}, err
	}
	if err := ctx.Err(); err != nil {
		return EfficiencyView{}, err
	}

	stats := s.engine.Stats()
	report := domain.EfficiencyReport{
		Nodes:        stats.NodeCount,
		Edges:        stats.EdgeCount,
		BFSHops:      -1,
		DijkstraHops: -1,
	}

	var res routegraph.PathResult
	report.BFSDuration = routegraph.Timed(func() { res = s.engine.ShortestPath(src, dst) })
	s.metrics.ObserveQuery("efficiency", res.Outcome.String(), report.BFSDuration)
	if res.Outcome == routegraph.OutcomeUnknownVertex {
		return EfficiencyView{Outcome: res.Outcome, Report: report, Missing: res.Missing}, nil
	}
	if res.Found() {
		report.BFSHops = res.Path.Hops()
	}

	start := time.Now()
	if hops, err := s.dijkstra.hops(src, dst); err == nil {
		report.DijkstraHops = hops
	}
	report.DijkstraDuration = time.Since(start)

	var forest routegraph.SpanningForest
	report.SpanningTreeDuration = routegraph.Timed(func() { forest = s.engine.SpanningForest() })
	report.SpanningTreeEdges = len(forest.Edges)
	report.Components = forest.Components

	if report.BFSHops != report.DijkstraHops {
		s.logger.Warn("shortest path algorithms disagree",
			"from", src, "to", dst, "bfs_hops", report.BFSHops, "dijkstra_hops", report.DijkstraHops)
	}

	return EfficiencyView{Outcome: res.Outcome, Report: report}, nil
}

func (s *NetworkService) stops(path routegraph.Path) []domain.RouteStop {
	out := make([]domain.RouteStop, 0, len(path))
	for i, code := range path {
		role := domain.StopConnecting
		switch {
		case i == 0:
			role = domain.StopDeparture
		case i == len(path)-1:
			role = domain.StopArrival
		}
		a, ok := s.airports[code]
		if !ok {
			a = domain.Airport{Code: code}
		}
		out = append(out, domain.RouteStop{Airport: a, Role: role, Known: ok})
	}
	return out
}

func legs(path routegraph.Path) []domain.RouteLeg {
	out := make([]domain.RouteLeg, 0, path.Hops())
	for i := 0; i+1 < len(path); i++ {
		out = append(out, domain.RouteLeg{From: path[i], To: path[i+1]})
	}
	return out
}

func parsePair(from, to string) (domain.AirportCode, domain.AirportCode, error) {
	src, dst := normalizeCode(from), normalizeCode(to)
	if src == "" || dst == "" {
		return "", "", fmt.Errorf("%w: source and destination airports are required", ErrInvalidQuery)
	}
	return src, dst, nil
}

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page, pageSize
}

func buildPaginationMeta(page, pageSize int, total int64) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
		if total > 0 && totalPages == 0 {
			totalPages = 1
		}
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
