package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/routegraph"
	"github.com/vanshika/airnet/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.NetworkService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.NetworkService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleAirports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	result := h.service.ListAirports(service.ListAirportsParams{
		Page:     parseInt(query.Get("page"), 1),
		PageSize: parseInt(query.Get("pageSize"), 50),
		Search:   query.Get("search"),
		Country:  query.Get("country"),
	})

	resp := listAirportsResponse{
		Items: make([]airportSummaryResponse, 0, len(result.Items)),
		Pagination: paginationResponse{
			Page:       result.Pagination.Page,
			PageSize:   result.Pagination.PageSize,
			TotalItems: result.Pagination.TotalItems,
			TotalPages: result.Pagination.TotalPages,
		},
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, airportSummaryResponse{
			Code:    string(item.Code),
			Name:    item.Name,
			City:    item.City,
			Country: item.Country,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	countries := h.service.Countries()
	if countries == nil {
		countries = []string{}
	}
	respondJSON(w, http.StatusOK, countriesResponse{Countries: countries})
}

func (h *APIHandlers) handleAirportsByCountry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	country := strings.TrimPrefix(r.URL.Path, "/airports/country/")
	country = strings.Trim(country, "/")
	if country == "" {
		writeError(w, http.StatusBadRequest, "country is required")
		return
	}

	airports, err := h.service.AirportsByCountry(country)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list airports by country")
		return
	}

	resp := airportsByCountryResponse{
		Country:  country,
		Airports: make([]airportResponse, 0, len(airports)),
	}
	for _, a := range airports {
		resp.Airports = append(resp.Airports, toAirportResponse(a))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleGraphStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	stats := h.service.Stats()
	respondJSON(w, http.StatusOK, statsResponse{
		NodeCount: stats.NodeCount,
		EdgeCount: stats.EdgeCount,
	})
}

func (h *APIHandlers) handleSpanningForest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	var forest routegraph.SpanningForest
	took := routegraph.Timed(func() { forest = h.service.SpanningForest() })

	resp := spanningForestResponse{
		Edges:      make([]edgeResponse, 0, len(forest.Edges)),
		EdgeCount:  len(forest.Edges),
		Components: forest.Components,
		DurationMs: durationMillis(took),
	}
	for _, e := range forest.Edges {
		resp.Edges = append(resp.Edges, edgeResponse{A: string(e.A), B: string(e.B)})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleReachable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	airport := r.URL.Query().Get("airport")
	reach, err := h.service.Reachable(airport)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to resolve reachable airports")
		return
	}
	respondJSON(w, http.StatusOK, reachableResponse{
		Airport:  strings.TrimSpace(airport),
		Count:    len(reach),
		Airports: codeStrings(reach),
	})
}

func (h *APIHandlers) handleRoutePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")
	view, err := h.service.FindRoute(r.Context(), from, to)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to find route")
		return
	}
	if view.Outcome == routegraph.OutcomeUnknownVertex {
		writeUnknownAirports(w, view.Missing)
		return
	}

	resp := routeResponse{
		From:    strings.TrimSpace(from),
		To:      strings.TrimSpace(to),
		Outcome: view.Outcome.String(),
		Found:   view.Outcome == routegraph.OutcomeFound,
		Path:    codeStrings(view.Path),
		Hops:    view.Path.Hops(),
		Stops:   make([]stopResponse, 0, len(view.Stops)),
		Legs:    make([]legResponse, 0, len(view.Legs)),
	}
	if !resp.Found {
		resp.Hops = -1
	}
	for _, stop := range view.Stops {
		resp.Stops = append(resp.Stops, stopResponse{
			airportResponse: toAirportResponse(stop.Airport),
			Role:            string(stop.Role),
			Known:           stop.Known,
		})
	}
	for _, leg := range view.Legs {
		resp.Legs = append(resp.Legs, legResponse{From: string(leg.From), To: string(leg.To)})
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	from, to := query.Get("from"), query.Get("to")
	view, err := h.service.FindAlternatives(r.Context(), from, to, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to find alternative routes")
		return
	}
	if view.Outcome == routegraph.OutcomeUnknownVertex {
		writeUnknownAirports(w, view.Missing)
		return
	}

	resp := alternativesResponse{
		From:     strings.TrimSpace(from),
		To:       strings.TrimSpace(to),
		Outcome:  view.Outcome.String(),
		Found:    view.Outcome == routegraph.OutcomeFound,
		Shortest: codeStrings(view.Shortest),
		Hops:     view.Shortest.Hops(),
		Paths:    make([][]string, 0, len(view.Paths)),
	}
	if !resp.Found {
		resp.Hops = -1
	}
	for _, p := range view.Paths {
		resp.Paths = append(resp.Paths, codeStrings(p))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleEfficiency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	view, err := h.service.AnalyzeEfficiency(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to analyze efficiency")
		return
	}
	if view.Outcome == routegraph.OutcomeUnknownVertex {
		writeUnknownAirports(w, view.Missing)
		return
	}

	rep := view.Report
	respondJSON(w, http.StatusOK, efficiencyResponse{
		Outcome:             view.Outcome.String(),
		BFSMs:               durationMillis(rep.BFSDuration),
		DijkstraMs:          durationMillis(rep.DijkstraDuration),
		SpanningTreeMs:      durationMillis(rep.SpanningTreeDuration),
		BFSHops:             rep.BFSHops,
		DijkstraHops:        rep.DijkstraHops,
		Nodes:               rep.Nodes,
		Edges:               rep.Edges,
		SpanningTreeEdges:   rep.SpanningTreeEdges,
		ConnectedComponents: rep.Components,
	})
}

func (h *APIHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("request cancelled", "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Error(msg, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func writeUnknownAirports(w http.ResponseWriter, missing []domain.AirportCode) {
	respondJSON(w, http.StatusNotFound, unknownAirportsResponse{
		Error:   "unknown airport",
		Outcome: routegraph.OutcomeUnknownVertex.String(),
		Missing: codeStrings(missing),
	})
}

// --- Response DTOs ---

type paginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

type airportSummaryResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type listAirportsResponse struct {
	Items      []airportSummaryResponse `json:"items"`
	Pagination paginationResponse       `json:"pagination"`
}

type countriesResponse struct {
	Countries []string `json:"countries"`
}

type airportResponse struct {
	Code      string  `json:"code"`
	Name      string  `json:"name,omitempty"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type airportsByCountryResponse struct {
	Country  string            `json:"country"`
	Airports []airportResponse `json:"airports"`
}

type statsResponse struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

type edgeResponse struct {
	A string `json:"a"`
	B string `json:"b"`
}

type reachableResponse struct {
	Airport  string   `json:"airport"`
	Count    int      `json:"count"`
	Airports []string `json:"airports"`
}

type spanningForestResponse struct {
	Edges      []edgeResponse `json:"edges"`
	EdgeCount  int            `json:"edgeCount"`
	Components int            `json:"components"`
	DurationMs float64        `json:"durationMs"`
}

type stopResponse struct {
	airportResponse
	Role  string `json:"role"`
	Known bool   `json:"known"`
}

type legResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type routeResponse struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	Outcome string         `json:"outcome"`
	Found   bool           `json:"found"`
	Path    []string       `json:"path"`
	Hops    int            `json:"hops"`
	Stops   []stopResponse `json:"stops"`
	Legs    []legResponse  `json:"legs"`
}

type alternativesResponse struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Outcome  string     `json:"outcome"`
	Found    bool       `json:"found"`
	Shortest []string   `json:"shortest"`
	Hops     int        `json:"hops"`
	Paths    [][]string `json:"paths"`
}

type efficiencyResponse struct {
	Outcome             string  `json:"outcome"`
	BFSMs               float64 `json:"bfsMs"`
	DijkstraMs          float64 `json:"dijkstraMs"`
	SpanningTreeMs      float64 `json:"spanningTreeMs"`
	BFSHops             int     `json:"bfsHops"`
	DijkstraHops        int     `json:"dijkstraHops"`
	Nodes               int     `json:"nodes"`
	Edges               int     `json:"edges"`
	SpanningTreeEdges   int     `json:"spanningTreeEdges"`
	ConnectedComponents int     `json:"connectedComponents"`
}

type unknownAirportsResponse struct {
	Error   string   `json:"error"`
	Outcome string   `json:"outcome"`
	Missing []string `json:"missing"`
}

func toAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{
		Code:      string(a.Code),
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func codeStrings[T ~string](codes []T) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, string(c))
	}
	return out
}

func durationMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
