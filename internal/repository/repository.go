package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/graph"
)

// Repository persists the airport and route tables in a graph database and
// reads them back as plain records. Query logic never runs in the database;
// routes are only stored and loaded.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the uniqueness constraint on airport codes.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.ExecuteWrite(ctx, airportConstraintCypher, nil); err != nil {
		return fmt.Errorf("create airport constraint: %w", err)
	}
	return nil
}

// UpsertAirports merges airport nodes keyed by code. Airports without a code
// cannot be joined to routes and are skipped; the number stored is returned.
func (r *Repository) UpsertAirports(ctx context.Context, airports []domain.Airport) (int, error) {
	params := make([]map[string]any, 0, len(airports))
	for _, a := range airports {
		if a.Code == "" {
			continue
		}
		params = append(params, map[string]any{
			"code":  string(a.Code),
			"props": airportProperties(a),
		})
	}
	if len(params) == 0 {
		return 0, nil
	}

	if _, err := r.client.ExecuteWrite(ctx, upsertAirportsCypher, map[string]any{"airports": params}); err != nil {
		return 0, fmt.Errorf("upsert %d airports: %w", len(params), err)
	}
	return len(params), nil
}

// UpsertRoutes merges one ROUTE relationship per distinct directed record.
// Endpoint airports are created when missing.
func (r *Repository) UpsertRoutes(ctx context.Context, routes []domain.RouteRecord) error {
	if len(routes) == 0 {
		return nil
	}
	params := make([]map[string]any, 0, len(routes))
	for _, rt := range routes {
		params = append(params, map[string]any{
			"source":      string(rt.Source),
			"destination": string(rt.Destination),
		})
	}

	if _, err := r.client.ExecuteWrite(ctx, upsertRoutesCypher, map[string]any{"routes": params}); err != nil {
		return fmt.Errorf("upsert %d routes: %w", len(routes), err)
	}
	return nil
}

// LoadRoutes returns every stored route as a record, ordered by source then
// destination so repeated loads build identical graphs.
func (r *Repository) LoadRoutes(ctx context.Context) ([]domain.RouteRecord, error) {
	res, err := r.client.ExecuteRead(ctx, loadRoutesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load routes query: %w", err)
	}

	routes := make([]domain.RouteRecord, 0, len(res.Records))
	for _, record := range res.Records {
		routes = append(routes, domain.RouteRecord{
			Source:      domain.AirportCode(toString(record["source"])),
			Destination: domain.AirportCode(toString(record["destination"])),
		})
	}
	return routes, nil
}

// LoadAirports returns airports that carry table data. Nodes created only as
// route endpoints are excluded.
func (r *Repository) LoadAirports(ctx context.Context) ([]domain.Airport, error) {
	res, err := r.client.ExecuteRead(ctx, loadAirportsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load airports query: %w", err)
	}

	airports := make([]domain.Airport, 0, len(res.Records))
	for _, record := range res.Records {
		airports = append(airports, domain.Airport{
			Code:      domain.AirportCode(toString(record["code"])),
			Name:      toString(record["name"]),
			City:      toString(record["city"]),
			Country:   toString(record["country"]),
			Latitude:  toFloat64(record["latitude"]),
			Longitude: toFloat64(record["longitude"]),
		})
	}
	return airports, nil
}

// CountRoutes returns the number of stored ROUTE relationships.
func (r *Repository) CountRoutes(ctx context.Context) (int64, error) {
	res, err := r.client.ExecuteRead(ctx, countRoutesCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count routes query: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, errors.New("count routes query returned no rows")
	}
	return toInt64(res.Records[0]["total"]), nil
}

func airportProperties(a domain.Airport) map[string]any {
	return map[string]any{
		"name":      a.Name,
		"city":      a.City,
		"country":   a.Country,
		"latitude":  a.Latitude,
		"longitude": a.Longitude,
	}
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

const airportConstraintCypher = `
CREATE CONSTRAINT airport_code IF NOT EXISTS
FOR (a:Airport) REQUIRE a.code IS UNIQUE
`

const upsertAirportsCypher = `
UNWIND $airports AS airport
MERGE (a:Airport {code: airport.code})
SET a += airport.props
`

const upsertRoutesCypher = `
UNWIND $routes AS route
MERGE (s:Airport {code: route.source})
MERGE (d:Airport {code: route.destination})
MERGE (s)-[:ROUTE]->(d)
`

const loadRoutesCypher = `
MATCH (s:Airport)-[:ROUTE]->(d:Airport)
RETURN s.code AS source, d.code AS destination
ORDER BY source, destination
`

const loadAirportsCypher = `
MATCH (a:Airport)
WHERE a.name IS NOT NULL
RETURN a.code AS code,
       a.name AS name,
       a.city AS city,
       a.country AS country,
       a.latitude AS latitude,
       a.longitude AS longitude
ORDER BY a.code
`

const countRoutesCypher = `
MATCH (:Airport)-[r:ROUTE]->(:Airport)
RETURN count(r) AS total
`
