package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/airnet/internal/config"
	"github.com/vanshika/airnet/internal/dataset"
	"github.com/vanshika/airnet/internal/domain"
)

// Source produces the tables a NetworkService is built from.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// RouteReader reads stored airports and routes back as records.
type RouteReader interface {
	LoadAirports(ctx context.Context) ([]domain.Airport, error)
	LoadRoutes(ctx context.Context) ([]domain.RouteRecord, error)
}

// CSVSource loads the airports and routes tables from a dataset directory.
type CSVSource struct {
	Dir    string
	Logger *slog.Logger
}

// Load reads every table in the directory concurrently.
func (s CSVSource) Load(ctx context.Context) (Snapshot, error) {
	tables, err := dataset.LoadAll(ctx, s.Dir)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load dataset %s: %w", s.Dir, err)
	}
	if s.Logger != nil {
		s.Logger.Info("dataset loaded",
			"dir", s.Dir,
			"airports", len(tables.Airports),
			"airports_skipped", tables.SkippedAirports,
			"airlines", len(tables.Airlines),
			"airplanes", len(tables.Airplanes),
			"routes", len(tables.Routes),
		)
	}
	return Snapshot{Airports: tables.Airports, Routes: tables.Routes}, nil
}

// GraphSource loads airports and routes previously ingested into the graph
// database.
type GraphSource struct {
	Reader RouteReader
	Logger *slog.Logger
}

// Load reads airports then routes from the store.
func (s GraphSource) Load(ctx context.Context) (Snapshot, error) {
	airports, err := s.Reader.LoadAirports(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load airports: %w", err)
	}
	routes, err := s.Reader.LoadRoutes(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load routes: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("graph snapshot loaded", "airports", len(airports), "routes", len(routes))
	}
	return Snapshot{Airports: airports, Routes: routes}, nil
}

// NewSource picks the Source named by cfg. reader is only consulted for the
// graph source and may be nil otherwise.
func NewSource(cfg config.DataConfig, reader RouteReader, logger *slog.Logger) (Source, error) {
	switch cfg.Source {
	case config.DataSourceCSV, "":
		return CSVSource{Dir: cfg.Dir, Logger: logger}, nil
	case config.DataSourceGraph:
		if reader == nil {
			return nil, fmt.Errorf("data source %q requires a route store", cfg.Source)
		}
		return GraphSource{Reader: reader, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported data source %q", cfg.Source)
	}
}
