// Package dataset reads the airline, airplane, airport and route tables from
// CSV files. Routes are passed through as-is; airport rows are validated and
// malformed ones skipped.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/airnet/internal/domain"
)

// Table file names inside a data directory.
const (
	AirlinesFile  = "airlines.csv"
	AirplanesFile = "airplanes.csv"
	AirportsFile  = "airports.csv"
	RoutesFile    = "routes.csv"
)

var (
	// ErrMissingColumn indicates a required header is absent from a table.
	ErrMissingColumn = errors.New("required column missing")
	// ErrMissingTable indicates a table file does not exist in the data directory.
	ErrMissingTable = errors.New("table file not found")
)

// Tables holds every table loaded from a data directory.
type Tables struct {
	Airlines  []domain.Airline
	Airplanes []domain.Airplane
	Airports  []domain.Airport
	Routes    []domain.RouteRecord
	// SkippedAirports counts airport rows rejected by validation.
	SkippedAirports int
}

// LoadAll reads the four tables from dir concurrently.
func LoadAll(ctx context.Context, dir string) (*Tables, error) {
	var t Tables
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return readFile(gctx, filepath.Join(dir, AirlinesFile), func(f *os.File) (err error) {
			t.Airlines, err = ReadAirlines(f)
			return err
		})
	})
	g.Go(func() error {
		return readFile(gctx, filepath.Join(dir, AirplanesFile), func(f *os.File) (err error) {
			t.Airplanes, err = ReadAirplanes(f)
			return err
		})
	})
	g.Go(func() error {
		return readFile(gctx, filepath.Join(dir, AirportsFile), func(f *os.File) (err error) {
			t.Airports, t.SkippedAirports, err = ReadAirports(f)
			return err
		})
	})
	g.Go(func() error {
		return readFile(gctx, filepath.Join(dir, RoutesFile), func(f *os.File) (err error) {
			t.Routes, err = ReadRoutes(f)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

func readFile(ctx context.Context, path string, fn func(*os.File) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingTable, path)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
