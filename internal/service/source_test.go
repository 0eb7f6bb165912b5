package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/airnet/internal/config"
	"github.com/vanshika/airnet/internal/dataset"
	"github.com/vanshika/airnet/internal/domain"
	"github.com/vanshika/airnet/internal/logging"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		dataset.AirlinesFile:  "Name,IATA,Country\nAir India,AI,India\n",
		dataset.AirplanesFile: "Name,IATA code\nAirbus A320,320\n",
		dataset.AirportsFile: "Name,City,Country,IATA,Latitude,Longitude\n" +
			"Indira Gandhi International Airport,Delhi,India,DEL,28.56,77.10\n" +
			"Chhatrapati Shivaji International Airport,Mumbai,India,BOM,19.08,72.86\n",
		dataset.RoutesFile: "Source airport,Destination airport\nDEL,BOM\nBOM,BLR\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestCSVSource_Load(t *testing.T) {
	dir := writeDataset(t)

	snap, err := CSVSource{Dir: dir, Logger: logging.Discard()}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Airports, 2)
	assert.Equal(t, []domain.RouteRecord{
		{Source: "DEL", Destination: "BOM"},
		{Source: "BOM", Destination: "BLR"},
	}, snap.Routes)
}

func TestCSVSource_MissingDirectory(t *testing.T) {
	_, err := CSVSource{Dir: filepath.Join(t.TempDir(), "absent")}.Load(context.Background())
	assert.ErrorIs(t, err, dataset.ErrMissingTable)
}

type stubReader struct {
	airports    []domain.Airport
	routes      []domain.RouteRecord
	airportsErr error
	routesErr   error
}

func (s stubReader) LoadAirports(context.Context) ([]domain.Airport, error) {
	return s.airports, s.airportsErr
}

func (s stubReader) LoadRoutes(context.Context) ([]domain.RouteRecord, error) {
	return s.routes, s.routesErr
}

func TestGraphSource_Load(t *testing.T) {
	reader := stubReader{
		airports: []domain.Airport{{Code: "DEL", Name: "Indira Gandhi International Airport"}},
		routes:   []domain.RouteRecord{{Source: "DEL", Destination: "BOM"}},
	}

	snap, err := GraphSource{Reader: reader}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reader.airports, snap.Airports)
	assert.Equal(t, reader.routes, snap.Routes)
}

func TestGraphSource_Errors(t *testing.T) {
	boom := errors.New("session expired")

	_, err := GraphSource{Reader: stubReader{airportsErr: boom}}.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load airports")

	_, err = GraphSource{Reader: stubReader{routesErr: boom}}.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load routes")
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(config.DataConfig{Source: config.DataSourceCSV, Dir: "/data"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, CSVSource{Dir: "/data"}, src)

	src, err = NewSource(config.DataConfig{Source: config.DataSourceGraph}, stubReader{}, nil)
	require.NoError(t, err)
	assert.IsType(t, GraphSource{}, src)

	_, err = NewSource(config.DataConfig{Source: config.DataSourceGraph}, nil, nil)
	assert.Error(t, err)

	_, err = NewSource(config.DataConfig{Source: "s3"}, nil, nil)
	assert.Error(t, err)
}
