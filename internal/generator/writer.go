package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vanshika/airnet/internal/dataset"
)

// WriteDataset serializes the dataset into the four table files the dataset
// loader expects under the provided directory.
func WriteDataset(ds Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	airlines := [][]string{{dataset.ColName, dataset.ColIATA, dataset.ColCountry}}
	for _, a := range ds.Airlines {
		airlines = append(airlines, []string{a.Name, a.IATA, a.Country})
	}

	airplanes := [][]string{{dataset.ColName, dataset.ColIATACode}}
	for _, a := range ds.Airplanes {
		airplanes = append(airplanes, []string{a.Name, a.IATACode})
	}

	airports := [][]string{{dataset.ColName, dataset.ColCity, dataset.ColCountry, dataset.ColIATA, dataset.ColLatitude, dataset.ColLongitude}}
	for _, a := range ds.Airports {
		code := string(a.Code)
		if code == "" {
			code = dataset.NullValue
		}
		airports = append(airports, []string{
			a.Name,
			a.City,
			a.Country,
			code,
			strconv.FormatFloat(a.Latitude, 'f', 6, 64),
			strconv.FormatFloat(a.Longitude, 'f', 6, 64),
		})
	}

	routes := [][]string{{dataset.ColSource, dataset.ColDestination}}
	for _, r := range ds.Routes {
		routes = append(routes, []string{string(r.Source), string(r.Destination)})
	}

	files := []struct {
		name string
		rows [][]string
	}{
		{dataset.AirlinesFile, airlines},
		{dataset.AirplanesFile, airplanes},
		{dataset.AirportsFile, airports},
		{dataset.RoutesFile, routes},
	}
	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv for %s: %w", path, err)
	}
	return nil
}
