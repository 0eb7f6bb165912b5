package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vanshika/airnet/internal/domain"
)

// Column headers, as published by OpenFlights-derived exports.
const (
	ColName        = "Name"
	ColCity        = "City"
	ColCountry     = "Country"
	ColIATA        = "IATA"
	ColIATACode    = "IATA code"
	ColLatitude    = "Latitude"
	ColLongitude   = "Longitude"
	ColSource      = "Source airport"
	ColDestination = "Destination airport"
)

// NullValue marks an absent value in OpenFlights exports.
const NullValue = `\N`

var validate = validator.New()

type airportRow struct {
	Name      string  `validate:"required"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// ReadRoutes parses the routes table. Rows are not validated: every source and
// destination, empty or not, becomes a route record.
func ReadRoutes(r io.Reader) ([]domain.RouteRecord, error) {
	var out []domain.RouteRecord
	err := scan(r, []string{ColSource, ColDestination}, func(row row) error {
		out = append(out, domain.RouteRecord{
			Source:      domain.AirportCode(row.get(ColSource)),
			Destination: domain.AirportCode(row.get(ColDestination)),
		})
		return nil
	})
	return out, err
}

// ReadAirports parses the airports table, returning the valid rows and the
// number of rows skipped for failing validation.
func ReadAirports(r io.Reader) ([]domain.Airport, int, error) {
	var (
		out     []domain.Airport
		skipped int
	)
	cols := []string{ColName, ColCity, ColCountry, ColIATA, ColLatitude, ColLongitude}
	err := scan(r, cols, func(row row) error {
		lat, latErr := strconv.ParseFloat(row.get(ColLatitude), 64)
		lon, lonErr := strconv.ParseFloat(row.get(ColLongitude), 64)
		if latErr != nil || lonErr != nil {
			skipped++
			return nil
		}
		candidate := airportRow{Name: row.get(ColName), Latitude: lat, Longitude: lon}
		if err := validate.Struct(candidate); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				skipped++
				return nil
			}
			return err
		}
		out = append(out, domain.Airport{
			Code:      domain.AirportCode(row.get(ColIATA)),
			Name:      candidate.Name,
			City:      row.get(ColCity),
			Country:   row.get(ColCountry),
			Latitude:  lat,
			Longitude: lon,
		})
		return nil
	})
	return out, skipped, err
}

// ReadAirlines parses the airlines table.
func ReadAirlines(r io.Reader) ([]domain.Airline, error) {
	var out []domain.Airline
	err := scan(r, []string{ColName, ColIATA, ColCountry}, func(row row) error {
		out = append(out, domain.Airline{
			Name:    row.get(ColName),
			IATA:    row.get(ColIATA),
			Country: row.get(ColCountry),
		})
		return nil
	})
	return out, err
}

// ReadAirplanes parses the airplanes table.
func ReadAirplanes(r io.Reader) ([]domain.Airplane, error) {
	var out []domain.Airplane
	err := scan(r, []string{ColName, ColIATACode}, func(row row) error {
		out = append(out, domain.Airplane{
			Name:     row.get(ColName),
			IATACode: row.get(ColIATACode),
		})
		return nil
	})
	return out, err
}

type row struct {
	columns map[string]int
	fields  []string
}

func (r row) get(col string) string {
	idx, ok := r.columns[col]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	v := strings.TrimSpace(r.fields[idx])
	if v == NullValue {
		return ""
	}
	return v
}

func scan(r io.Reader, required []string, fn func(row) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty table", ErrMissingColumn)
		}
		return fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(row{columns: columns, fields: fields}); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}
