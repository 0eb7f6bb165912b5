package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/airnet/internal/domain"
)

// maxAirports is the number of distinct three-letter codes.
const maxAirports = 26 * 26 * 26

// Dataset contains the generated tables.
type Dataset struct {
	Airlines  []domain.Airline     `json:"airlines"`
	Airplanes []domain.Airplane    `json:"airplanes"`
	Airports  []domain.Airport     `json:"airports"`
	Routes    []domain.RouteRecord `json:"routes"`
}

// Generator produces synthetic airport and route tables in the shape the
// dataset loader reads.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumAirports <= 0 {
		cfg.NumAirports = DefaultConfig().NumAirports
	}
	if cfg.NumAirports > maxAirports {
		cfg.NumAirports = maxAirports
	}
	if cfg.NumRoutes < 0 {
		cfg.NumRoutes = 0
	}
	if cfg.NumAirlines <= 0 {
		cfg.NumAirlines = DefaultConfig().NumAirlines
	}
	if cfg.NumAirplanes <= 0 {
		cfg.NumAirplanes = DefaultConfig().NumAirplanes
	}
	if cfg.HubShare < 0 {
		cfg.HubShare = 0
	}
	if cfg.NullCodeChance < 0 {
		cfg.NullCodeChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultNameFragments(),
	}
}

// Generate synthesises every table. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	airports := make([]domain.Airport, g.cfg.NumAirports)
	used := make(map[domain.AirportCode]struct{}, g.cfg.NumAirports)
	var coded []domain.AirportCode

	for i := range airports {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		code := g.uniqueCode(used)
		country := g.fragments.countries[g.rand.Intn(len(g.fragments.countries))]
		city := g.randomCity()
		airports[i] = domain.Airport{
			Code:      code,
			Name:      fmt.Sprintf("%s %s Airport", city, g.fragments.airportKinds[g.rand.Intn(len(g.fragments.airportKinds))]),
			City:      city,
			Country:   country,
			Latitude:  g.rand.Float64()*180 - 90,
			Longitude: g.rand.Float64()*360 - 180,
		}
		if g.rand.Float64() < g.cfg.NullCodeChance {
			airports[i].Code = ""
			continue
		}
		coded = append(coded, code)
	}

	var routes []domain.RouteRecord
	if len(coded) >= 2 {
		hubs := coded[:max(1, len(coded)/20)]
		routes = make([]domain.RouteRecord, 0, g.cfg.NumRoutes)
		for i := 0; i < g.cfg.NumRoutes; i++ {
			if err := ctx.Err(); err != nil {
				return Dataset{}, err
			}
			src := g.endpoint(coded, hubs)
			dst := g.endpoint(coded, hubs)
			for dst == src {
				dst = coded[g.rand.Intn(len(coded))]
			}
			routes = append(routes, domain.RouteRecord{Source: src, Destination: dst})
		}
	}

	airlines := make([]domain.Airline, g.cfg.NumAirlines)
	for i := range airlines {
		airlines[i] = domain.Airline{
			Name:    fmt.Sprintf("%s %s", g.randomCity(), g.fragments.airlineSuffix[g.rand.Intn(len(g.fragments.airlineSuffix))]),
			IATA:    g.randomLetters(2),
			Country: g.fragments.countries[g.rand.Intn(len(g.fragments.countries))],
		}
	}

	airplanes := make([]domain.Airplane, g.cfg.NumAirplanes)
	for i := range airplanes {
		family := g.fragments.aircraft[g.rand.Intn(len(g.fragments.aircraft))]
		variant := 100 + g.rand.Intn(9)*100
		airplanes[i] = domain.Airplane{
			Name:     fmt.Sprintf("%s %d", family.name, variant),
			IATACode: fmt.Sprintf("%s%d", family.prefix, variant/100),
		}
	}

	return Dataset{
		Airlines:  airlines,
		Airplanes: airplanes,
		Airports:  airports,
		Routes:    routes,
	}, nil
}

func (g *Generator) endpoint(coded, hubs []domain.AirportCode) domain.AirportCode {
	if g.rand.Float64() < g.cfg.HubShare {
		return hubs[g.rand.Intn(len(hubs))]
	}
	return coded[g.rand.Intn(len(coded))]
}

func (g *Generator) uniqueCode(used map[domain.AirportCode]struct{}) domain.AirportCode {
	for {
		code := domain.AirportCode(g.randomLetters(3))
		if _, taken := used[code]; !taken {
			used[code] = struct{}{}
			return code
		}
	}
}

func (g *Generator) randomLetters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + g.rand.Intn(26))
	}
	return string(b)
}

func (g *Generator) randomCity() string {
	return fmt.Sprintf("%s%s", g.fragments.cityPrefix[g.rand.Intn(len(g.fragments.cityPrefix))],
		g.fragments.citySuffix[g.rand.Intn(len(g.fragments.citySuffix))])
}

type aircraftFamily struct {
	name   string
	prefix string
}

type nameFragments struct {
	cityPrefix    []string
	citySuffix    []string
	countries     []string
	airportKinds  []string
	airlineSuffix []string
	aircraft      []aircraftFamily
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		cityPrefix:    []string{"North", "Port", "Lake", "San", "New", "Fort", "East", "West", "Mount", "Saint", "Glen", "Bay"},
		citySuffix:    []string{"haven", "field", "ton", "ville", "burg", "ford", "mouth", "view", "ridge", "dale"},
		countries:     []string{"India", "Kenya", "Brazil", "Canada", "Germany", "Japan", "Australia", "Mexico", "Norway", "Egypt", "Chile", "Vietnam"},
		airportKinds:  []string{"International", "Regional", "Municipal", "Field"},
		airlineSuffix: []string{"Air", "Airways", "Airlines", "Aviation", "Express"},
		aircraft: []aircraftFamily{
			{name: "Airbus A3", prefix: "3"},
			{name: "Boeing 7", prefix: "7"},
			{name: "Embraer E", prefix: "E"},
			{name: "Bombardier CRJ", prefix: "CR"},
		},
	}
}
