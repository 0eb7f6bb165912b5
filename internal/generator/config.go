package generator

// Config drives the synthetic route network generator.
type Config struct {
	NumAirports  int
	NumRoutes    int
	NumAirlines  int
	NumAirplanes int
	// HubShare is the probability that a route endpoint is drawn from the
	// hub airports instead of uniformly.
	HubShare float64
	// NullCodeChance is the probability that an airport row has no IATA code.
	NullCodeChance float64
	Seed           int64
}

// DefaultConfig returns settings close in size to the public OpenFlights tables.
func DefaultConfig() Config {
	return Config{
		NumAirports:    3000,
		NumRoutes:      60000,
		NumAirlines:    500,
		NumAirplanes:   200,
		HubShare:       0.4,
		NullCodeChance: 0.05,
		Seed:           42,
	}
}
