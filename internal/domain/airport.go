package domain

// AirportCode identifies an airport (IATA-style). Codes are compared by exact,
// case-sensitive match.
type AirportCode string

// Airport captures a row of the airports table.
type Airport struct {
	Code      AirportCode
	Name      string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Airline captures a row of the airlines table.
type Airline struct {
	Name    string
	IATA    string
	Country string
}

// Airplane captures a row of the airplanes table.
type Airplane struct {
	Name     string
	IATACode string
}
