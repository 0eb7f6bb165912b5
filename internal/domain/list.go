package domain

// AirportSummary represents the airports table as listed by the directory.
type AirportSummary struct {
	Code    AirportCode
	Name    string
	City    string
	Country string
}
