package domain

import "strings"

type TripType string

const (
	TripTypeRoundTrip TripType = "round-trip"
	TripTypeOneWay    TripType = "one-way"
)

// ProviderValue is the google_flights "type" parameter.
func (t TripType) ProviderValue() string {
	if t == TripTypeRoundTrip {
		return "1"
	}
	return "2"
}

// SearchQuery is a validated query ready for the gateway. ReturnDate is set
// only for round trips.
type SearchQuery struct {
	DepartDate string
	ReturnDate string
	FromID     string
	ToID       string
	TripType   TripType
}

// NormalizeAirportCode trims and upper-cases an airport code.
func NormalizeAirportCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
