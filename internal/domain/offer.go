package domain

// SearchResults is the part of a google_flights response the service looks at.
// Handlers still return the provider body untouched; these types exist so that
// schema drift shows up here first.
type SearchResults struct {
	BestFlights  []OfferGroup `json:"best_flights"`
	OtherFlights []OfferGroup `json:"other_flights"`
	Error        string       `json:"error,omitempty"`
}

func (r SearchResults) OfferCount() int {
	return len(r.BestFlights) + len(r.OtherFlights)
}

// OfferGroup is one or more legs sold together at a single price.
type OfferGroup struct {
	Flights       []FlightLeg `json:"flights"`
	TotalDuration int         `json:"total_duration"`
	Price         int         `json:"price"`
	Type          string      `json:"type"`
}

type FlightLeg struct {
	FlightNumber     string      `json:"flight_number"`
	Airline          string      `json:"airline"`
	DepartureAirport AirportTime `json:"departure_airport"`
	ArrivalAirport   AirportTime `json:"arrival_airport"`
	Duration         int         `json:"duration"`
}

type AirportTime struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}
