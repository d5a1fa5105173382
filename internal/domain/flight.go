package domain

// SavedFlight is a row of the flights table. Rows are never updated; they are
// created by a save and removed by a delete on FlightNumber.
type SavedFlight struct {
	ID           int64  `json:"id"`
	FlightNumber string `json:"flight_number"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
}

// NewFlight is the input of a save. A nil field is stored as NULL, so any
// number of flights without a flight number can coexist.
type NewFlight struct {
	FlightNumber *string
	Departure    *string
	Arrival      *string
}

// Saved is the row a successful save produced, as List reports it.
func (f NewFlight) Saved(id int64) SavedFlight {
	return SavedFlight{
		ID:           id,
		FlightNumber: textOrEmpty(f.FlightNumber),
		Departure:    textOrEmpty(f.Departure),
		Arrival:      textOrEmpty(f.Arrival),
	}
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
