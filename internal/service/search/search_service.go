package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/Domenick1991/flightsearch/internal/gateway"
)

const (
	MsgDepartDateMissing   = "Departure date is missing."
	MsgFromMissing         = "Please enter an airport in the 'From:' field."
	MsgToMissing           = "Please enter an airport in the 'To:' field."
	MsgReturnDateMissing   = "Return date is missing."
	MsgUnsupportedTripType = "Trip type must be 'round-trip' or 'one-way'."
)

type SearchUseCase interface {
	Search(ctx context.Context, input SearchInput) (json.RawMessage, error)
}

// SearchInput mirrors the query string of GET /api/flights. TripType is
// optional; without it the presence of ReturnDate decides the trip type.
type SearchInput struct {
	DepartDate string
	ReturnDate string
	FromID     string
	ToID       string
	TripType   string
}

type SearchService struct {
	gateway gateway.FlightSearcher
}

func NewSearchService(gateway gateway.FlightSearcher) *SearchService {
	return &SearchService{gateway: gateway}
}

// Search validates the input and forwards it to the provider. Invalid input
// returns a *domain.ValidationError and the provider is not called.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (json.RawMessage, error) {
	query, err := BuildQuery(input)
	if err != nil {
		return nil, err
	}

	body, err := s.gateway.SearchFlights(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProvider, err)
	}
	return body, nil
}

// BuildQuery collects one message per missing field, in the order departure
// date, origin, destination, then return date for explicit round trips.
func BuildQuery(input SearchInput) (domain.SearchQuery, error) {
	departDate := strings.TrimSpace(input.DepartDate)
	returnDate := strings.TrimSpace(input.ReturnDate)
	from := domain.NormalizeAirportCode(input.FromID)
	to := domain.NormalizeAirportCode(input.ToID)

	var messages []string
	if departDate == "" {
		messages = append(messages, MsgDepartDateMissing)
	}
	if from == "" {
		messages = append(messages, MsgFromMissing)
	}
	if to == "" {
		messages = append(messages, MsgToMissing)
	}

	var tripType domain.TripType
	switch strings.ToLower(strings.TrimSpace(input.TripType)) {
	case "":
		tripType = domain.TripTypeOneWay
		if returnDate != "" {
			tripType = domain.TripTypeRoundTrip
		}
	case string(domain.TripTypeRoundTrip):
		tripType = domain.TripTypeRoundTrip
		if returnDate == "" {
			messages = append(messages, MsgReturnDateMissing)
		}
	case string(domain.TripTypeOneWay):
		tripType = domain.TripTypeOneWay
		returnDate = ""
	default:
		messages = append(messages, MsgUnsupportedTripType)
	}

	if len(messages) > 0 {
		return domain.SearchQuery{}, &domain.ValidationError{Messages: messages}
	}

	return domain.SearchQuery{
		DepartDate: departDate,
		ReturnDate: returnDate,
		FromID:     from,
		ToID:       to,
		TripType:   tripType,
	}, nil
}

var _ SearchUseCase = (*SearchService)(nil)
