package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAirportCode(t *testing.T) {
	assert.Equal(t, "CLE", NormalizeAirportCode("cle"))
	assert.Equal(t, "CLE", NormalizeAirportCode(" CLE "))
	assert.Equal(t, NormalizeAirportCode("cle"), NormalizeAirportCode(NormalizeAirportCode("cle")))
}

func TestTripType_ProviderValue(t *testing.T) {
	assert.Equal(t, "1", TripTypeRoundTrip.ProviderValue())
	assert.Equal(t, "2", TripTypeOneWay.ProviderValue())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Messages: []string{"a.", "b."}}
	assert.Equal(t, "validation failed: a. b.", err.Error())
}
