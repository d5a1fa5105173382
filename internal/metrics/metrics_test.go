package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGatewayRequest(t *testing.T) {
	before := testutil.ToFloat64(gatewayRequests.WithLabelValues(OutcomeError))
	ObserveGatewayRequest(OutcomeError, 150*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(gatewayRequests.WithLabelValues(OutcomeError)))
}

func TestIncSavedFlightOp(t *testing.T) {
	before := testutil.ToFloat64(savedFlightOps.WithLabelValues("save", OutcomeDuplicate))
	IncSavedFlightOp("save", OutcomeDuplicate)
	assert.Equal(t, before+1, testutil.ToFloat64(savedFlightOps.WithLabelValues("save", OutcomeDuplicate)))
}

func TestIncHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/saved-flights", "200"))
	IncHTTPRequest("GET", "/api/saved-flights", 200)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/saved-flights", "200")))
}
