package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeDuplicate = "duplicate"
)

var (
	gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightsearch_gateway_requests_total",
		Help: "Requests sent to the flight search provider, by outcome",
	}, []string{"outcome"})

	gatewayLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightsearch_gateway_request_duration_seconds",
		Help:    "Latency of flight search provider requests",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
	})

	savedFlightOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightsearch_saved_flight_operations_total",
		Help: "Saved flight store operations, by operation and outcome",
	}, []string{"op", "outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightsearch_http_requests_total",
		Help: "HTTP requests served, by method, route and status",
	}, []string{"method", "route", "status"})
)

func ObserveGatewayRequest(outcome string, elapsed time.Duration) {
	gatewayRequests.WithLabelValues(outcome).Inc()
	gatewayLatency.Observe(elapsed.Seconds())
}

func IncSavedFlightOp(op, outcome string) {
	savedFlightOps.WithLabelValues(op, outcome).Inc()
}

func IncHTTPRequest(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
