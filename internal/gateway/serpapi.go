package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/flightsearch/config"
	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/Domenick1991/flightsearch/internal/metrics"
	"golang.org/x/time/rate"
)

// maxResponseBytes bounds how much of a provider body is buffered.
const maxResponseBytes = 16 << 20

// FlightSearcher is the external flight-search provider as seen by the service.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, query domain.SearchQuery) (json.RawMessage, error)
}

// SerpAPIClient talks to the SerpApi google_flights engine. It keeps no state
// between calls apart from the optional outbound limiter.
type SerpAPIClient struct {
	baseURL    string
	apiKey     string
	engine     string
	language   string
	country    string
	currency   string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxBody    int64
	logger     *slog.Logger
}

func NewSerpAPIClient(cfg config.GatewayConfig, logger *slog.Logger) *SerpAPIClient {
	c := &SerpAPIClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		engine:     cfg.Engine,
		language:   cfg.Language,
		country:    cfg.Country,
		currency:   cfg.Currency,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		maxBody:    maxResponseBytes,
		logger:     logger,
	}
	if cfg.RateLimitPerSecond > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), burst)
	}
	return c
}

// SearchFlights returns the provider body exactly as received.
func (c *SerpAPIClient) SearchFlights(ctx context.Context, query domain.SearchQuery) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.searchFlights(ctx, query)
	if err != nil {
		metrics.ObserveGatewayRequest(metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	metrics.ObserveGatewayRequest(metrics.OutcomeSuccess, time.Since(start))
	return body, nil
}

func (c *SerpAPIClient) searchFlights(ctx context.Context, query domain.SearchQuery) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("provider response exceeds %d bytes", c.maxBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, providerError(body))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("provider returned a non-JSON body")
	}

	var results domain.SearchResults
	if err := json.Unmarshal(body, &results); err != nil {
		c.logger.WarnContext(ctx, "provider response does not match the expected schema", "error", err)
	} else {
		if results.Error != "" {
			return nil, fmt.Errorf("provider error: %s", results.Error)
		}
		c.logger.DebugContext(ctx, "provider response received",
			"from", query.FromID,
			"to", query.ToID,
			"offers", results.OfferCount(),
		)
	}

	return body, nil
}

func (c *SerpAPIClient) searchURL(query domain.SearchQuery) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("engine", c.engine)
	params.Set("hl", c.language)
	params.Set("gl", c.country)
	params.Set("currency", c.currency)
	params.Set("departure_id", query.FromID)
	params.Set("arrival_id", query.ToID)
	params.Set("outbound_date", query.DepartDate)
	params.Set("type", query.TripType.ProviderValue())
	if query.TripType == domain.TripTypeRoundTrip && query.ReturnDate != "" {
		params.Set("return_date", query.ReturnDate)
	}
	return c.baseURL + "/search.json?" + params.Encode()
}

func providerError(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(http.StatusBadGateway)
}

var _ FlightSearcher = (*SerpAPIClient)(nil)
