package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/pkg/logging"
	"github.com/skycast/skycast/pkg/metrics"
)

// GeocodeService resolves city names through the Open-Meteo geocoding API
type GeocodeService struct {
	client  *resty.Client
	logger  *logging.Logger
	metrics *metrics.Collector
}

// NewGeocodeService creates a new geocoding service
func NewGeocodeService(baseURL string, timeout time.Duration, logger *logging.Logger, collector *metrics.Collector) *GeocodeService {
	return &GeocodeService{
		client:  newUpstreamClient(baseURL, timeout),
		logger:  logger,
		metrics: collector,
	}
}

// GeocodeResult is a single match from the geocoding API
type GeocodeResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Timezone  string  `json:"timezone"`
}

// DisplayName joins the place name with its region and country, skipping
// parts the provider left empty
func (r GeocodeResult) DisplayName() string {
	parts := []string{r.Name}
	if r.Admin1 != "" {
		parts = append(parts, r.Admin1)
	}
	if r.Country != "" {
		parts = append(parts, r.Country)
	}
	return strings.Join(parts, ", ")
}

// geocodeResponse is the geocoding API response body
type geocodeResponse struct {
	Results []GeocodeResult `json:"results"`
}

// Search resolves a city name to its best match. Zero results map to
// domain.ErrCityNotFound.
func (s *GeocodeService) Search(ctx context.Context, city string) (*GeocodeResult, error) {
	timer := s.metrics.NewTimer(s.metrics.UpstreamRequestDuration.WithLabelValues(providerGeocoding))
	defer timer.ObserveDuration()

	var out geocodeResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":  city,
			"count": "1",
		}).
		SetResult(&out).
		Get("/v1/search")
	if err != nil {
		s.metrics.RecordUpstreamRequest(providerGeocoding, "error")
		return nil, &domain.UpstreamError{Provider: providerGeocoding, Err: err}
	}
	if !resp.IsSuccess() {
		s.metrics.RecordUpstreamRequest(providerGeocoding, "error")
		return nil, upstreamStatusError(providerGeocoding, resp)
	}

	if len(out.Results) == 0 {
		s.metrics.RecordUpstreamRequest(providerGeocoding, "not_found")
		return nil, domain.ErrCityNotFound
	}

	s.metrics.RecordUpstreamRequest(providerGeocoding, "ok")
	result := out.Results[0]
	s.logger.Debug(ctx, "geocoded city", logging.Fields{
		"query":     city,
		"name":      result.Name,
		"latitude":  result.Latitude,
		"longitude": result.Longitude,
	})

	return &result, nil
}
