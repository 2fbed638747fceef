package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/pkg/logging"
	"github.com/skycast/skycast/pkg/metrics"
)

// currentFields is the fixed field set requested from the forecast provider
const currentFields = "temperature_2m,apparent_temperature,relative_humidity_2m,precipitation,weather_code,wind_speed_10m"

// ForecastService fetches current conditions from the Open-Meteo forecast API
type ForecastService struct {
	client  *resty.Client
	logger  *logging.Logger
	metrics *metrics.Collector
}

// NewForecastService creates a new forecast service
func NewForecastService(baseURL string, timeout time.Duration, logger *logging.Logger, collector *metrics.Collector) *ForecastService {
	return &ForecastService{
		client:  newUpstreamClient(baseURL, timeout),
		logger:  logger,
		metrics: collector,
	}
}

// ForecastResult is the subset of the forecast API response the gateway
// uses. The provider echoes resolved latitude, longitude, and timezone.
type ForecastResult struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Timezone  string        `json:"timezone"`
	Current   CurrentSample `json:"current"`
}

// CurrentSample is the provider's current-conditions block. Units follow the
// request: Fahrenheit, mph, millimeters.
type CurrentSample struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Humidity            int     `json:"relative_humidity_2m"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
}

// Current fetches current conditions for a coordinate pair. Latitude and
// longitude are forwarded verbatim; the provider validates them.
func (s *ForecastService) Current(ctx context.Context, latitude, longitude string) (*ForecastResult, error) {
	timer := s.metrics.NewTimer(s.metrics.UpstreamRequestDuration.WithLabelValues(providerForecast))
	defer timer.ObserveDuration()

	var out ForecastResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":         latitude,
			"longitude":        longitude,
			"current":          currentFields,
			"temperature_unit": "fahrenheit",
			"wind_speed_unit":  "mph",
			"timezone":         "auto",
		}).
		SetResult(&out).
		Get("/v1/forecast")
	if err != nil {
		s.metrics.RecordUpstreamRequest(providerForecast, "error")
		return nil, &domain.UpstreamError{Provider: providerForecast, Err: err}
	}
	if !resp.IsSuccess() {
		s.metrics.RecordUpstreamRequest(providerForecast, "error")
		return nil, upstreamStatusError(providerForecast, resp)
	}

	s.metrics.RecordUpstreamRequest(providerForecast, "ok")
	s.logger.Debug(ctx, "fetched current conditions", logging.Fields{
		"latitude":     out.Latitude,
		"longitude":    out.Longitude,
		"weather_code": out.Current.WeatherCode,
	})

	return &out, nil
}
