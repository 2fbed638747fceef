package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skycast/skycast/internal/domain"
)

// Client is a typed HTTP client for the gateway API.
type Client struct {
	http *resty.Client
}

// New creates a client for the gateway at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Health checks gateway liveness.
func (c *Client) Health(ctx context.Context) (*domain.HealthResponse, error) {
	var health domain.HealthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("client: failed to reach gateway: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("client: gateway returned status %d", resp.StatusCode())
	}
	return &health, nil
}

// CurrentByCoordinates fetches current weather for a latitude/longitude pair.
// Values are passed through verbatim; the gateway validates presence only.
func (c *Client) CurrentByCoordinates(ctx context.Context, latitude, longitude string) (*domain.WeatherReport, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  latitude,
			"longitude": longitude,
		})
	return c.fetch(req, "/weather")
}

// CurrentByCity fetches current weather for a named city.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*domain.WeatherReport, error) {
	req := c.http.R().SetContext(ctx)
	return c.fetch(req, "/weather/city/"+url.PathEscape(city))
}

func (c *Client) fetch(req *resty.Request, path string) (*domain.WeatherReport, error) {
	var envelope domain.WeatherResponse
	var apiErr domain.ErrorResponse

	resp, err := req.SetResult(&envelope).SetError(&apiErr).Get(path)
	if err != nil {
		return nil, fmt.Errorf("client: failed to fetch weather: %w", err)
	}
	if !resp.IsSuccess() {
		if apiErr.Error != "" {
			if apiErr.Details != "" {
				return nil, fmt.Errorf("client: %s: %s", apiErr.Error, apiErr.Details)
			}
			return nil, fmt.Errorf("client: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("client: gateway returned status %d", resp.StatusCode())
	}

	return &domain.WeatherReport{
		Location: envelope.Location,
		Current:  envelope.CurrentWeather,
	}, nil
}
