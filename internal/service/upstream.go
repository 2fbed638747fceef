package service

import (
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skycast/skycast/internal/domain"
)

// userAgent identifies the gateway to upstream providers
const userAgent = "skycast-gateway/1.0"

// Provider labels used in errors and metrics
const (
	providerGeocoding = "geocoding"
	providerForecast  = "forecast"
)

// newUpstreamClient builds a resty client for a provider. No retry policy is
// configured: a failed call surfaces to the caller as-is.
func newUpstreamClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
}

// openMeteoError is the error body Open-Meteo returns for rejected requests
type openMeteoError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// upstreamStatusError converts a non-2xx provider response into an
// UpstreamError, preferring the provider's own reason as the detail
func upstreamStatusError(provider string, resp *resty.Response) *domain.UpstreamError {
	var body openMeteoError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Reason != "" {
		return &domain.UpstreamError{
			Provider:   provider,
			StatusCode: resp.StatusCode(),
			Reason:     body.Reason,
		}
	}

	return &domain.UpstreamError{
		Provider:   provider,
		StatusCode: resp.StatusCode(),
		Reason:     resp.Status(),
	}
}
