package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCoordinates signals a coordinate lookup without both parameters
var ErrMissingCoordinates = errors.New("missing latitude or longitude parameters")

// ErrCityNotFound signals a geocoding lookup that matched nothing
var ErrCityNotFound = errors.New("city not found")

// UpstreamError wraps a failed call to an external provider. Network errors,
// non-2xx statuses, and malformed payloads all surface to API clients as the
// same generic server error carrying Detail.
type UpstreamError struct {
	Provider   string // "geocoding" or "forecast"
	StatusCode int    // zero when the request never completed
	Reason     string // provider-supplied reason, if any
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s: upstream returned status %d: %s", e.Provider, e.StatusCode, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: upstream request failed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: upstream returned status %d", e.Provider, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Detail returns the message exposed as the "details" field of error
// responses
func (e *UpstreamError) Detail() string {
	switch {
	case e.Reason != "":
		return e.Reason
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
}
