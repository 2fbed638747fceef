package domain

import (
	"errors"
	"testing"
)

func TestUpstreamErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		err  *UpstreamError
		want string
	}{
		{
			name: "provider reason wins",
			err:  &UpstreamError{Provider: "forecast", StatusCode: 400, Reason: "Invalid latitude", Err: errors.New("ignored")},
			want: "Invalid latitude",
		},
		{
			name: "wrapped error when no reason",
			err:  &UpstreamError{Provider: "geocoding", Err: errors.New("connection refused")},
			want: "connection refused",
		},
		{
			name: "status fallback",
			err:  &UpstreamError{Provider: "forecast", StatusCode: 502},
			want: "upstream returned status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Detail(); got != tt.want {
				t.Errorf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: connection timed out")
	err := error(&UpstreamError{Provider: "forecast", Err: inner})

	if !errors.Is(err, inner) {
		t.Error("errors.Is should match the wrapped error")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatal("errors.As should recover the *UpstreamError")
	}
	if upstream.Provider != "forecast" {
		t.Errorf("Provider = %q, want %q", upstream.Provider, "forecast")
	}
}
