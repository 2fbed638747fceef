package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/skycast/skycast/internal/domain"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		result GeocodeResult
		want   string
	}{
		{
			name:   "name region and country",
			result: GeocodeResult{Name: "London", Admin1: "England", Country: "United Kingdom"},
			want:   "London, England, United Kingdom",
		},
		{
			name:   "country without region",
			result: GeocodeResult{Name: "Paris", Country: "France"},
			want:   "Paris, France",
		},
		{
			name:   "name only",
			result: GeocodeResult{Name: "Atlantis"},
			want:   "Atlantis",
		},
		{
			name:   "region without country",
			result: GeocodeResult{Name: "Springfield", Admin1: "Illinois"},
			want:   "Springfield, Illinois",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchReturnsBestMatch(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"name":"London","latitude":51.50853,"longitude":-0.12574,"country":"United Kingdom","admin1":"England","timezone":"Europe/London"}]}`))
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL, 5*time.Second, newTestLogger(), newTestCollector())
	place, err := svc.Search(context.Background(), "London")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotPath != "/v1/search" {
		t.Errorf("path = %q, want %q", gotPath, "/v1/search")
	}
	if gotQuery.Get("name") != "London" || gotQuery.Get("count") != "1" {
		t.Errorf("query = %v, want name=London count=1", gotQuery)
	}
	if place.DisplayName() != "London, England, United Kingdom" {
		t.Errorf("DisplayName() = %q", place.DisplayName())
	}
	if place.Latitude != 51.50853 || place.Longitude != -0.12574 {
		t.Errorf("coordinates = %v, %v", place.Latitude, place.Longitude)
	}
	if place.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q", place.Timezone)
	}
}

func TestSearchZeroResults(t *testing.T) {
	// The provider omits "results" entirely for some queries; both shapes
	// mean no match.
	bodies := []string{`{"results":[]}`, `{"generationtime_ms":0.5}`}

	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}))

		svc := NewGeocodeService(server.URL, 5*time.Second, newTestLogger(), newTestCollector())
		_, err := svc.Search(context.Background(), "Narnia")
		server.Close()

		if !errors.Is(err, domain.ErrCityNotFound) {
			t.Errorf("Search with body %s: error = %v, want ErrCityNotFound", body, err)
		}
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":true,"reason":"Parameter 'name' must have at least 2 characters"}`))
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL, 5*time.Second, newTestLogger(), newTestCollector())
	_, err := svc.Search(context.Background(), "X")
	if err == nil {
		t.Fatal("Search should fail on a 400 response")
	}

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %T, want *domain.UpstreamError", err)
	}
	if upstream.Detail() != "Parameter 'name' must have at least 2 characters" {
		t.Errorf("Detail() = %q", upstream.Detail())
	}
	if upstream.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, http.StatusBadRequest)
	}
}

func TestSearchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	svc := NewGeocodeService(server.URL, time.Second, newTestLogger(), newTestCollector())
	_, err := svc.Search(context.Background(), "London")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %T (%v), want *domain.UpstreamError", err, err)
	}
	if upstream.Detail() == "" {
		t.Error("Detail() should carry the transport error")
	}
}
