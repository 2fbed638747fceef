package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skycast/skycast/internal/domain"
)

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func countingHandler(inner http.HandlerFunc, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		inner(w, r)
	}
}

func newTestGateway(t *testing.T, geocodeHandler, forecastHandler http.HandlerFunc) (*GatewayService, *fakeJournal) {
	t.Helper()

	geocode := httptest.NewServer(geocodeHandler)
	forecast := httptest.NewServer(forecastHandler)
	t.Cleanup(geocode.Close)
	t.Cleanup(forecast.Close)

	journal := &fakeJournal{}
	logger := newTestLogger()
	collector := newTestCollector()

	svc := NewGatewayService(
		NewGeocodeService(geocode.URL, 5*time.Second, logger, collector),
		NewForecastService(forecast.URL, 5*time.Second, logger, collector),
		journal,
		logger,
		collector,
	)
	return svc, journal
}

func TestByCoordinatesMissingParameters(t *testing.T) {
	var calls int32
	svc, _ := newTestGateway(t, jsonHandler(`{}`), countingHandler(jsonHandler(forecastBody), &calls))

	tests := []struct {
		name      string
		latitude  string
		longitude string
	}{
		{"both missing", "", ""},
		{"latitude missing", "", "-122.4194"},
		{"longitude missing", "37.7749", ""},
		{"whitespace latitude", " ", "-122.4194"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ByCoordinates(context.Background(), tt.latitude, tt.longitude)
			if !errors.Is(err, domain.ErrMissingCoordinates) {
				t.Fatalf("error = %v, want ErrMissingCoordinates", err)
			}
		})
	}

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("forecast provider called %d times, want 0", n)
	}
}

func TestByCoordinatesUsesProviderEcho(t *testing.T) {
	svc, journal := newTestGateway(t, jsonHandler(`{}`), jsonHandler(forecastBody))

	report, err := svc.ByCoordinates(context.Background(), "37.77", "-122.41")
	if err != nil {
		t.Fatalf("ByCoordinates returned error: %v", err)
	}

	// The response location is the provider's resolved echo, not the raw input.
	if report.Location.Latitude != 37.7749 || report.Location.Longitude != -122.4194 {
		t.Errorf("location = %+v, want provider echo", report.Location)
	}
	if report.Location.Name != "" {
		t.Errorf("Name = %q, want empty on coordinate lookups", report.Location.Name)
	}
	if report.Location.Timezone != "America/Los_Angeles" {
		t.Errorf("Timezone = %q", report.Location.Timezone)
	}
	if report.Current.Description != "Mainly clear" {
		t.Errorf("Description = %q, want %q", report.Current.Description, "Mainly clear")
	}

	svc.WaitBackground()
	records := journal.all()
	if len(records) != 1 {
		t.Fatalf("journal records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Path != domain.LookupPathCoordinates || rec.Query != "37.77,-122.41" {
		t.Errorf("journal record = %+v", rec)
	}
	if rec.Description != "Mainly clear" || rec.WeatherCode != 1 {
		t.Errorf("journal conditions = %+v", rec)
	}
	if rec.ID == uuid.Nil {
		t.Error("journal record should carry a generated ID")
	}
}

func TestByCityMergesGeocodeAndForecast(t *testing.T) {
	geocodeBody := `{"results":[{"name":"London","latitude":51.50853,"longitude":-0.12574,"country":"United Kingdom","admin1":"England","timezone":"Europe/London"}]}`

	var gotForecastQuery url.Values
	forecastHandler := func(w http.ResponseWriter, r *http.Request) {
		gotForecastQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":51.5,"longitude":-0.125,"timezone":"Europe/London","current":{"time":"2024-01-15T12:00","temperature_2m":42.1,"apparent_temperature":38.9,"relative_humidity_2m":88,"precipitation":1.2,"weather_code":61,"wind_speed_10m":15.3}}`))
	}

	svc, journal := newTestGateway(t, jsonHandler(geocodeBody), forecastHandler)

	report, err := svc.ByCity(context.Background(), "London")
	if err != nil {
		t.Fatalf("ByCity returned error: %v", err)
	}

	// City lookups keep the geocoder's coordinates and display name, not the
	// forecast provider's rounded echo.
	if report.Location.Name != "London, England, United Kingdom" {
		t.Errorf("Name = %q", report.Location.Name)
	}
	if report.Location.Latitude != 51.50853 || report.Location.Longitude != -0.12574 {
		t.Errorf("location = %+v, want geocoder coordinates", report.Location)
	}
	if report.Location.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q", report.Location.Timezone)
	}
	if report.Current.Description != "Slight rain" {
		t.Errorf("Description = %q, want %q", report.Current.Description, "Slight rain")
	}

	// The forecast request carries the geocoded coordinates.
	if gotForecastQuery.Get("latitude") != "51.50853" || gotForecastQuery.Get("longitude") != "-0.12574" {
		t.Errorf("forecast query = %v", gotForecastQuery)
	}

	svc.WaitBackground()
	records := journal.all()
	if len(records) != 1 {
		t.Fatalf("journal records = %d, want 1", len(records))
	}
	if records[0].Path != domain.LookupPathCity || records[0].Query != "London" {
		t.Errorf("journal record = %+v", records[0])
	}
}

func TestByCityTimezoneFallsBackToForecast(t *testing.T) {
	geocodeBody := `{"results":[{"name":"London","latitude":51.5,"longitude":-0.12,"country":"United Kingdom","admin1":"England"}]}`
	body := `{"latitude":51.5,"longitude":-0.12,"timezone":"Europe/London","current":{"time":"2024-01-15T12:00","temperature_2m":50,"weather_code":3}}`

	svc, _ := newTestGateway(t, jsonHandler(geocodeBody), jsonHandler(body))

	report, err := svc.ByCity(context.Background(), "London")
	if err != nil {
		t.Fatalf("ByCity returned error: %v", err)
	}
	if report.Location.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want the forecast echo when the geocoder has none", report.Location.Timezone)
	}
}

func TestByCityNotFound(t *testing.T) {
	var forecastCalls int32
	svc, journal := newTestGateway(t, jsonHandler(`{"results":[]}`), countingHandler(jsonHandler(forecastBody), &forecastCalls))

	_, err := svc.ByCity(context.Background(), "Narnia")
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Fatalf("error = %v, want ErrCityNotFound", err)
	}
	if n := atomic.LoadInt32(&forecastCalls); n != 0 {
		t.Errorf("forecast called %d times after a failed geocode, want 0", n)
	}

	svc.WaitBackground()
	if len(journal.all()) != 0 {
		t.Error("failed lookups must not be journaled")
	}
}

func TestByCoordinatesUnknownWeatherCode(t *testing.T) {
	body := `{"latitude":37.7749,"longitude":-122.4194,"timezone":"America/Los_Angeles","current":{"time":"2024-01-15T12:00","temperature_2m":33,"weather_code":67}}`
	svc, _ := newTestGateway(t, jsonHandler(`{}`), jsonHandler(body))

	report, err := svc.ByCoordinates(context.Background(), "37.7749", "-122.4194")
	if err != nil {
		t.Fatalf("ByCoordinates returned error: %v", err)
	}
	if report.Current.Description != domain.UnknownConditions {
		t.Errorf("Description = %q, want %q", report.Current.Description, domain.UnknownConditions)
	}
	if report.Current.WeatherCode != 67 {
		t.Errorf("WeatherCode = %d, want 67", report.Current.WeatherCode)
	}
}

func TestJournalFailureDoesNotAffectResponse(t *testing.T) {
	forecast := httptest.NewServer(jsonHandler(forecastBody))
	t.Cleanup(forecast.Close)

	logger := newTestLogger()
	collector := newTestCollector()
	journal := &fakeJournal{err: errors.New("connection reset by peer")}

	svc := NewGatewayService(
		NewGeocodeService(forecast.URL, 5*time.Second, logger, collector),
		NewForecastService(forecast.URL, 5*time.Second, logger, collector),
		journal,
		logger,
		collector,
	)

	report, err := svc.ByCoordinates(context.Background(), "37.7749", "-122.4194")
	if err != nil {
		t.Fatalf("ByCoordinates returned error: %v", err)
	}
	if report.Current.Description != "Mainly clear" {
		t.Errorf("Description = %q", report.Current.Description)
	}

	svc.WaitBackground()
	if len(journal.all()) != 0 {
		t.Error("failed journal writes must not be recorded")
	}
}
