package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/pkg/logging"
	"github.com/skycast/skycast/pkg/metrics"
)

// GatewayService answers weather lookups by chaining the geocoding and
// forecast providers. Calls within one lookup are sequential; the only
// cross-request state is the immutable description table.
type GatewayService struct {
	geocodeSvc  *GeocodeService
	forecastSvc *ForecastService
	journal     LookupJournal
	logger      *logging.Logger
	metrics     *metrics.Collector

	wgBg sync.WaitGroup // tracks background journal writes for graceful shutdown
}

// NewGatewayService creates a new gateway service
func NewGatewayService(
	geocodeSvc *GeocodeService,
	forecastSvc *ForecastService,
	journal LookupJournal,
	logger *logging.Logger,
	collector *metrics.Collector,
) *GatewayService {
	return &GatewayService{
		geocodeSvc:  geocodeSvc,
		forecastSvc: forecastSvc,
		journal:     journal,
		logger:      logger,
		metrics:     collector,
	}
}

// WaitBackground blocks until all background journal writes complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *GatewayService) WaitBackground() {
	s.wgBg.Wait()
}

// ByCoordinates serves the coordinate lookup path. Both parameters must be
// present; beyond that their values are forwarded to the provider untouched,
// and the envelope's numeric location comes from the provider's echo.
func (s *GatewayService) ByCoordinates(ctx context.Context, latitude, longitude string) (domain.WeatherReport, error) {
	started := time.Now()

	if strings.TrimSpace(latitude) == "" || strings.TrimSpace(longitude) == "" {
		return domain.WeatherReport{}, domain.ErrMissingCoordinates
	}

	forecast, err := s.forecastSvc.Current(ctx, latitude, longitude)
	if err != nil {
		return domain.WeatherReport{}, err
	}

	report := domain.WeatherReport{
		Location: domain.ResolvedLocation{
			Latitude:  forecast.Latitude,
			Longitude: forecast.Longitude,
			Timezone:  forecast.Timezone,
		},
		Current: s.normalize(ctx, forecast.Current),
	}

	s.recordLookup(report, domain.LookupPathCoordinates, latitude+","+longitude, started)
	return report, nil
}

// ByCity serves the city lookup path: geocode the name, then fetch current
// conditions for the match
func (s *GatewayService) ByCity(ctx context.Context, city string) (domain.WeatherReport, error) {
	started := time.Now()

	place, err := s.geocodeSvc.Search(ctx, city)
	if err != nil {
		return domain.WeatherReport{}, err
	}

	forecast, err := s.forecastSvc.Current(ctx,
		strconv.FormatFloat(place.Latitude, 'f', -1, 64),
		strconv.FormatFloat(place.Longitude, 'f', -1, 64),
	)
	if err != nil {
		return domain.WeatherReport{}, err
	}

	location := domain.ResolvedLocation{
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Timezone:  place.Timezone,
		Name:      place.DisplayName(),
	}
	if location.Timezone == "" {
		location.Timezone = forecast.Timezone
	}

	report := domain.WeatherReport{
		Location: location,
		Current:  s.normalize(ctx, forecast.Current),
	}

	s.recordLookup(report, domain.LookupPathCity, city, started)
	return report, nil
}

// normalize merges a provider sample with the classifier's description
func (s *GatewayService) normalize(ctx context.Context, sample CurrentSample) domain.CurrentConditions {
	description := domain.DescribeWeatherCode(sample.WeatherCode)
	if description == domain.UnknownConditions {
		s.metrics.RecordUnknownWeatherCode()
		s.logger.Warn(ctx, "weather code missing from description table", logging.Fields{
			"weather_code": sample.WeatherCode,
		})
	}

	return domain.CurrentConditions{
		Temperature:         sample.Temperature,
		ApparentTemperature: sample.ApparentTemperature,
		Humidity:            sample.Humidity,
		Precipitation:       sample.Precipitation,
		WeatherCode:         sample.WeatherCode,
		WindSpeed:           sample.WindSpeed,
		Description:         description,
	}
}

// recordLookup persists the served lookup asynchronously (tracked for
// graceful shutdown)
func (s *GatewayService) recordLookup(report domain.WeatherReport, path, query string, started time.Time) {
	rec := domain.LookupRecord{
		ID:          uuid.New(),
		Path:        path,
		Query:       query,
		Latitude:    report.Location.Latitude,
		Longitude:   report.Location.Longitude,
		WeatherCode: report.Current.WeatherCode,
		Description: report.Current.Description,
		RequestedAt: started,
		DurationMs:  time.Since(started).Milliseconds(),
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.journal.RecordLookup(bgCtx, rec); err != nil {
			s.metrics.RecordJournalWrite("error")
			s.logger.Error(bgCtx, "failed to record lookup", logging.Fields{"path": path}, err)
			return
		}
		s.metrics.RecordJournalWrite("ok")
	}()
}
