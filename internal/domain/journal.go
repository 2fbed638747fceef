package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lookup path labels stored in LookupRecord.Path
const (
	LookupPathCoordinates = "coordinates"
	LookupPathCity        = "city"
)

// LookupRecord captures one served weather lookup for the operational
// journal. Records are write-only from the request path's point of view;
// nothing on the lookup path ever reads them back.
type LookupRecord struct {
	ID          uuid.UUID `json:"id"`
	Path        string    `json:"path"`
	Query       string    `json:"query"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	WeatherCode int       `json:"weather_code"`
	Description string    `json:"description"`
	RequestedAt time.Time `json:"requested_at"`
	DurationMs  int64     `json:"duration_ms"`
}

// LookupJournal defines the interface for lookup journaling
type LookupJournal interface {
	// RecordLookup persists a single served lookup
	RecordLookup(ctx context.Context, rec LookupRecord) error

	// Health checks journal connectivity
	Health(ctx context.Context) error
}
