package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycast/skycast/internal/domain"
)

// LookupJournal implements domain.LookupJournal on PostgreSQL
type LookupJournal struct {
	pool *pgxpool.Pool
}

// NewLookupJournal creates the journal and ensures its schema exists. The
// schema roundtrip doubles as the startup connectivity check.
func NewLookupJournal(ctx context.Context, pool *pgxpool.Pool) (*LookupJournal, error) {
	j := &LookupJournal{pool: pool}
	if err := j.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

// ensureSchema creates the journal table when missing
func (j *LookupJournal) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS weather_lookups (
			id UUID PRIMARY KEY,
			path TEXT NOT NULL,
			query TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			weather_code INTEGER NOT NULL,
			description TEXT NOT NULL,
			requested_at TIMESTAMPTZ NOT NULL,
			duration_ms BIGINT NOT NULL
		)
	`

	if _, err := j.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to ensure journal schema: %w", err)
	}

	return nil
}

// RecordLookup persists a served lookup to PostgreSQL
func (j *LookupJournal) RecordLookup(ctx context.Context, rec domain.LookupRecord) error {
	query := `
		INSERT INTO weather_lookups (
			id, path, query, latitude, longitude,
			weather_code, description, requested_at, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := j.pool.Exec(ctx, query,
		rec.ID, rec.Path, rec.Query, rec.Latitude, rec.Longitude,
		rec.WeatherCode, rec.Description, rec.RequestedAt, rec.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to record lookup: %w", err)
	}

	return nil
}

// Health checks database connectivity
func (j *LookupJournal) Health(ctx context.Context) error {
	if err := j.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
