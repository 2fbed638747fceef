package postgres

import (
	"context"

	"github.com/skycast/skycast/internal/domain"
)

// NoopJournal implements domain.LookupJournal when no database is
// configured. The gateway is fully functional without one.
type NoopJournal struct{}

// NewNoopJournal creates a new no-op journal
func NewNoopJournal() *NoopJournal {
	return &NoopJournal{}
}

// RecordLookup is a no-op without a database
func (j *NoopJournal) RecordLookup(ctx context.Context, rec domain.LookupRecord) error {
	return nil
}

// Health always reports healthy without a database
func (j *NoopJournal) Health(ctx context.Context) error {
	return nil
}
