package service

import (
	"context"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/skycast/skycast/internal/domain"
	"github.com/skycast/skycast/pkg/logging"
	"github.com/skycast/skycast/pkg/metrics"
)

// newTestCollector binds the collector to a throwaway registry so tests
// never clash on metric registration.
func newTestCollector() *metrics.Collector {
	return metrics.NewCollector("test", prometheus.NewRegistry())
}

// newTestLogger returns a logger that swallows its output.
func newTestLogger() *logging.Logger {
	l := logging.New("test", logging.ErrorLevel)
	l.SetOutput(io.Discard)
	return l
}

// fakeJournal records lookups in memory.
type fakeJournal struct {
	mu      sync.Mutex
	records []domain.LookupRecord
	err     error
}

func (f *fakeJournal) RecordLookup(ctx context.Context, rec domain.LookupRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeJournal) Health(ctx context.Context) error { return f.err }

func (f *fakeJournal) all() []domain.LookupRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.LookupRecord(nil), f.records...)
}
