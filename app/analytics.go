package app

import (
	"context"
	"sync"
	"time"

	"regdash/domain/analytics"
)

// AnalyticsService runs the statistics engine over the aggregated records
// and keeps the previous cycle's snapshot so growth can be derived. The
// snapshot lives only in memory; a restart simply starts a fresh baseline.
type AnalyticsService struct {
	agg    *Aggregator
	engine *analytics.Engine

	mu   sync.Mutex
	prev *analytics.Snapshot

	now func() time.Time
}

// NewAnalyticsService wires the service over an aggregator and engine.
func NewAnalyticsService(agg *Aggregator, engine *analytics.Engine) *AnalyticsService {
	return &AnalyticsService{
		agg:    agg,
		engine: engine,
		now:    time.Now,
	}
}

// Report aggregates, computes per-event statistics, and rolls the growth
// snapshot forward. Returns an error only when there is no data at all to
// serve (unreachable store and empty cache).
func (s *AnalyticsService) Report(ctx context.Context) (*analytics.Report, error) {
	records, err := s.agg.Records(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := s.engine.Compute(records, s.prev, s.now())
	snapshot := report.Snapshot
	s.prev = &snapshot
	return report, nil
}
