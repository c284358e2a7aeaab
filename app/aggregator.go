package app

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"regdash/domain/roster"
	"regdash/internal/errors"
	"regdash/internal/logging"
	"regdash/ports"
)

// AggregatorConfig tunes one Aggregator instance.
type AggregatorConfig struct {
	// IntakeTab is skipped on reads; it is write-only for intake.
	IntakeTab string
	// TTL bounds how long an aggregation result is served from cache.
	TTL       time.Duration
	Inference roster.InferenceConfig
}

// Aggregator reads every event tab of the spreadsheet, normalizes rows into
// participant records, and caches the flat collection. Each instance owns
// its cache and store handle so tests can construct independent aggregators.
type Aggregator struct {
	source ports.SheetSource // nil when the spreadsheet backend is disabled
	cfg    AggregatorConfig
	logger *logging.Logger

	// refresh deduplicates concurrent fetches: overlapping read requests
	// share one backing-store pass instead of stacking calls.
	refresh singleflight.Group

	mu        sync.RWMutex
	cached    []roster.ParticipantRecord
	fetchedAt time.Time

	now func() time.Time
}

// NewAggregator creates an aggregator over the given sheet source. A nil
// source is valid: reads then serve the last good cache or nothing.
func NewAggregator(source ports.SheetSource, cfg AggregatorConfig) *Aggregator {
	if cfg.IntakeTab == "" {
		cfg.IntakeTab = "Sheet1"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 20 * time.Second
	}
	return &Aggregator{
		source: source,
		cfg:    cfg,
		logger: logging.DefaultLogger,
		now:    time.Now,
	}
}

// Records returns the aggregated participant collection. Results are served
// from cache inside the TTL window; on a completely unreachable backing
// store it falls back to the last good cache, and only errors when there is
// nothing at all to serve.
func (a *Aggregator) Records(ctx context.Context) ([]roster.ParticipantRecord, error) {
	a.mu.RLock()
	if a.cached != nil && a.now().Sub(a.fetchedAt) < a.cfg.TTL {
		cached := a.cached
		a.mu.RUnlock()
		return cached, nil
	}
	a.mu.RUnlock()

	result, err, _ := a.refresh.Do("aggregate", func() (interface{}, error) {
		return a.fetchAll(ctx)
	})
	if err != nil {
		a.mu.RLock()
		cached := a.cached
		a.mu.RUnlock()
		if cached != nil {
			a.logger.Warn("[Aggregator] Backing store unreachable, serving last good cache (%d records): %v", len(cached), err)
			return cached, nil
		}
		return nil, err
	}

	return result.([]roster.ParticipantRecord), nil
}

// fetchAll performs one full aggregation cycle across every event tab.
func (a *Aggregator) fetchAll(ctx context.Context) ([]roster.ParticipantRecord, error) {
	if a.source == nil {
		return nil, errors.StoreUnavailable("spreadsheet", nil)
	}

	tabs, err := a.source.Tabs(ctx)
	if err != nil {
		return nil, errors.StoreUnavailable("spreadsheet", err)
	}

	records := make([]roster.ParticipantRecord, 0)
	for _, tab := range tabs {
		if tab == a.cfg.IntakeTab {
			continue
		}

		rows, err := a.source.Rows(ctx, tab)
		if err != nil {
			// Partial-failure tolerance: this tab contributes nothing.
			a.logger.Warn("[Aggregator] Could not read tab %q: %v", tab, err)
			continue
		}
		if len(rows) <= 1 {
			continue
		}

		cols := roster.InferColumns(rows[0], a.cfg.Inference)
		for i, row := range rows[1:] {
			records = append(records, roster.NormalizeRow(row, cols, tab, i+1))
		}
	}

	a.mu.Lock()
	a.cached = records
	a.fetchedAt = a.now()
	a.mu.Unlock()

	a.logger.Info("[Aggregator] Aggregated %d records from %d tabs", len(records), len(tabs))
	return records, nil
}

// Delete removes the sheet row behind an identifier of the form
// "<sheetTitle>-<rowPosition>". Failures are reported, never fatal, and a
// failed delete leaves the cache intact; a successful delete invalidates it.
func (a *Aggregator) Delete(ctx context.Context, id string) error {
	tab, rowNum, err := parseRecordID(id)
	if err != nil {
		return err
	}
	if a.source == nil {
		return errors.StoreUnavailable("spreadsheet", nil)
	}

	tabs, err := a.source.Tabs(ctx)
	if err != nil {
		return errors.StoreUnavailable("spreadsheet", err)
	}
	if !containsTab(tabs, tab) {
		return errors.NotFound("sheet " + tab)
	}

	rows, err := a.source.Rows(ctx, tab)
	if err != nil {
		return errors.Wrapf(err, "could not read sheet %q", tab)
	}

	// rowNum is the 1-based data-row position; the header occupies row 1.
	absoluteRow := rowNum + 1
	if absoluteRow > len(rows) {
		return errors.InvalidInput("row " + strconv.Itoa(rowNum) + " out of range for sheet " + tab)
	}

	if err := a.source.DeleteRow(ctx, tab, absoluteRow); err != nil {
		return errors.Wrapf(err, "failed to delete row %d from %q", absoluteRow, tab)
	}

	a.Invalidate()
	a.logger.Info("[Aggregator] Deleted %s, cache invalidated", id)
	return nil
}

// Invalidate drops the cached collection so the next read refetches.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	a.cached = nil
	a.fetchedAt = time.Time{}
	a.mu.Unlock()
}

func parseRecordID(id string) (tab string, rowNum int, err error) {
	sep := strings.LastIndex(id, "-")
	if sep <= 0 || sep == len(id)-1 {
		return "", 0, errors.InvalidInput("malformed record id: " + id)
	}
	rowNum, convErr := strconv.Atoi(id[sep+1:])
	if convErr != nil || rowNum < 1 {
		return "", 0, errors.InvalidInput("malformed record id: " + id)
	}
	return id[:sep], rowNum, nil
}

func containsTab(tabs []string, tab string) bool {
	for _, t := range tabs {
		if t == tab {
			return true
		}
	}
	return false
}
