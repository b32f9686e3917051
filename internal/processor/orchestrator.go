package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/lang"
	"github.com/tenderhub/normalizer/internal/logger"
	"github.com/tenderhub/normalizer/internal/telemetry"
)

// TenderStore is the persistence surface the orchestrator writes through.
type TenderStore interface {
	FetchUnnormalized(ctx context.Context, table string, limit int, skipNormalized bool) ([]domain.SourceRow, error)
	CountPending(ctx context.Context, table string, skipNormalized bool) (int, error)
	Upsert(ctx context.Context, t *domain.UnifiedTender) error
}

// ProgressFunc reports progress after each batch. Returning false stops
// further processing of the current table; later tables still run.
type ProgressFunc func(processed, total int, table string) bool

// Options tune a normalization run.
type Options struct {
	BatchSize      int
	Limit          int  // 0 means no limit
	SkipNormalized bool // anti-join already-normalized rows away
	Progress       ProgressFunc
	Limiter        *RateLimiter // nil means unpaced fetching
}

const defaultBatchSize = 100

// Orchestrator drives normalization over one or all source tables.
type Orchestrator struct {
	store   TenderStore
	batch   *BatchProcessor
	metrics *telemetry.Metrics
	logger  logger.Logger
}

// NewOrchestrator creates an orchestrator. metrics may be nil.
func NewOrchestrator(store TenderStore, batch *BatchProcessor, metrics *telemetry.Metrics, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		store:   store,
		batch:   batch,
		metrics: metrics,
		logger:  log,
	}
}

// NormalizeAll runs every registered source table in order. A table-level
// failure is recorded and the run continues with the next table.
func (o *Orchestrator) NormalizeAll(ctx context.Context, tables []string, opts Options) RunStats {
	run := RunStats{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Tables:    make(map[string]TableStats, len(tables)),
	}
	stats := lang.NewStats()

	o.logger.Info("normalization run starting",
		logger.String("run_id", run.RunID),
		logger.Strings("tables", tables))

	for _, table := range tables {
		if ctx.Err() != nil {
			run.Cancelled = true
			break
		}

		ts, err := o.normalizeTable(ctx, table, opts, stats)
		if err != nil {
			ts.Error = err.Error()
			o.logger.Error("table failed, continuing run",
				logger.String("run_id", run.RunID),
				logger.String("table", table),
				logger.Error(err))
			if o.metrics != nil {
				o.metrics.TableFailures.WithLabelValues(table).Inc()
			}
		}
		run.record(ts)
		// A progress-stop skips only its table; cancellation ends the run.
		if ctx.Err() != nil {
			run.Cancelled = true
			break
		}
	}

	run.Elapsed = time.Since(run.StartedAt)
	run.Translation = stats.Snapshot()
	if o.metrics != nil {
		for method, n := range run.Translation.ByMethod {
			o.metrics.TranslationsTotal.WithLabelValues(method).Add(float64(n))
		}
	}

	o.logger.Info("normalization run finished",
		logger.String("run_id", run.RunID),
		logger.Int("fetched", run.TotalFetched),
		logger.Int("normalized", run.TotalNormalized),
		logger.Int("stubbed", run.TotalStubbed),
		logger.Int("failed", run.TotalFailed),
		logger.Duration("elapsed", run.Elapsed))

	return run
}

// NormalizeTable runs a single source table.
func (o *Orchestrator) NormalizeTable(ctx context.Context, table string, opts Options) (TableStats, error) {
	stats := lang.NewStats()
	return o.normalizeTable(ctx, table, opts, stats)
}

func (o *Orchestrator) normalizeTable(ctx context.Context, table string, opts Options, stats *lang.Stats) (TableStats, error) {
	ts := TableStats{Table: table}
	started := time.Now()
	defer func() { ts.Duration = time.Since(started) }()

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total, err := o.store.CountPending(ctx, table, opts.SkipNormalized)
	if err != nil {
		return ts, fmt.Errorf("count pending rows: %w", err)
	}
	if opts.Limit > 0 && total > opts.Limit {
		total = opts.Limit
	}
	if total == 0 {
		o.logger.Info("no pending rows", logger.String("table", table))
		return ts, nil
	}

	o.logger.Info("normalizing table",
		logger.String("table", table),
		logger.Int("pending", total))

	processed := 0
	for processed < total {
		if ctx.Err() != nil {
			ts.Skipped = true
			return ts, nil
		}

		fetchSize := batchSize
		if opts.Limit > 0 && opts.Limit-processed < fetchSize {
			fetchSize = opts.Limit - processed
		}

		if err := opts.Limiter.Wait(ctx); err != nil {
			ts.Skipped = true
			return ts, nil
		}

		rows, err := o.store.FetchUnnormalized(ctx, table, fetchSize, opts.SkipNormalized)
		if err != nil {
			return ts, fmt.Errorf("fetch batch: %w", err)
		}
		if len(rows) == 0 {
			break
		}
		ts.Fetched += len(rows)

		batchStart := time.Now()
		results := o.batch.Process(ctx, table, rows, stats)
		if o.metrics != nil {
			o.metrics.ObserveBatch(table, len(rows), time.Since(batchStart))
		}
		o.persistResults(ctx, table, results, &ts)

		processed += len(rows)
		if opts.Progress != nil && !opts.Progress(processed, total, table) {
			o.logger.Info("progress callback requested stop",
				logger.String("table", table),
				logger.Int("processed", processed))
			ts.Skipped = true
			return ts, nil
		}

		// Without the anti-join every pass returns the same head rows, so
		// one pass is all that is useful.
		if !opts.SkipNormalized {
			break
		}
	}

	return ts, nil
}

// persistResults writes each result through the merge-not-clobber upsert.
// Write failures count the row as failed and the loop continues.
func (o *Orchestrator) persistResults(ctx context.Context, table string, results []ProcessResult, ts *TableStats) {
	for _, result := range results {
		if o.metrics != nil && result.Duration > 0 {
			o.metrics.ObserveRow(table, result.Duration)
		}
		if result.Err != nil {
			ts.Failed++
			if o.metrics != nil {
				o.metrics.RowsFailed.WithLabelValues(table).Inc()
			}
			continue
		}
		if result.Tender == nil {
			continue
		}

		if err := o.store.Upsert(ctx, result.Tender); err != nil {
			ts.Failed++
			o.logger.Error("upsert failed",
				logger.String("table", table),
				logger.String("source_id", result.Tender.SourceID),
				logger.Error(err))
			if o.metrics != nil {
				o.metrics.RowsFailed.WithLabelValues(table).Inc()
			}
			continue
		}

		if result.Tender.IsErrorStub() {
			ts.Stubbed++
			if o.metrics != nil {
				o.metrics.RowsStubbed.WithLabelValues(table).Inc()
			}
		} else {
			ts.Normalized++
			if o.metrics != nil {
				o.metrics.RowsNormalized.WithLabelValues(table).Inc()
			}
		}
	}
}
