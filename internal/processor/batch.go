// Package processor orchestrates normalization runs: batches of raw rows
// fan out over a bounded worker pool, results are upserted, and failures
// are contained per row, per write and per table.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/tenderhub/normalizer/internal/adapters"
	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/lang"
	"github.com/tenderhub/normalizer/internal/logger"
)

// defaultConcurrency is the worker pool width when none is configured.
const defaultConcurrency = 10

// BatchProcessor normalizes batches of raw rows in parallel using a worker
// pool.
type BatchProcessor struct {
	registry    *adapters.Registry
	concurrency int
	logger      logger.Logger
}

// ProcessResult holds the outcome for a single row. Tender is non-nil for
// both successes and error stubs; Err is set only when not even a stub
// could be produced.
type ProcessResult struct {
	Row      domain.SourceRow
	Tender   *domain.UnifiedTender
	Err      error
	Duration time.Duration
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(registry *adapters.Registry, concurrency int, log logger.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchProcessor{
		registry:    registry,
		concurrency: concurrency,
		logger:      log,
	}
}

// Process normalizes a batch of rows from one source table.
func (b *BatchProcessor) Process(ctx context.Context, table string, batch []domain.SourceRow, stats *lang.Stats) []ProcessResult {
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	b.logger.Debug("starting batch",
		logger.String("table", table),
		logger.Int("batch_size", len(batch)),
		logger.Int("concurrency", b.concurrency))

	jobs := make(chan domain.SourceRow, len(batch))
	results := make(chan ProcessResult, len(batch))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, table, jobs, results, stats, &wg)
	}

	for _, row := range batch {
		jobs <- row
	}
	close(jobs)

	wg.Wait()
	close(results)

	processed := make([]ProcessResult, 0, len(batch))
	failed := 0
	for result := range results {
		if result.Err != nil || (result.Tender != nil && result.Tender.IsErrorStub()) {
			failed++
		}
		processed = append(processed, result)
	}

	b.logger.Debug("batch complete",
		logger.String("table", table),
		logger.Int("total", len(batch)),
		logger.Int("failed", failed),
		logger.Duration("duration", time.Since(start)))

	return processed
}

func (b *BatchProcessor) worker(
	ctx context.Context,
	table string,
	jobs <-chan domain.SourceRow,
	results chan<- ProcessResult,
	stats *lang.Stats,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for row := range jobs {
		select {
		case <-ctx.Done():
			results <- ProcessResult{Row: row, Err: ctx.Err()}
			continue
		default:
		}

		rowStart := time.Now()
		tender, err := b.registry.NormalizeRow(ctx, table, row, stats)
		results <- ProcessResult{Row: row, Tender: tender, Err: err, Duration: time.Since(rowStart)}
	}
}
