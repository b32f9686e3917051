// Package telemetry exposes Prometheus metrics for normalization runs.
// Metrics live on a dedicated registry; the embedding process decides
// whether and where to expose them.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all normalization Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Row-level outcomes
	RowsFetched    *prometheus.CounterVec
	RowsNormalized *prometheus.CounterVec
	RowsStubbed    *prometheus.CounterVec
	RowsFailed     *prometheus.CounterVec

	// Table-level outcomes
	TableFailures *prometheus.CounterVec

	// Timing
	RowDuration   *prometheus.HistogramVec
	BatchDuration *prometheus.HistogramVec
	BatchSize     prometheus.Histogram

	// Translation outcomes by method (already_english, provider,
	// dictionary, failed)
	TranslationsTotal *prometheus.CounterVec

	// Schema drift recoveries
	ColumnsDropped *prometheus.CounterVec
}

// NewMetrics registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := func(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
		c := prometheus.NewCounterVec(opts, labels)
		registry.MustRegister(c)
		return c
	}

	m := &Metrics{registry: registry}

	m.RowsFetched = factory(prometheus.CounterOpts{
		Name: "normalizer_rows_fetched_total",
		Help: "Raw rows fetched for normalization",
	}, []string{"table"})

	m.RowsNormalized = factory(prometheus.CounterOpts{
		Name: "normalizer_rows_normalized_total",
		Help: "Rows fully normalized and persisted",
	}, []string{"table"})

	m.RowsStubbed = factory(prometheus.CounterOpts{
		Name: "normalizer_rows_stubbed_total",
		Help: "Rows persisted as error stubs",
	}, []string{"table"})

	m.RowsFailed = factory(prometheus.CounterOpts{
		Name: "normalizer_rows_failed_total",
		Help: "Rows that could not be normalized or persisted",
	}, []string{"table"})

	m.TableFailures = factory(prometheus.CounterOpts{
		Name: "normalizer_table_failures_total",
		Help: "Source tables that failed at fetch or setup",
	}, []string{"table"})

	m.RowDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "normalizer_row_duration_seconds",
		Help:    "Time to normalize a single row",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
	}, []string{"table"})
	registry.MustRegister(m.RowDuration)

	m.BatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "normalizer_batch_duration_seconds",
		Help:    "Time to process one batch of rows",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	}, []string{"table"})
	registry.MustRegister(m.BatchDuration)

	m.BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "normalizer_batch_size",
		Help:    "Number of rows per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})
	registry.MustRegister(m.BatchSize)

	m.TranslationsTotal = factory(prometheus.CounterOpts{
		Name: "normalizer_translations_total",
		Help: "Field translations by outcome method",
	}, []string{"method"})

	m.ColumnsDropped = factory(prometheus.CounterOpts{
		Name: "normalizer_columns_dropped_total",
		Help: "Writes retried after dropping a column absent from the live schema",
	}, []string{"column"})

	return m
}

// Registry returns the backing registry for exposure by the embedding
// process.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRow records the duration of a single row normalization.
func (m *Metrics) ObserveRow(table string, d time.Duration) {
	m.RowDuration.WithLabelValues(table).Observe(d.Seconds())
}

// ObserveBatch records one processed batch.
func (m *Metrics) ObserveBatch(table string, size int, d time.Duration) {
	m.BatchDuration.WithLabelValues(table).Observe(d.Seconds())
	m.BatchSize.Observe(float64(size))
	m.RowsFetched.WithLabelValues(table).Add(float64(size))
}
