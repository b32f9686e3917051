// Command normalizer runs the tender normalization engine: it fetches raw
// rows from the configured source tables, normalizes them into unified
// tenders and upserts the results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	"github.com/tenderhub/normalizer/db/migrations"
	"github.com/tenderhub/normalizer/internal/adapters"
	"github.com/tenderhub/normalizer/internal/config"
	"github.com/tenderhub/normalizer/internal/database"
	"github.com/tenderhub/normalizer/internal/lang"
	"github.com/tenderhub/normalizer/internal/logger"
	"github.com/tenderhub/normalizer/internal/processor"
	"github.com/tenderhub/normalizer/internal/telemetry"
)

const defaultConfigPath = "config.yml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "normalizer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		tableFlag  = flag.String("table", "", "normalize a single source table instead of all configured tables")
		limitFlag  = flag.Int("limit", 0, "maximum rows per table (0 = no limit)")
		configFlag = flag.String("config", config.GetConfigPath(defaultConfigPath), "path to config file")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *limitFlag > 0 {
		cfg.Service.Limit = *limitFlag
	}

	log := logger.Must(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	defer func() { _ = log.Sync() }()

	log.Info("normalizer starting",
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version))

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("closing database connection", logger.Error(closeErr))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := setupRepository(ctx, db, cfg, log)
	if err != nil {
		return err
	}

	svc := setupTranslation(cfg.Translation, log)
	registry := adapters.NewRegistry(svc, log)
	batch := processor.NewBatchProcessor(registry, cfg.Service.Concurrency, log)
	metrics := telemetry.NewMetrics()
	repo.OnColumnDropped = func(column string) {
		metrics.ColumnsDropped.WithLabelValues(column).Inc()
	}
	orch := processor.NewOrchestrator(repo, batch, metrics, log)

	opts := processor.Options{
		BatchSize:      cfg.Service.BatchSize,
		Limit:          cfg.Service.Limit,
		SkipNormalized: cfg.Service.SkipNormalized,
		Progress: func(processed, total int, table string) bool {
			log.Info("progress",
				logger.String("table", table),
				logger.Int("processed", processed),
				logger.Int("total", total))
			return true
		},
	}
	if cfg.Service.FetchRPS > 0 {
		opts.Limiter = processor.NewRateLimiter(cfg.Service.FetchRPS, cfg.Service.FetchRPS, log)
	}

	tables := cfg.Service.Tables
	if len(tables) == 0 {
		tables = registry.Tables()
	}
	if *tableFlag != "" {
		if _, ok := registry.Get(*tableFlag); !ok {
			return fmt.Errorf("unknown source table %q", *tableFlag)
		}
		tables = []string{*tableFlag}
	}

	var stats processor.RunStats
	if cfg.Service.PollInterval > 0 {
		poller := processor.NewPoller(orch, tables, opts, cfg.Service.PollInterval, log)
		stats, _ = poller.Run(ctx)
		reportRun(log, stats)
		return nil
	}

	stats = orch.NormalizeAll(ctx, tables, opts)
	reportRun(log, stats)

	if stats.Cancelled {
		return fmt.Errorf("run %s cancelled after %d rows", stats.RunID, stats.TotalNormalized)
	}
	if stats.TotalFailed > 0 && stats.TotalNormalized == 0 && stats.TotalStubbed == 0 {
		return fmt.Errorf("run %s produced no output (%d failures)", stats.RunID, stats.TotalFailed)
	}
	return nil
}

// setupRepository prepares the unified tender repository: optional schema
// migration, the unique natural-key constraint and the live column cache.
func setupRepository(ctx context.Context, db *sqlx.DB, cfg *config.Config, log logger.Logger) (*database.TenderRepository, error) {
	if cfg.Database.Migrate {
		if err := migrations.Run(db.DB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	repo := database.NewTenderRepository(db, log)
	if err := repo.EnsureUniqueConstraint(ctx); err != nil {
		return nil, fmt.Errorf("ensure unique constraint: %w", err)
	}
	if err := repo.LoadSchema(ctx); err != nil {
		// The repository degrades to retry-on-error column handling.
		log.Warn("schema introspection failed, relying on write retries", logger.Error(err))
	}
	return repo, nil
}

// setupTranslation wires the translation service. Without a provider URL the
// engine still detects languages and translates by dictionary.
func setupTranslation(cfg config.TranslationConfig, log logger.Logger) *lang.Service {
	var translator lang.Translator
	if cfg.Enabled && cfg.ProviderURL != "" {
		translator = lang.NewHTTPTranslator(cfg.ProviderURL, cfg.ProviderTimeout)
		log.Info("translation provider configured", logger.String("url", cfg.ProviderURL))
	} else {
		log.Info("no translation provider, using dictionary fallback")
	}
	return lang.NewService(translator, &lang.HeuristicDetector{}, cfg.ChunkSize, log)
}

// reportRun logs the per-table and run-level outcome, then prints the run
// report as JSON for scripting.
func reportRun(log logger.Logger, run processor.RunStats) {
	for table, ts := range run.Tables {
		log.Info("table summary",
			logger.String("table", table),
			logger.Int("fetched", ts.Fetched),
			logger.Int("normalized", ts.Normalized),
			logger.Int("stubbed", ts.Stubbed),
			logger.Int("failed", ts.Failed),
			logger.Duration("duration", ts.Duration))
	}

	if out, err := json.Marshal(run); err == nil {
		fmt.Println(string(out))
	}
}
