package processor

import (
	"context"
	"time"

	"github.com/tenderhub/normalizer/internal/logger"
)

const defaultPollInterval = 30 * time.Minute

// Poller runs the orchestrator on an interval so the engine can keep up
// with source tables that are refilled continuously. Each tick is a full
// normalization run over the configured tables; new rows are picked up by
// the anti-join fetch.
type Poller struct {
	orch     *Orchestrator
	tables   []string
	opts     Options
	interval time.Duration
	logger   logger.Logger

	stop chan struct{}
}

// NewPoller creates a poller. A non-positive interval falls back to the
// default.
func NewPoller(orch *Orchestrator, tables []string, opts Options, interval time.Duration, log logger.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		orch:     orch,
		tables:   tables,
		opts:     opts,
		interval: interval,
		logger:   log,
		stop:     make(chan struct{}),
	}
}

// Run blocks, normalizing immediately and then on every tick, until the
// context is cancelled or Stop is called. The last completed run's stats
// are returned.
func (p *Poller) Run(ctx context.Context) (RunStats, error) {
	p.logger.Info("poller starting",
		logger.Duration("interval", p.interval),
		logger.Strings("tables", p.tables))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	last := p.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped", logger.Error(ctx.Err()))
			return last, ctx.Err()
		case <-p.stop:
			p.logger.Info("poller stopped")
			return last, nil
		case <-ticker.C:
			last = p.runOnce(ctx)
		}
	}
}

// Stop requests a shutdown. Safe to call once.
func (p *Poller) Stop() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}

func (p *Poller) runOnce(ctx context.Context) RunStats {
	if ctx.Err() != nil {
		return RunStats{Cancelled: true}
	}

	run := p.orch.NormalizeAll(ctx, p.tables, p.opts)
	if len(run.Errors) > 0 {
		p.logger.Warn("poll cycle finished with table errors",
			logger.String("run_id", run.RunID),
			logger.Strings("errors", run.Errors))
	}
	return run
}
