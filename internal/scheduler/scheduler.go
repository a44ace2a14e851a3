package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/corebank/fdledger/internal/infrastructure/metrics"
	"github.com/corebank/fdledger/internal/usecase"
)

// AccrualService defines the batch jobs the scheduler sweeps.
type AccrualService interface {
	RunFDInterestJob(ctx context.Context) (*usecase.RunReport, error)
	RunMaturityJob(ctx context.Context) (*usecase.RunReport, error)
	RunSavingsInterestJob(ctx context.Context) (*usecase.RunReport, error)
}

// Retryer re-runs a sweep on transient database conflicts.
type Retryer interface {
	Retry(ctx context.Context, operation func() error) error
}

// Scheduler periodically runs the accrual jobs. The jobs themselves are
// idempotent, so a sweep racing a manual trigger from the jobs API is
// harmless.
type Scheduler struct {
	accrualUC AccrualService
	logger    *slog.Logger
	metrics   *metrics.Metrics
	retryer   Retryer
	jobs      []job
}

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) (*usecase.RunReport, error)
}

// Config for Scheduler.
type Config struct {
	AccrualUC               AccrualService
	Logger                  *slog.Logger
	Metrics                 *metrics.Metrics
	Retryer                 Retryer // optional; re-runs a sweep on transient conflicts
	FDInterestInterval      time.Duration // Sweep interval for FD interest
	MaturityInterval        time.Duration // Sweep interval for maturity
	SavingsInterestInterval time.Duration // Sweep interval for savings interest
}

// New creates a new Scheduler.
func New(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.FDInterestInterval == 0 {
		cfg.FDInterestInterval = time.Hour
	}
	if cfg.MaturityInterval == 0 {
		cfg.MaturityInterval = time.Hour
	}
	if cfg.SavingsInterestInterval == 0 {
		cfg.SavingsInterestInterval = 6 * time.Hour
	}

	s := &Scheduler{
		accrualUC: cfg.AccrualUC,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		retryer:   cfg.Retryer,
	}

	s.jobs = []job{
		{name: "fd_interest", interval: cfg.FDInterestInterval, run: s.accrualUC.RunFDInterestJob},
		{name: "fd_maturity", interval: cfg.MaturityInterval, run: s.accrualUC.RunMaturityJob},
		{name: "savings_interest", interval: cfg.SavingsInterestInterval, run: s.accrualUC.RunSavingsInterestJob},
	}

	return s
}

// Start runs all jobs on their intervals until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("accrual scheduler started", slog.Int("jobs", len(s.jobs)))

	var wg sync.WaitGroup
	for _, j := range s.jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			s.runLoop(ctx, j)
		}(j)
	}

	wg.Wait()
	s.logger.Info("accrual scheduler shutting down")
	return ctx.Err()
}

func (s *Scheduler) runLoop(ctx context.Context, j job) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// Sweep immediately on start
	s.runOnce(ctx, j)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, j)
		}
	}
}

// runOnce executes a single sweep. Errors are logged, never propagated: one
// failed sweep must not stop the ticker.
func (s *Scheduler) runOnce(ctx context.Context, j job) {
	start := time.Now()

	var report *usecase.RunReport
	var err error

	if s.retryer != nil {
		err = s.retryer.Retry(ctx, func() error {
			var runErr error
			report, runErr = j.run(ctx)
			return runErr
		})
	} else {
		report, err = j.run(ctx)
	}

	if s.metrics != nil {
		s.metrics.JobRuns.WithLabelValues(j.name).Inc()
		s.metrics.JobDuration.WithLabelValues(j.name).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		if s.metrics != nil {
			s.metrics.JobFailures.WithLabelValues(j.name).Inc()
		}
		s.logger.Error("accrual job failed",
			slog.String("job", j.name),
			slog.String("error", err.Error()))
		return
	}

	if s.metrics != nil {
		s.metrics.InterestCredited.WithLabelValues(j.name).Add(float64(report.Credited))
		s.metrics.FixedDepositsMatured.Add(float64(report.Matured))
	}

	s.logger.Info("accrual job completed",
		slog.String("job", j.name),
		slog.Int("processed", report.Processed),
		slog.Int("credited", report.Credited),
		slog.Int64("matured", report.Matured),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Duration("took", time.Since(start)))
}
