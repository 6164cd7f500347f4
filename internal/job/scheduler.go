// Package job schedules periodic pipeline runs.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/newswarehouse/internal/logger"
	"github.com/jonesrussell/newswarehouse/internal/pipeline"
)

// Runner executes one pipeline run with the given page budget.
type Runner interface {
	Run(ctx context.Context, maxPages int) (*pipeline.Summary, error)
}

// DimensionChecker reports whether the dimension has been populated yet.
type DimensionChecker interface {
	HasData(ctx context.Context) (bool, error)
}

// Config holds scheduler settings.
type Config struct {
	// Interval between scheduled runs.
	Interval time.Duration
	// SteadyPages is the page budget once the dimension has data.
	SteadyPages int
	// InitialPages is the page budget for the first-ever run.
	InitialPages int
}

// Scheduler triggers pipeline runs on a fixed interval. The first-ever run is
// detected through the dimension and gets a larger page budget to backfill.
// Runs never overlap: the pipeline's own guard rejects a trigger that arrives
// while a run is still executing, and the scheduler logs and skips it.
type Scheduler struct {
	runner    Runner
	warehouse DimensionChecker
	cfg       Config
	cron      *cron.Cron
	log       logger.Interface
}

// NewScheduler creates a scheduler around the given runner.
func NewScheduler(runner Runner, warehouse DimensionChecker, cfg Config, log logger.Interface) *Scheduler {
	return &Scheduler{
		runner:    runner,
		warehouse: warehouse,
		cfg:       cfg,
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:       log.WithComponent("scheduler"),
	}
}

// Start runs the pipeline once immediately, then schedules recurring runs.
func (s *Scheduler) Start(ctx context.Context) error {
	s.RunOnce(ctx)

	spec := fmt.Sprintf("@every %s", s.cfg.Interval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to schedule pipeline runs: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "interval", s.cfg.Interval.String())
	return nil
}

// Stop halts scheduling and waits for a running job to finish, bounded by the
// given context.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop timed out: %w", ctx.Err())
	}
}

// RunOnce triggers a single pipeline run with the appropriate page budget.
// Run failures are logged, not propagated: a failed run skips the remaining
// stages and the process stays up for the next trigger.
func (s *Scheduler) RunOnce(ctx context.Context) {
	pages := s.pageBudget(ctx)

	summary, err := s.runner.Run(ctx, pages)
	if errors.Is(err, pipeline.ErrRunInProgress) {
		s.log.Warn("previous run still in progress, skipping trigger")
		return
	}
	if err != nil {
		s.log.Error("pipeline run failed", "error", err.Error())
		return
	}

	s.log.Info("scheduled run finished",
		"run_id", summary.RunID,
		"inserted", summary.Inserted,
		"duration", summary.Duration.String(),
	)
}

// pageBudget picks the page budget for the next run. A dimension check
// failure falls back to the steady-state budget; the run itself will surface
// any real store problem.
func (s *Scheduler) pageBudget(ctx context.Context) int {
	hasData, err := s.warehouse.HasData(ctx)
	if err != nil {
		s.log.Error("failed to check dimension state", "error", err.Error())
		return s.cfg.SteadyPages
	}

	if !hasData {
		s.log.Info("dimension is empty, using initial page budget",
			"pages", s.cfg.InitialPages)
		return s.cfg.InitialPages
	}

	return s.cfg.SteadyPages
}
