// Package scheduler owns the background timer that drives the bonus sweep.
// It has an explicit Start/Stop lifecycle so the sweep is never ambient
// process-wide state.
package scheduler

import (
	"context"
	"log/slog"

	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/Wisdomtrail/smartBackend/internal/middleware"
	"github.com/robfig/cron/v3"
)

// Scheduler manages the recurring bonus sweep.
type Scheduler struct {
	cron     *cron.Cron
	bonus    portssvc.BonusSvcFacade
	logger   *slog.Logger
	schedule string
}

// New creates a scheduler that runs the bonus sweep on the given cron schedule.
func New(bonus portssvc.BonusSvcFacade, logger *slog.Logger, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		bonus:    bonus,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		s.logger.Error("failed to schedule bonus sweep", "error", err, "schedule", s.schedule)
		return
	}
	s.logger.Info("scheduled bonus sweep", "schedule", s.schedule)
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler. The returned context is done once
// any in-flight sweep has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx := middleware.ContextWithLogger(context.Background(), s.logger.With(slog.String("job", "bonus_sweep")))
	if _, err := s.bonus.RunSweep(ctx); err != nil {
		s.logger.Error("bonus sweep failed", "error", err)
	}
}
