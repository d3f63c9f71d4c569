package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bmscold/slipdesk/internal/config"
	"github.com/bmscold/slipdesk/internal/service/slips"
)

// Scheduler keeps the local slip list from going stale between submits
// by periodically re-fetching it from the ledger.
type Scheduler struct {
	cron     *cron.Cron
	slipsSvc *slips.Service
	cfg      config.RefreshConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RefreshConfig, slipsSvc *slips.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		slipsSvc: slipsSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshSlips)
	if err != nil {
		s.logger.Error("failed to schedule slip refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshSlips() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// A failed refresh leaves the last-known-good list in place.
	if err := s.slipsSvc.Refresh(ctx); err != nil {
		s.logger.Error("scheduled slip refresh failed", zap.Error(err))
		return
	}

	s.logger.Debug("scheduled slip refresh completed")
}
