package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when a trigger is requested while the
// scheduler is stopped
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// SweepScheduler runs the overdue invoice sweep on a cron schedule. The sweep
// itself holds a distributed lock, so overlapping schedules across instances
// are safe; the scheduler only decides when to try.
type SweepScheduler struct {
	sweep  *appfinance.OverdueSweepService
	cfg    config.SchedulerConfig
	logger *zap.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu        sync.Mutex
	isRunning bool
	lastRunAt *time.Time
}

// NewSweepScheduler creates a new sweep scheduler
func NewSweepScheduler(sweep *appfinance.OverdueSweepService, cfg config.SchedulerConfig, logger *zap.Logger) *SweepScheduler {
	return &SweepScheduler{
		sweep:  sweep,
		cfg:    cfg,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the cron entry and starts the scheduler
func (s *SweepScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		s.logger.Info("Overdue sweep scheduler disabled by configuration")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.SweepCronSchedule, s.runSweep)
	if err != nil {
		return err
	}
	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Overdue sweep scheduler started",
		zap.String("schedule", s.cfg.SweepCronSchedule),
		zap.Time("next_run_at", s.cron.Entry(entryID).Next),
	)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *SweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("Overdue sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue sweep scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerManualRun runs the sweep outside the schedule. Uses a background
// context so the sweep is not cancelled when the triggering HTTP request
// completes.
func (s *SweepScheduler) TriggerManualRun() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()

	if !running {
		return ErrSchedulerNotRunning
	}

	go s.runSweep()
	return nil
}

// runSweep executes one sweep bounded by the configured job timeout
func (s *SweepScheduler) runSweep() {
	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	result, err := s.sweep.Run(ctx)
	if err != nil {
		s.logger.Error("Overdue sweep failed", zap.Error(err))
		return
	}

	if result.Skipped {
		s.logger.Info("Overdue sweep skipped, lock held elsewhere")
		return
	}

	s.logger.Info("Overdue sweep completed",
		zap.Int("examined", result.Examined),
		zap.Int("marked", result.MarkedCount),
		zap.Int("notify_failures", result.NotifyFails),
	)
}

// GetStatus returns the current status of the scheduler
func (s *SweepScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"enabled":     s.cfg.Enabled,
		"is_running":  s.isRunning,
		"schedule":    s.cfg.SweepCronSchedule,
		"last_run_at": s.lastRunAt,
	}
	if s.isRunning {
		status["next_run_at"] = s.cron.Entry(s.entryID).Next
	}
	return status
}
