// Package scheduler runs the periodic sheet refresh job.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-hammer/internal/logger"
	"github.com/yourusername/prop-hammer/internal/service"
	"github.com/yourusername/prop-hammer/internal/sheet"
)

// Broadcaster pushes refresh events to connected dashboard clients.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// Scheduler manages the recurring sheet refresh.
type Scheduler struct {
	cron        *cron.Cron
	source      *sheet.CachedSource
	analyzer    *service.Analyzer
	broadcaster Broadcaster
	audit       *logger.AuditLogger
	logger      *logrus.Logger

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a scheduler around the cached sheet source. After
// each refresh the analyzer is re-run and the result pushed through the
// broadcaster; either may be nil to disable the push.
func NewScheduler(source *sheet.CachedSource, analyzer *service.Analyzer, broadcaster Broadcaster, audit *logger.AuditLogger, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		source:      source,
		analyzer:    analyzer,
		broadcaster: broadcaster,
		audit:       audit,
		logger:      log,
		jobIDs:      make([]cron.EntryID, 0),
	}
}

// ScheduleRefresh registers the sheet refresh job on the given cron
// expression.
func (s *Scheduler) ScheduleRefresh(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, s.refreshJob)
	if err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled sheet refresh job")

	return nil
}

func (s *Scheduler) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	grid, err := s.source.Refresh(ctx)
	s.audit.LogSheetRefresh(s.source.Name(), len(grid), err)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled sheet refresh failed")
		return
	}

	s.logger.WithField("rows", len(grid)).Debug("Sheet refreshed")
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Broadcast("sheet_refreshed", map[string]int{"rows": len(grid)})

	if s.analyzer == nil {
		return
	}
	result, err := s.analyzer.Analyze(ctx, "")
	if err != nil {
		s.logger.WithError(err).Error("Post-refresh analysis failed")
		return
	}
	s.broadcaster.Broadcast("analysis", result)
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running refresh to
// finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
