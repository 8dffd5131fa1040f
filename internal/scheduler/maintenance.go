// Package scheduler runs the periodic maintenance jobs: closing projects
// past their deadline and the nightly consistency sweep. The jobs are
// enqueued onto the task queue rather than executed inline, so retries and
// timeouts are handled in one place.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/tasks"
)

// MaintenanceScheduler manages the periodic maintenance jobs.
type MaintenanceScheduler struct {
	taskClient *tasks.Client
	cfg        config.Maintenance
	auditCfg   config.Audit

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(taskClient *tasks.Client, cfg config.Maintenance, auditCfg config.Audit) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		taskClient: taskClient,
		cfg:        cfg,
		auditCfg:   auditCfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if maintenance is enabled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Maintenance scheduler: disabled")
		return nil
	}

	if s.taskClient == nil {
		log.Printf("Maintenance scheduler: task queue not configured, skipping")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.DeadlineSchedule, s.enqueueDeadlineClose); err != nil {
		return fmt.Errorf("invalid deadline schedule %q: %w", s.cfg.DeadlineSchedule, err)
	}

	if _, err := s.cron.AddFunc(s.cfg.ReconcileSchedule, s.enqueueNightlySweep); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.cfg.ReconcileSchedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started (deadline close %q, reconcile %q)",
		s.cfg.DeadlineSchedule, s.cfg.ReconcileSchedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *MaintenanceScheduler) enqueueDeadlineClose() {
	if _, err := s.taskClient.Add(tasks.CloseExpiredProjectsTask{}).Save(); err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue deadline close: %v", err)
	}
}

func (s *MaintenanceScheduler) enqueueNightlySweep() {
	if _, err := s.taskClient.Add(tasks.ReconcileInterestsTask{}).Save(); err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue reconcile: %v", err)
	}

	if s.auditCfg.Enabled {
		task := tasks.CleanupAuditEventsTask{RetentionDays: s.auditCfg.RetentionDays}
		if _, err := s.taskClient.Add(task).Save(); err != nil {
			log.Printf("Maintenance scheduler: failed to enqueue audit cleanup: %v", err)
		}
	}
}
