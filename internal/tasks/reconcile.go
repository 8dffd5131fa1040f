package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/satya0dev/getitdone/internal/interest"
)

// InterestReconciler runs a consistency sweep over the interest table.
type InterestReconciler interface {
	Run() (*interest.Report, error)
}

// ReconcileInterestsTask sweeps the interest table for rows that reference
// deleted users or projects and reports users holding more active interests
// than the cap allows.
type ReconcileInterestsTask struct{}

// Config returns the queue configuration for reconciliation tasks.
func (t ReconcileInterestsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "reconcile_interests",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ReconcileInterestsProcessor creates a processor function for ReconcileInterestsTask.
func ReconcileInterestsProcessor(reconciler InterestReconciler) backlite.QueueProcessor[ReconcileInterestsTask] {
	return func(ctx context.Context, task ReconcileInterestsTask) error {
		if reconciler == nil {
			return fmt.Errorf("interest reconciler not configured")
		}

		report, err := reconciler.Run()
		if err != nil {
			return fmt.Errorf("reconcile interests: %w", err)
		}

		log.Printf("[TASK] Interest reconcile: %d rows checked, %d orphans removed, %d users over cap",
			report.RowsChecked, report.OrphansRemoved, report.CapViolations)
		return nil
	}
}

// NewReconcileInterestsQueue creates a backlite queue for reconciliation tasks.
func NewReconcileInterestsQueue(reconciler InterestReconciler) backlite.Queue {
	return backlite.NewQueue(ReconcileInterestsProcessor(reconciler))
}
