package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ExpiredProjectCloser transitions open projects past their deadline.
type ExpiredProjectCloser interface {
	CloseExpired(now time.Time) (int64, error)
}

// CloseExpiredProjectsTask closes open projects whose deadline has passed,
// so they stop accepting new interest.
type CloseExpiredProjectsTask struct{}

// Config returns the queue configuration for deadline-close tasks.
func (t CloseExpiredProjectsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "close_expired_projects",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CloseExpiredProjectsProcessor creates a processor function for CloseExpiredProjectsTask.
func CloseExpiredProjectsProcessor(closer ExpiredProjectCloser) backlite.QueueProcessor[CloseExpiredProjectsTask] {
	return func(ctx context.Context, task CloseExpiredProjectsTask) error {
		if closer == nil {
			return fmt.Errorf("project closer not configured")
		}

		closed, err := closer.CloseExpired(time.Now())
		if err != nil {
			return fmt.Errorf("close expired projects: %w", err)
		}

		if closed > 0 {
			log.Printf("[TASK] Closed %d projects past their deadline", closed)
		}
		return nil
	}
}

// NewCloseExpiredProjectsQueue creates a backlite queue for deadline-close tasks.
func NewCloseExpiredProjectsQueue(closer ExpiredProjectCloser) backlite.Queue {
	return backlite.NewQueue(CloseExpiredProjectsProcessor(closer))
}
