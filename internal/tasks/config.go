package tasks

import "time"

// Defaults for the background queue. The maintenance jobs are light (closing
// expired projects, sweeping interests, pruning audit rows), so two workers
// is plenty.
const (
	defaultWorkers           = 2
	defaultMaxRetries        = 3
	defaultRetryDelay        = time.Minute
	defaultTaskTimeout       = 5 * time.Minute
	defaultReleaseAfter      = 15 * time.Minute
	defaultCleanupInterval   = time.Hour
	defaultRetentionDuration = 24 * time.Hour
)

// Config controls the background task queue.
type Config struct {
	// Workers is the number of concurrent task workers.
	Workers int

	// MaxRetries caps retry attempts for failed tasks.
	MaxRetries int

	// RetryDelay is the backoff between retries.
	RetryDelay time.Duration

	// TaskTimeout bounds a single task execution.
	TaskTimeout time.Duration

	// ReleaseAfter is when a stuck task is handed back to the queue.
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are pruned.
	CleanupInterval time.Duration

	// RetentionDuration is how long completed tasks are kept for inspection.
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           defaultWorkers,
		MaxRetries:        defaultMaxRetries,
		RetryDelay:        defaultRetryDelay,
		TaskTimeout:       defaultTaskTimeout,
		ReleaseAfter:      defaultReleaseAfter,
		CleanupInterval:   defaultCleanupInterval,
		RetentionDuration: defaultRetentionDuration,
	}
}
