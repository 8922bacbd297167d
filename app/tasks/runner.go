package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lysyi3m/wotd/app/feed"
	"github.com/lysyi3m/wotd/app/merriam"
)

const (
	defaultBaseDelay = time.Second
	defaultMaxDelay  = 30 * time.Second
)

// Runner executes a task in the caller's goroutine and retries transient
// failures with capped exponential backoff.
type Runner struct {
	baseDelay time.Duration
	maxDelay  time.Duration
}

func NewRunner() *Runner {
	return &Runner{baseDelay: defaultBaseDelay, maxDelay: defaultMaxDelay}
}

// Run executes task until it succeeds, fails permanently, runs out of
// retries or ctx is done. The last error is returned.
func (r *Runner) Run(ctx context.Context, task TaskInterface) error {
	for {
		task.Start()

		err := task.Execute(ctx)
		if err == nil {
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(err, ctxErr) {
				return err
			}
			return errors.Join(err, ctxErr)
		}

		if IsPermanent(err) {
			slog.Error("Task failed permanently", "type", string(task.GetType()), "id", task.GetID(), "error", err)
			return err
		}

		if !task.CanRetry() {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
			return err
		}

		task.IncrementRetryCount()
		delay := r.retryDelay(task.GetRetryCount())

		slog.Warn("Task retry scheduled", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", delay.String(), "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Debug("Context done, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}

func (r *Runner) retryDelay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	shift := retryCount - 1
	if shift > 30 {
		return r.maxDelay
	}
	delay := r.baseDelay << uint(shift)
	if delay > r.maxDelay || delay <= 0 {
		delay = r.maxDelay
	}
	return delay
}

// IsPermanent reports whether err is one that retrying cannot fix.
func IsPermanent(err error) bool {
	return errors.Is(err, feed.ErrFeedFormat) ||
		errors.Is(err, merriam.ErrNotFound) ||
		errors.Is(err, merriam.ErrMissingAPIKey)
}
