package taskpool

import (
	"fmt"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
)

const (
	defaultAttempts     = 3
	defaultInitialRetry = 200 * time.Millisecond
	defaultMaxRetry     = 5 * time.Second
)

// RetryPolicy describes how many times and how often a task's
// RetryFn should be retried before the pool gives up and delivers the
// zero value. Zero-value fields fall back to the package defaults.
//
// RetryPolicy only governs re-invocations of RetryFn inside a single
// task's execute call; it has no effect on the queue or the worker
// census — to the rest of the pool, a retried task still looks like
// exactly one execution.
type RetryPolicy struct {
	// Attempts is the maximum number of tries for a task.
	Attempts int

	// Initial is the first backoff duration.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

// GetDefaultRP returns a pointer to the default retry policy. Useful
// in tests or when constructing a Config with the same defaults.
func GetDefaultRP() *RetryPolicy {
	return &RetryPolicy{Attempts: defaultAttempts, Initial: defaultInitialRetry, Max: defaultMaxRetry}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = defaultAttempts
	}
	if p.Initial <= 0 {
		p.Initial = defaultInitialRetry
	}
	if p.Max <= 0 {
		p.Max = defaultMaxRetry
	}
	return p
}

// TaskFunc is the plain, no-retry shape of a task body: a closure
// producing one opaque result value. It is invoked at most once per
// submission.
type TaskFunc[T any] func() T

// RetryableFunc is the shape of a task body submitted alongside a
// RetryPolicy. It reports success or failure, and may be invoked more
// than once internally by a single task's execute.
type RetryableFunc[T any] func() (T, error)

// Job is what callers hand to Pool.Submit: a task body plus optional
// retry and cleanup behavior. Exactly one of Fn or RetryFn should be
// set; if both are, RetryFn takes precedence.
type Job[T any] struct {
	// Fn is the task body for a task with no retry policy.
	Fn TaskFunc[T]

	// RetryFn is the task body for a task that may fail and be retried.
	// If set, Retry configures the retry/backoff schedule; a nil Retry
	// falls back to the pool's Config.DefaultRetry, then GetDefaultRP.
	RetryFn RetryableFunc[T]
	Retry   *RetryPolicy

	// CleanupFunc, if set, runs after the task body finishes — whether
	// by returning normally or by panicking — and after the result has
	// been published.
	CleanupFunc func()
}

// task is the pool's internal, queued unit of work: a Job bound to the
// ResultHandle its submitter will observe.
type task[T any] struct {
	job    Job[T]
	handle *ResultHandle[T]
	pool   *Pool[T]
}

// execute runs the task body (Fn once, or RetryFn up to its retry
// policy's attempt count), recovers any panic from it, and publishes
// the resulting value into the handle. It must not be called more than
// once per task instance.
func (t *task[T]) execute() {
	defer func() {
		if t.job.CleanupFunc != nil {
			t.job.CleanupFunc()
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			t.pool.reportTaskError(fmt.Errorf("taskpool: task panicked: %v", r))
			var zero T
			t.handle.publish(zero)
		}
	}()

	var value T
	switch {
	case t.job.RetryFn != nil:
		value = t.runRetryable()
	case t.job.Fn != nil:
		value = t.job.Fn()
	}
	t.handle.publish(value)
}

// runRetryable drives RetryFn through the task's (or pool's default)
// RetryPolicy, sleeping between attempts with exponential backoff.
func (t *task[T]) runRetryable() T {
	pol := t.job.Retry
	if pol == nil {
		pol = t.pool.cfg.DefaultRetry
	}
	if pol == nil {
		pol = GetDefaultRP()
	}
	norm := pol.normalized()
	bo := boff.New(norm.Initial, norm.Max, time.Now().UnixNano())

	var zero T
	for attempt := 1; attempt <= norm.Attempts; attempt++ {
		v, err := t.job.RetryFn()
		if err == nil {
			return v
		}
		if attempt == norm.Attempts {
			t.pool.reportTaskError(fmt.Errorf("taskpool: task failed after %d attempts: %w", attempt, err))
			return zero
		}
		time.Sleep(bo.Next())
	}
	return zero
}
