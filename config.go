package taskpool

import (
	"context"
	"math"
	"time"
)

// Mode selects the worker-lifecycle policy for a Pool.
type Mode int

const (
	// FIXED holds the worker count constant at the size Start was called
	// with, for the lifetime of the pool.
	FIXED Mode = iota

	// ELASTIC lets the worker count grow on backlog, up to ThreadSizeMax,
	// and shrink back toward the Start-time floor once a worker has been
	// idle past IdleTimeout.
	ELASTIC
)

func (m Mode) String() string {
	switch m {
	case FIXED:
		return "FIXED"
	case ELASTIC:
		return "ELASTIC"
	default:
		return "UNKNOWN"
	}
}

const (
	// DefaultTaskQueMax is used when Config.TaskQueMax is left at zero:
	// effectively unbounded.
	DefaultTaskQueMax = math.MaxInt32

	// DefaultThreadSizeMax is the elastic-mode ceiling on curThreads used
	// when Config.ThreadSizeMax is left at zero. Carried forward from the
	// source as a default, not a requirement (see DESIGN.md).
	DefaultThreadSizeMax = 1024

	// ThreadSizeHardCeiling bounds what SetThreadSizeMax will accept.
	ThreadSizeHardCeiling = 1024

	// DefaultIdleTimeout is how long an ELASTIC worker may sit idle
	// before it is eligible for self-retirement.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultAdmissionTimeout bounds how long Submit will wait for room
	// in the queue before returning an invalid ResultHandle.
	DefaultAdmissionTimeout = time.Second

	// idleWaitSlice is the per-wait timeout an ELASTIC worker uses while
	// blocked on notEmpty, so it can periodically re-check its own idle
	// duration against IdleTimeout.
	idleWaitSlice = time.Second
)

// Config configures a Pool before Start. FillDefaults replaces zero-value
// TaskQueMax, ThreadSizeMax, IdleTimeout, Metrics and LogContext with
// their defaults; Mode, DefaultRetry and the error hooks are left as given.
type Config struct {
	// Mode selects FIXED or ELASTIC worker-lifecycle policy.
	Mode Mode

	// TaskQueMax bounds the pending-task queue. Must be in [1, math.MaxInt32].
	TaskQueMax int

	// ThreadSizeMax bounds curThreads in ELASTIC mode. Must be in
	// [1, ThreadSizeHardCeiling]. Ignored in FIXED mode.
	ThreadSizeMax int

	// IdleTimeout is how long an ELASTIC worker may sit idle before it
	// becomes eligible for self-retirement.
	IdleTimeout time.Duration

	// DefaultRetry, if non-nil, is applied to any task submitted with a
	// RetryFn but without its own per-task RetryPolicy. Tasks submitted
	// with Fn are never retried. See task.go.
	DefaultRetry *RetryPolicy

	// Metrics, if non-nil, receives queueing and execution events. A
	// NoopMetrics is installed if left nil.
	Metrics MetricsPolicy

	// OnConfigError and OnTaskError, if non-nil, receive diagnostics for
	// configuration mistakes and task-body failures, respectively.
	OnConfigError func(error)
	OnTaskError   func(error)

	// LogContext carries the structured logger (via lg.FromContext) that
	// the pool writes its own diagnostics through. Defaults to
	// context.Background(), i.e. the package-level default logger.
	LogContext context.Context
}

// FillDefaults replaces zero-value fields with their defaults. It is
// called once, internally, by NewPool.
func (c *Config) FillDefaults() {
	if c.TaskQueMax <= 0 {
		c.TaskQueMax = DefaultTaskQueMax
	}
	if c.ThreadSizeMax <= 0 {
		c.ThreadSizeMax = DefaultThreadSizeMax
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.Metrics == nil {
		c.Metrics = &NoopMetrics{}
	}
	if c.LogContext == nil {
		c.LogContext = context.Background()
	}
}
