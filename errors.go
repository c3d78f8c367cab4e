package taskpool

import "errors"

var (
	// ErrInvalidThreshold is reported via OnConfigError when a setter is
	// given a value outside its accepted range.
	ErrInvalidThreshold = errors.New("taskpool: invalid threshold")

	// ErrPoolRunning is reported via OnConfigError when a pre-start
	// setter is called after Start.
	ErrPoolRunning = errors.New("taskpool: pool is already running; setting ignored")

	// ErrWrongMode is reported via OnConfigError when SetThreadSizeMax
	// is called on a FIXED-mode pool.
	ErrWrongMode = errors.New("taskpool: thread size max can only be set in ELASTIC mode")
)

// reportConfigError reports a configuration-kind error: an invalid
// threshold, or a pre-start setter invoked after Start. If no handler
// is registered, the error is silently ignored beyond the structured
// log line every setter already writes.
func (p *Pool[T]) reportConfigError(e error) {
	if p.cfg.OnConfigError != nil {
		p.cfg.OnConfigError(e)
	}
}

// reportTaskError reports a task-kind error: a recovered panic, or a
// RetryPolicy exhausted without success. Task errors never stop the
// worker that reports them, nor any other worker; the task's
// ResultHandle still receives the zero value.
func (p *Pool[T]) reportTaskError(err error) {
	if p.cfg.OnTaskError != nil {
		p.cfg.OnTaskError(err)
	}
}
