package taskpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Pool executes submitted tasks on a bounded population of long-lived
// worker goroutines and hands each submitter a ResultHandle that can
// be awaited for the task's result. See the package doc for the
// overall design.
//
// A Pool must not be copied after first use; it embeds a sync.Mutex.
type Pool[T any] struct {
	cfg Config

	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	exitCond *sync.Cond

	queue        *taskQueue[T]
	workers      map[int]struct{}
	nextWorkerID int

	running     bool
	shutdown    atomic.Bool
	curThreads  atomic.Int32
	idleThreads atomic.Int32
	initThreads int32
	executed    atomic.Int32
}

// PoolStats is a point-in-time snapshot of the pool's worker census,
// queue depth, and lifetime task count.
type PoolStats struct {
	CurThreads  int32
	IdleThreads int32
	InitThreads int32
	TaskSize    int32
	Executed    int32
}

// NewPool constructs a Pool from cfg. Zero-value fields in cfg are
// replaced with defaults (config.go). The pool does not start any
// workers until Start is called.
func NewPool[T any](cfg Config) *Pool[T] {
	cfg.FillDefaults()
	p := &Pool[T]{
		cfg:     cfg,
		workers: make(map[int]struct{}),
	}
	p.notFull = sync.NewCond(&p.mu)
	p.notEmpty = sync.NewCond(&p.mu)
	p.exitCond = sync.NewCond(&p.mu)
	return p
}

// SetMode selects FIXED or ELASTIC worker-lifecycle policy. It is a
// no-op, reported via OnConfigError, if the pool is already running.
func (p *Pool[T]) SetMode(m Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.reportConfigError(ErrPoolRunning)
		lg.FromContext(p.cfg.LogContext).Warn("SetMode ignored: pool already running")
		return
	}
	p.cfg.Mode = m
}

// SetTaskQueMax bounds the pending-task queue to n. It is a no-op,
// reported via OnConfigError, if the pool is running or n is outside
// [1, math.MaxInt32].
func (p *Pool[T]) SetTaskQueMax(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.reportConfigError(ErrPoolRunning)
		lg.FromContext(p.cfg.LogContext).Warn("SetTaskQueMax ignored: pool already running")
		return
	}
	if n <= 0 || n > DefaultTaskQueMax {
		p.reportConfigError(ErrInvalidThreshold)
		lg.FromContext(p.cfg.LogContext).Error("invalid task queue max", lg.Int("n", n))
		return
	}
	p.cfg.TaskQueMax = n
}

// SetThreadSizeMax bounds curThreads in ELASTIC mode to n. It is a
// no-op, reported via OnConfigError, if the pool is running, the pool
// is not in ELASTIC mode, or n is outside [1, ThreadSizeHardCeiling].
func (p *Pool[T]) SetThreadSizeMax(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.reportConfigError(ErrPoolRunning)
		lg.FromContext(p.cfg.LogContext).Warn("SetThreadSizeMax ignored: pool already running")
		return
	}
	if p.cfg.Mode != ELASTIC {
		p.reportConfigError(ErrWrongMode)
		lg.FromContext(p.cfg.LogContext).Error("SetThreadSizeMax ignored: pool is not in ELASTIC mode")
		return
	}
	if n <= 0 || n > ThreadSizeHardCeiling {
		p.reportConfigError(ErrInvalidThreshold)
		lg.FromContext(p.cfg.LogContext).Error("invalid thread size max", lg.Int("n", n))
		return
	}
	p.cfg.ThreadSizeMax = n
}

// Start locks in the pool's mode and thresholds, creates the initial
// worker population, and spawns each worker's goroutine. If
// initThreadSize is non-positive it defaults to runtime.GOMAXPROCS(0).
//
// Start has a single-call contract: calling it more than once, or
// concurrently with Submit, is not supported.
func (p *Pool[T]) Start(initThreadSize int) {
	if initThreadSize <= 0 {
		initThreadSize = runtime.GOMAXPROCS(0)
	}

	p.mu.Lock()
	p.queue = newTaskQueue[T](p.cfg.TaskQueMax)
	p.shutdown.Store(false)
	p.initThreads = int32(initThreadSize)
	p.curThreads.Store(int32(initThreadSize))
	p.idleThreads.Store(int32(initThreadSize))
	p.running = true

	ids := make([]int, 0, initThreadSize)
	for i := 0; i < initThreadSize; i++ {
		id := p.nextWorkerID
		p.nextWorkerID++
		p.workers[id] = struct{}{}
		ids = append(ids, id)
	}
	p.mu.Unlock()

	lg.FromContext(p.cfg.LogContext).Info("pool started",
		lg.Int("initThreadSize", initThreadSize),
		lg.String("mode", p.cfg.Mode.String()),
	)

	for _, id := range ids {
		go p.runWorker(id)
	}
}

// Submit admits job onto the queue and returns a ResultHandle for it.
// If the queue is still full after the admission timeout, Submit
// returns an invalid handle instead: Await on it yields the zero value
// immediately.
func (p *Pool[T]) Submit(job Job[T]) *ResultHandle[T] {
	t := &task[T]{job: job, pool: p}
	deadline := time.Now().Add(DefaultAdmissionTimeout)

	p.mu.Lock()

	for p.queue.full() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			p.mu.Unlock()
			p.cfg.Metrics.IncRejected()
			lg.FromContext(p.cfg.LogContext).Error("task queue is full, submit task failed")
			return newInvalidResultHandle[T]()
		}
		p.waitFor(p.notFull, remaining)
	}

	p.queue.push(t)
	p.notEmpty.Broadcast()

	if p.cfg.Mode == ELASTIC &&
		int32(p.queue.len()) > p.idleThreads.Load() &&
		p.curThreads.Load() < int32(p.cfg.ThreadSizeMax) {

		id := p.nextWorkerID
		p.nextWorkerID++
		p.workers[id] = struct{}{}
		p.curThreads.Add(1)
		p.idleThreads.Add(1)
		p.cfg.Metrics.WorkerGrown()
		lg.FromContext(p.cfg.LogContext).Info("elastic pool growing",
			lg.Int("workerID", id),
			lg.Int32("curThreads", p.curThreads.Load()),
		)
		go p.runWorker(id)
	}

	handle := newValidResultHandle[T]()
	t.handle = handle
	p.cfg.Metrics.IncSubmitted()
	p.mu.Unlock()

	return handle
}

// Stop signals every worker to exit, waits for the worker census to
// reach zero, and drops any tasks still sitting in the queue — their
// handles remain undelivered. Stop is idempotent-safe to call once;
// calling it a second time is a no-op because curThreads is already
// zero.
func (p *Pool[T]) Stop() {
	p.mu.Lock()
	p.shutdown.Store(true)
	p.notEmpty.Broadcast()

	for p.curThreads.Load() > 0 {
		p.exitCond.Wait()
	}

	dropped := 0
	if p.queue != nil {
		for !p.queue.empty() {
			p.queue.pop()
			dropped++
		}
	}
	p.running = false
	p.mu.Unlock()

	for i := 0; i < dropped; i++ {
		p.cfg.Metrics.IncDropped()
	}
	lg.FromContext(p.cfg.LogContext).Info("pool stopped", lg.Int("droppedTasks", dropped))
}

// Stats returns a point-in-time snapshot of the worker census, queue
// depth, and lifetime executed-task count.
func (p *Pool[T]) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	sz := 0
	if p.queue != nil {
		sz = p.queue.len()
	}
	return PoolStats{
		CurThreads:  p.curThreads.Load(),
		IdleThreads: p.idleThreads.Load(),
		InitThreads: p.initThreads,
		TaskSize:    int32(sz),
		Executed:    p.executed.Load(),
	}
}

// runWorker is a worker's long-lived processing loop: pull one task,
// run it outside the queue lock, report back, repeat.
func (p *Pool[T]) runWorker(id int) {
	lastActive := time.Now()

	for {
		p.mu.Lock()

		for p.queue.empty() || p.shutdown.Load() {
			if p.shutdown.Load() {
				delete(p.workers, id)
				p.curThreads.Add(-1)
				p.exitCond.Broadcast()
				p.mu.Unlock()
				return
			}

			if p.cfg.Mode == ELASTIC {
				woken := p.waitFor(p.notEmpty, idleWaitSlice)
				if !woken && time.Since(lastActive) > p.cfg.IdleTimeout &&
					p.curThreads.Load() > p.initThreads {

					delete(p.workers, id)
					p.curThreads.Add(-1)
					p.idleThreads.Add(-1)
					p.cfg.Metrics.WorkerRetired()
					p.mu.Unlock()
					lg.FromContext(p.cfg.LogContext).Info("elastic worker retired on idle timeout", lg.Int("workerID", id))
					return
				}
				continue
			}

			p.notEmpty.Wait()
		}

		p.idleThreads.Add(-1)
		t := p.queue.pop()
		if !p.queue.empty() {
			p.notEmpty.Broadcast()
		}
		p.notFull.Broadcast()
		p.mu.Unlock()

		t.execute()
		p.executed.Add(1)
		p.cfg.Metrics.IncDelivered()

		p.idleThreads.Add(1)
		lastActive = time.Now()
	}
}

// waitFor waits on cond for up to d, returning true if some other
// goroutine's Signal/Broadcast is what woke it (or close enough to
// call it that) and false if d elapsed with nothing else waking it.
//
// sync.Cond has no built-in deadline, so a single-shot timer rearms
// both condition variables at the deadline, turning an otherwise
// unconditional Wait into a bounded one. The caller must hold p.mu;
// Wait releases and reacquires it internally.
func (p *Pool[T]) waitFor(cond *sync.Cond, d time.Duration) bool {
	deadline := time.Now().Add(d)
	timer := time.AfterFunc(d, func() {
		p.mu.Lock()
		p.notFull.Broadcast()
		p.notEmpty.Broadcast()
		p.mu.Unlock()
	})
	defer timer.Stop()
	cond.Wait()
	return time.Now().Before(deadline)
}
