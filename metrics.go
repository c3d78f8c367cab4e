package taskpool

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the pool to report task and
// worker-census activity to an external collector.
//
// Implementations must be safe for concurrent use. All methods are
// expected to be lightweight and non-blocking; the pool calls some of
// them while holding its queue mutex, and IncDelivered from a worker
// right after a task body has run.
type MetricsPolicy interface {
	// IncSubmitted increments the accepted-task counter.
	IncSubmitted()

	// IncRejected increments the admission-failure counter.
	IncRejected()

	// IncDelivered increments the delivered-result counter.
	IncDelivered()

	// IncDropped increments the dropped-at-shutdown counter.
	IncDropped()

	// WorkerGrown and WorkerRetired report elastic grow/shrink events.
	WorkerGrown()
	WorkerRetired()
}

// AtomicMetrics is a lock-free MetricsPolicy implementation backed by
// atomics. Writes are optimized for hot paths; reads are intended for
// cold-path observation via Submitted, Rejected, Delivered and Dropped.
// Pool.Stats does not read these counters.
type AtomicMetrics struct {
	// submitted is the total number of tasks accepted onto the queue.
	submitted atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// rejected is the total number of admission failures.
	rejected atomic.Uint64

	_ [56]byte

	// delivered is the total number of results published to a handle.
	delivered atomic.Uint64

	_ [56]byte

	// dropped is the total number of tasks discarded, undelivered, at shutdown.
	dropped atomic.Uint64
}

func (m *AtomicMetrics) Submitted() uint64 { return m.submitted.Load() }
func (m *AtomicMetrics) Rejected() uint64  { return m.rejected.Load() }
func (m *AtomicMetrics) Delivered() uint64 { return m.delivered.Load() }
func (m *AtomicMetrics) Dropped() uint64   { return m.dropped.Load() }

func (m *AtomicMetrics) IncSubmitted() { m.submitted.Add(1) }
func (m *AtomicMetrics) IncRejected()  { m.rejected.Add(1) }
func (m *AtomicMetrics) IncDelivered() { m.delivered.Add(1) }
func (m *AtomicMetrics) IncDropped()   { m.dropped.Add(1) }

// WorkerGrown and WorkerRetired are no-ops on AtomicMetrics: the live
// and idle worker counts are already tracked by the pool itself and
// exposed via Pool.Stats, so this type does not duplicate them.
func (m *AtomicMetrics) WorkerGrown()   {}
func (m *AtomicMetrics) WorkerRetired() {}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards all
// metric updates. It is the default when Config.Metrics is left nil.
type NoopMetrics struct{}

func (m *NoopMetrics) IncSubmitted()  {}
func (m *NoopMetrics) IncRejected()   {}
func (m *NoopMetrics) IncDelivered()  {}
func (m *NoopMetrics) IncDropped()    {}
func (m *NoopMetrics) WorkerGrown()   {}
func (m *NoopMetrics) WorkerRetired() {}
