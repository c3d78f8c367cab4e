// Package taskpool provides a bounded worker pool that executes
// submitted tasks on a population of long-lived goroutines and hands
// each submitter a handle that can be awaited for the task's result.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - A single, well-understood synchronization design: one mutex, two
//     condition variables, and a bounded FIFO queue.
//   - Predictable admission behavior: a submitter never blocks longer
//     than one second before learning whether its task was accepted.
//   - A result handoff whose lifetime is independent of the submitter's
//     call stack, so a result can be produced and collected from
//     entirely different goroutines.
//   - Two worker-lifecycle policies chosen once, before Start: a fixed
//     population, or an elastic one that grows under backlog and
//     shrinks back to its floor after sustained idleness.
//
// Architecture overview
//
// The pool is composed of four cooperating pieces:
//
//  1. Queue
//     A bounded FIFO of pending tasks, guarded by a single mutex with
//     two condition signals: notFull (there is room to push) and
//     notEmpty (there is a task to pop). Submitters wait on notFull for
//     up to one second; workers wait on notEmpty, indefinitely in FIXED
//     mode or in one-second slices in ELASTIC mode.
//
//  2. Worker
//     A long-lived loop that pulls one task at a time, executes it
//     outside the queue's mutex, and reports the result before looping.
//     In ELASTIC mode a worker that times out waiting for work and has
//     been idle past idleTimeout retires itself, provided doing so does
//     not shrink the pool below its configured floor.
//
//  3. ResultHandle
//     A one-shot rendezvous between the worker that computes a value
//     and whichever goroutine calls Await on the handle. A handle
//     created for a rejected submission is invalid: Await on it returns
//     the zero value immediately, without blocking.
//
//  4. Pool
//     Owns the queue and the worker census. Implements the admission
//     policy (Submit), the elastic growth check (one new worker per
//     submission that observes backlog, bounded by threadSizeMax), and
//     the shutdown protocol (signal every worker, wait for the census
//     to reach zero).
//
// Queue design
//
// The pool intentionally uses one plain mutex-guarded FIFO buffer.
// There is no priority, no aging, no work stealing between workers, and
// no per-worker sharding: every task is dequeued strictly in submission
// order, and completion order is whatever scheduling and task duration
// happen to produce.
//
// Error handling
//
// The pool distinguishes three kinds of failure:
//
//   - Configuration errors (an invalid threshold, or a setter called
//     after Start): the setter logs and leaves state unchanged.
//   - Admission failures (the queue stays full for a full second): the
//     caller receives an invalid ResultHandle rather than an error
//     value, so the zero-cost path (ignore the result) requires no
//     special-casing.
//   - Task failures (a panic, or an exhausted RetryPolicy): recovered
//     at the worker boundary and reported through OnTaskError; the
//     task's handle is delivered the zero value.
//
// Errors are reported via optional caller-supplied handlers and never
// stop other workers from making progress.
//
// Intended use cases
//
// taskpool is well suited for:
//
//   - Bounding the concurrency of many short, independent units of work
//   - Decoupling task submission from result collection
//   - Workloads with bursty backlog, via ELASTIC mode's bounded growth
//
// It is not intended for workloads needing task priorities, deadlines,
// cross-process distribution, or cooperative cancellation of work that
// has already started executing.
package taskpool
