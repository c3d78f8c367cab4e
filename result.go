package taskpool

import "context"

// ResultHandle is a one-shot rendezvous carrying the opaque return
// value of exactly one task, from the worker that computed it to
// whichever goroutine calls Await.
//
// A handle returned for an admitted task is valid: some worker will
// eventually publish a value into it. A handle returned for a rejected
// submission is invalid: Await returns the zero value immediately,
// without blocking.
//
// The handle's lifetime is not tied to the submitter's call stack —
// it is an ordinary Go reference, kept alive by whichever of the
// submitter, the queued task, or the executing worker still holds it,
// and reclaimed by the garbage collector once none of them do.
//
// A ResultHandle must not be copied after first use; pass it by
// pointer, as Submit already does.
type ResultHandle[T any] struct {
	valid bool
	sem   chan T // capacity 1: a send is publish, a receive is await
}

func newValidResultHandle[T any]() *ResultHandle[T] {
	return &ResultHandle[T]{valid: true, sem: make(chan T, 1)}
}

func newInvalidResultHandle[T any]() *ResultHandle[T] {
	return &ResultHandle[T]{valid: false}
}

// publish stores value and releases the rendezvous. publish on an
// invalid handle is a no-op. The pool's protocol guarantees publish is
// called at most once per valid handle — exactly one task, executed by
// exactly one worker, owns the handle — so the buffered send below
// never blocks.
func (h *ResultHandle[T]) publish(value T) {
	if !h.valid {
		return
	}
	h.sem <- value
}

// Await blocks until publish has occurred, then returns the stored
// value. On an invalid handle it returns the zero value immediately,
// without blocking. Await should be called at most once per handle.
func (h *ResultHandle[T]) Await() T {
	if !h.valid {
		var zero T
		return zero
	}
	return <-h.sem
}

// AwaitContext behaves like Await but also returns early with ctx's
// error if ctx is done before a value is published. This is a
// convenience layered over the core rendezvous; the pool itself never
// cancels a task based on ctx.
func (h *ResultHandle[T]) AwaitContext(ctx context.Context) (T, error) {
	if !h.valid {
		var zero T
		return zero, nil
	}
	select {
	case v := <-h.sem:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Valid reports whether the handle's submission was admitted. A false
// result means the pool's queue stayed full for the admission timeout.
func (h *ResultHandle[T]) Valid() bool { return h.valid }
