package taskpool

import "testing"

func TestTaskQueueFIFOOrder(t *testing.T) {
	q := newTaskQueue[int](4)

	tasks := make([]*task[int], 4)
	for i := range tasks {
		tasks[i] = &task[int]{}
		q.push(tasks[i])
	}
	if !q.full() {
		t.Fatal("queue should report full at capacity")
	}

	for i := range tasks {
		got := q.pop()
		if got != tasks[i] {
			t.Fatalf("pop order broken at index %d", i)
		}
	}
	if !q.empty() {
		t.Fatal("queue should report empty after draining")
	}
}

func TestTaskQueueWrapsAroundRingBuffer(t *testing.T) {
	q := newTaskQueue[int](3)

	a, b, c := &task[int]{}, &task[int]{}, &task[int]{}
	q.push(a)
	q.push(b)
	q.pop()
	q.push(c)
	d := &task[int]{}
	q.push(d)

	if got := q.pop(); got != b {
		t.Fatalf("first pop after wrap = %p; want %p", got, b)
	}
	if got := q.pop(); got != c {
		t.Fatalf("second pop after wrap = %p; want %p", got, c)
	}
	if got := q.pop(); got != d {
		t.Fatalf("third pop after wrap = %p; want %p", got, d)
	}
}

func TestNewTaskQueueClampsNonPositiveMax(t *testing.T) {
	q := newTaskQueue[int](0)
	if q.max != 1 {
		t.Fatalf("max = %d; want 1 for a non-positive max", q.max)
	}
	if len(q.buf) != 0 {
		t.Fatalf("buffer length = %d; want 0 until the first push", len(q.buf))
	}
	q.push(&task[int]{})
	if !q.full() {
		t.Fatal("queue with max=1 should report full after one push")
	}
}

func TestNewTaskQueueDoesNotPreallocateToMax(t *testing.T) {
	q := newTaskQueue[int](1 << 30)
	if len(q.buf) != 0 {
		t.Fatalf("buffer length = %d; want 0 before any push, regardless of max", len(q.buf))
	}
	q.push(&task[int]{})
	if len(q.buf) > initialQueueCap {
		t.Fatalf("buffer length = %d after one push; want a small initial allocation, not one sized to max", len(q.buf))
	}
}
