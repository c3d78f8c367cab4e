package taskpool

import (
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedFourWorkersTenTasks(t *testing.T) {
	p := NewPool[int](Config{Mode: FIXED})
	p.Start(4)
	defer p.Stop()

	handles := make([]*ResultHandle[int], 10)
	for i := 0; i < 10; i++ {
		n := i
		handles[i] = p.Submit(Job[int]{Fn: func() int { return n }})
	}

	got := make([]int, 0, 10)
	for _, h := range handles {
		got = append(got, h.Await())
	}
	sort.Ints(got)

	for i, v := range got {
		if v != i {
			t.Fatalf("results = %v; want 0..9", got)
		}
	}
}

func TestAdmissionTimeout(t *testing.T) {
	p := NewPool[int](Config{Mode: FIXED, TaskQueMax: 1})
	p.Start(1)
	defer p.Stop()

	first := p.Submit(Job[int]{Fn: func() int {
		time.Sleep(3 * time.Second)
		return 1
	}})
	if !first.Valid() {
		t.Fatal("first submit should be admitted")
	}

	start := time.Now()
	second := p.Submit(Job[int]{Fn: func() int { return 2 }})
	elapsed := time.Since(start)

	if second.Valid() {
		t.Fatal("second submit should be rejected while queue is full and the first task still runs")
	}
	if elapsed < 900*time.Millisecond {
		t.Fatalf("rejection returned after %s; want roughly the 1s admission timeout", elapsed)
	}
	if got := second.Await(); got != 0 {
		t.Fatalf("invalid handle await = %d; want zero value", got)
	}
}

func TestElasticGrowthAndIdleReclamation(t *testing.T) {
	p := NewPool[int](Config{
		Mode:          ELASTIC,
		ThreadSizeMax: 8,
		TaskQueMax:    1000,
		IdleTimeout:   200 * time.Millisecond,
	})
	p.Start(2)
	defer p.Stop()

	handles := make([]*ResultHandle[int], 20)
	for i := 0; i < 20; i++ {
		n := i
		handles[i] = p.Submit(Job[int]{Fn: func() int {
			time.Sleep(200 * time.Millisecond)
			return n
		}})
	}

	time.Sleep(150 * time.Millisecond)
	stats := p.Stats()
	if stats.CurThreads <= 2 {
		t.Fatalf("curThreads = %d; want > 2 once the pool has grown", stats.CurThreads)
	}
	if stats.CurThreads > 8 {
		t.Fatalf("curThreads = %d; want <= threadSizeMax (8)", stats.CurThreads)
	}

	for _, h := range handles {
		h.Await()
	}

	deadline := time.Now().Add(4 * time.Second)
	for time.Now().Before(deadline) {
		if p.Stats().CurThreads == 2 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if got := p.Stats().CurThreads; got != 2 {
		t.Fatalf("curThreads after idle reclamation = %d; want 2", got)
	}
}

func TestCleanShutdownUnderLoad(t *testing.T) {
	metrics := &AtomicMetrics{}
	p := NewPool[int](Config{Mode: FIXED, Metrics: metrics})
	p.Start(4)

	for i := 0; i < 100; i++ {
		n := i
		p.Submit(Job[int]{Fn: func() int {
			time.Sleep(50 * time.Millisecond)
			return n
		}})
	}

	p.Stop()

	if got := p.Stats().CurThreads; got != 0 {
		t.Fatalf("curThreads after Stop = %d; want 0", got)
	}

	total := metrics.Delivered() + metrics.Dropped()
	if total != 100 {
		t.Fatalf("delivered(%d) + dropped(%d) = %d; want 100", metrics.Delivered(), metrics.Dropped(), total)
	}
}

func TestMetricsSnapshotInvariants(t *testing.T) {
	p := NewPool[int](Config{Mode: FIXED})
	p.Start(3)
	defer p.Stop()

	var done int32
	for i := 0; i < 15; i++ {
		p.Submit(Job[int]{Fn: func() int {
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&done, 1)
			return 0
		}})
	}

	deadline := time.Now().Add(2 * time.Second)
	var last PoolStats
	for time.Now().Before(deadline) && atomic.LoadInt32(&done) < 15 {
		stats := p.Stats()
		if stats.IdleThreads > stats.CurThreads {
			t.Fatalf("idleThreads(%d) > curThreads(%d)", stats.IdleThreads, stats.CurThreads)
		}
		if stats.CurThreads != stats.InitThreads {
			t.Fatalf("FIXED mode: curThreads(%d) != initThreads(%d)", stats.CurThreads, stats.InitThreads)
		}
		if stats.Executed < last.Executed {
			t.Fatalf("Executed went backwards: %d then %d", last.Executed, stats.Executed)
		}
		last = stats
		time.Sleep(10 * time.Millisecond)
	}

	// done is bumped inside the task body, before execute() returns and
	// runWorker increments Executed, so give the last worker a moment to
	// finish publishing before taking the final snapshot.
	deadline = time.Now().Add(time.Second)
	for p.Stats().Executed < 15 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := p.Stats().Executed; got != 15 {
		t.Fatalf("Executed after all tasks finished = %d; want 15", got)
	}
}
