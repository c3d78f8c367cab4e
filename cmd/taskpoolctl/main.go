// Command taskpoolctl drives a taskpool.Pool with synthetic work so its
// admission, elastic growth, and shutdown behavior can be observed from
// the outside.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/Andrej220/go-utils/taskpool"
)

func main() {
	mode := flag.String("mode", "fixed", "worker lifecycle: fixed or elastic")
	initThreads := flag.Int("init", 4, "initial worker count")
	threadMax := flag.Int("max", 16, "elastic thread ceiling (ignored in fixed mode)")
	numTasks := flag.Int("tasks", 50, "number of tasks to submit")
	workMin := flag.Duration("work-min", 10*time.Millisecond, "minimum simulated task duration")
	workMax := flag.Duration("work-max", 80*time.Millisecond, "maximum simulated task duration")
	flag.Parse()

	m := taskpool.FIXED
	if *mode == "elastic" {
		m = taskpool.ELASTIC
	}

	cfg := taskpool.Config{
		Mode:          m,
		ThreadSizeMax: *threadMax,
		Metrics:       &taskpool.AtomicMetrics{},
		OnTaskError: func(err error) {
			fmt.Fprintf(os.Stderr, "task error: %v\n", err)
		},
	}

	p := taskpool.NewPool[int](cfg)
	p.Start(*initThreads)

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *numTasks; i++ {
		n := i
		d := *workMin
		if *workMax > *workMin {
			d += time.Duration(rand.Int63n(int64(*workMax - *workMin)))
		}

		handle := p.Submit(taskpool.Job[int]{
			Fn: func() int {
				time.Sleep(d)
				return n
			},
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			handle.Await()
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	stats := p.Stats()
	metrics := cfg.Metrics.(*taskpool.AtomicMetrics)

	fmt.Printf("mode=%s submitted=%d delivered=%d rejected=%d elapsed=%s\n",
		*mode, metrics.Submitted(), metrics.Delivered(), metrics.Rejected(), elapsed)
	fmt.Printf("workers: cur=%d idle=%d init=%d executed=%d\n",
		stats.CurThreads, stats.IdleThreads, stats.InitThreads, stats.Executed)

	p.Stop()
}
