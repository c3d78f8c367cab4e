package taskpool

import "testing"

func TestFillDefaultsLeavesExplicitValuesAlone(t *testing.T) {
	c := Config{
		Mode:          ELASTIC,
		TaskQueMax:    5,
		ThreadSizeMax: 10,
	}
	c.FillDefaults()

	if c.TaskQueMax != 5 || c.ThreadSizeMax != 10 {
		t.Fatalf("FillDefaults overwrote explicit values: %+v", c)
	}
	if c.Metrics == nil {
		t.Fatal("FillDefaults should install a default MetricsPolicy")
	}
	if c.LogContext == nil {
		t.Fatal("FillDefaults should install a default LogContext")
	}
	if c.IdleTimeout != DefaultIdleTimeout {
		t.Fatalf("IdleTimeout = %s; want default %s", c.IdleTimeout, DefaultIdleTimeout)
	}
}

func TestFillDefaultsFillsZeroValues(t *testing.T) {
	var c Config
	c.FillDefaults()

	if c.TaskQueMax != DefaultTaskQueMax {
		t.Fatalf("TaskQueMax = %d; want %d", c.TaskQueMax, DefaultTaskQueMax)
	}
	if c.ThreadSizeMax != DefaultThreadSizeMax {
		t.Fatalf("ThreadSizeMax = %d; want %d", c.ThreadSizeMax, DefaultThreadSizeMax)
	}
	if _, ok := c.Metrics.(*NoopMetrics); !ok {
		t.Fatalf("default Metrics = %T; want *NoopMetrics", c.Metrics)
	}
}

func TestSettersRejectedAfterStart(t *testing.T) {
	var configErrs []error
	p := NewPool[int](Config{
		Mode: ELASTIC,
		OnConfigError: func(err error) {
			configErrs = append(configErrs, err)
		},
	})
	p.Start(1)
	defer p.Stop()

	p.SetMode(FIXED)
	p.SetTaskQueMax(5)
	p.SetThreadSizeMax(5)

	if len(configErrs) != 3 {
		t.Fatalf("got %d config errors; want 3 (one per setter called after Start)", len(configErrs))
	}
	for _, err := range configErrs {
		if err != ErrPoolRunning {
			t.Fatalf("unexpected error %v; want ErrPoolRunning", err)
		}
	}
}

func TestSetThreadSizeMaxRejectsFixedMode(t *testing.T) {
	var got error
	p := NewPool[int](Config{
		Mode:          FIXED,
		OnConfigError: func(err error) { got = err },
	})

	p.SetThreadSizeMax(5)

	if got != ErrWrongMode {
		t.Fatalf("error = %v; want ErrWrongMode", got)
	}
}

func TestSetTaskQueMaxRejectsInvalidValues(t *testing.T) {
	var got error
	p := NewPool[int](Config{OnConfigError: func(err error) { got = err }})

	p.SetTaskQueMax(0)

	if got != ErrInvalidThreshold {
		t.Fatalf("error = %v; want ErrInvalidThreshold", got)
	}
}
