package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/expenses"
)

type countingRunner struct {
	calls int
}

func (c *countingRunner) Run(params simulation.Params, totals expenses.Totals) simulation.Result {
	c.calls++
	return simulation.Run(params, totals)
}

type failingCache struct {
	gets, sets int
}

func (f *failingCache) Get(context.Context, string) ([]byte, error) {
	f.gets++
	return nil, errors.New("connection refused")
}

func (f *failingCache) Set(context.Context, string, []byte) error {
	f.sets++
	return errors.New("connection refused")
}

func TestSimulatorHitAndMiss(t *testing.T) {
	runner := &countingRunner{}
	sim := NewSimulator(nil, runner, NewMemoryCache(0))
	params := sampleParams()

	first := sim.Run(params, expenses.Totals{})
	second := sim.Run(params, expenses.Totals{})

	if runner.calls != 1 {
		t.Errorf("runner called %d times, expected 1", runner.calls)
	}
	if len(first.MonthlyData) != len(second.MonthlyData) {
		t.Fatalf("cached result shape differs")
	}
	last := len(first.MonthlyData) - 1
	if first.MonthlyData[last] != second.MonthlyData[last] {
		t.Errorf("cached point %+v differs from computed %+v", second.MonthlyData[last], first.MonthlyData[last])
	}

	params.MonthlyRent += 50
	sim.Run(params, expenses.Totals{})
	if runner.calls != 2 {
		t.Errorf("runner called %d times after input change, expected 2", runner.calls)
	}
}

func TestSimulatorFallsBackOnCacheFailure(t *testing.T) {
	runner := &countingRunner{}
	backend := &failingCache{}
	sim := NewSimulator(nil, runner, backend)

	result := sim.Run(sampleParams(), expenses.Totals{})
	if len(result.MonthlyData) == 0 {
		t.Fatal("expected a computed result despite cache failure")
	}
	if runner.calls != 1 || backend.gets != 1 || backend.sets != 1 {
		t.Errorf("calls=%d gets=%d sets=%d", runner.calls, backend.gets, backend.sets)
	}
}

func TestSimulatorIgnoresCorruptEntry(t *testing.T) {
	runner := &countingRunner{}
	backend := NewMemoryCache(0)
	params := sampleParams()

	key, err := Key(params, expenses.Totals{})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	_ = backend.Set(context.Background(), key, []byte("{not json"))

	sim := NewSimulator(nil, runner, backend)
	result := sim.Run(params, expenses.Totals{})
	if runner.calls != 1 || len(result.MonthlyData) == 0 {
		t.Errorf("corrupt entry not recomputed: calls=%d", runner.calls)
	}

	sim.Run(params, expenses.Totals{})
	if runner.calls != 1 {
		t.Errorf("recomputed entry not stored: calls=%d", runner.calls)
	}
}

func TestSimulatorWithoutCache(t *testing.T) {
	runner := &countingRunner{}
	sim := NewSimulator(nil, runner, nil)

	sim.Run(sampleParams(), expenses.Totals{})
	sim.Run(sampleParams(), expenses.Totals{})
	if runner.calls != 2 {
		t.Errorf("runner called %d times, expected 2", runner.calls)
	}
}

func TestSimulatorSkipsCacheOnDoneContext(t *testing.T) {
	backend := &failingCache{}
	runner := &countingRunner{}
	sim := NewSimulator(nil, runner, backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := sim.RunContext(ctx, sampleParams(), expenses.Totals{})
	if len(result.MonthlyData) == 0 {
		t.Fatal("expected a computed projection")
	}
	if runner.calls != 1 {
		t.Errorf("runner called %d times, expected 1", runner.calls)
	}
	if backend.gets != 0 || backend.sets != 0 {
		t.Errorf("cache used after cancellation: %d gets, %d sets", backend.gets, backend.sets)
	}
}

func TestSimulatorIsContextRunner(t *testing.T) {
	var _ simulation.ContextRunner = NewSimulator(nil, &countingRunner{}, nil)
}
