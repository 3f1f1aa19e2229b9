package driver_test

import (
	"context"
	"testing"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/driver"
	"github.com/aspenflow/reactor/leaf"
)

func TestRunDrivesToCompletion(t *testing.T) {
	v, err := driver.Run(context.Background(), leaf.Constant(7))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v != 7 {
		t.Fatalf("v = %d, want 7", v)
	}
}

func TestRunPropagatesAFault(t *testing.T) {
	boom := boomError{}
	_, err := driver.Run(context.Background(), leaf.Throw[int](boom))
	if err != boom {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestRunConcurrentPreservesOrder(t *testing.T) {
	rs := []reactor.Reactor[int]{leaf.Constant(1), leaf.Constant(2), leaf.Constant(3)}
	results, err := driver.RunConcurrent(context.Background(), rs)
	if err != nil {
		t.Fatalf("RunConcurrent: %v", err)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("results[%d] = %d, want %d", i, results[i], want[i])
		}
	}
}

func TestFanOutBuildsOneGraphPerItem(t *testing.T) {
	items := []int{1, 2, 3}
	results, err := driver.FanOut(context.Background(), items, func(i int) reactor.Reactor[int] {
		return leaf.Constant(i * 10)
	})
	if err != nil {
		t.Fatalf("FanOut: %v", err)
	}
	want := []int{10, 20, 30}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("results[%d] = %d, want %d", i, results[i], want[i])
		}
	}
}

func TestPipelineThreadsValueThroughStages(t *testing.T) {
	stages := []func(int) reactor.Reactor[int]{
		func(v int) reactor.Reactor[int] { return leaf.Constant(v + 1) },
		func(v int) reactor.Reactor[int] { return leaf.Constant(v * 2) },
	}
	v, err := driver.Pipeline(context.Background(), 3, stages)
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if v != 8 {
		t.Fatalf("v = %d, want 8", v)
	}
}

type boomError struct{}

func (boomError) Error() string { return "boom" }
