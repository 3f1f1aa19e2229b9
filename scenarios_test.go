package reactor_test

import (
	"errors"
	"testing"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/leaf"
)

func TestScenarioChainOfTwoConstants(t *testing.T) {
	c := reactor.Chain[int](leaf.Constant(100), leaf.Constant(200))

	if got := c.Commit(0); got != reactor.EVALUATED {
		t.Fatalf("commit(0) = %s, want EVALUATED", got)
	}
	if v, err := c.Eval(); err != nil || v != 100 {
		t.Fatalf("eval() = (%d, %v), want (100, nil)", v, err)
	}

	if got := c.Commit(1); got != reactor.COMPLETE_EVALUATED {
		t.Fatalf("commit(1) = %s, want COMPLETE_EVALUATED", got)
	}
	if v, err := c.Eval(); err != nil || v != 200 {
		t.Fatalf("eval() = (%d, %v), want (200, nil)", v, err)
	}
}

func TestScenarioChainWithTerminalNothing(t *testing.T) {
	c := reactor.Chain[int](leaf.Constant(911), leaf.None[int]())

	if got := c.Commit(0); got != reactor.EVALUATED {
		t.Fatalf("commit(0) = %s, want EVALUATED", got)
	}
	if v, _ := c.Eval(); v != 911 {
		t.Fatalf("eval() = %d, want 911", v)
	}

	if got := c.Commit(1); got != reactor.COMPLETE {
		t.Fatalf("commit(1) = %s, want COMPLETE", got)
	}
	if v, _ := c.Eval(); v != 911 {
		t.Fatalf("eval() = %d, want 911", v)
	}
}

func TestScenarioChainEmptyFirst(t *testing.T) {
	c := reactor.Chain[int](leaf.None[int](), leaf.Constant(911))

	if got := c.Commit(0); got != reactor.COMPLETE_EVALUATED {
		t.Fatalf("commit(0) = %s, want COMPLETE_EVALUATED", got)
	}
	if v, _ := c.Eval(); v != 911 {
		t.Fatalf("eval() = %d, want 911", v)
	}
}

func TestScenarioChainEmptyEmpty(t *testing.T) {
	c := reactor.Chain[int](leaf.None[int](), leaf.None[int]())

	if got := c.Commit(0); got != reactor.COMPLETE_EMPTY {
		t.Fatalf("commit(0) = %s, want COMPLETE_EMPTY", got)
	}
}

func TestScenarioFirstOfConstant(t *testing.T) {
	f := reactor.First[int](leaf.Constant(123))

	if got := f.Commit(0); got != reactor.COMPLETE_EVALUATED {
		t.Fatalf("commit(0) = %s, want COMPLETE_EVALUATED", got)
	}
	if v, err := f.Eval(); err != nil || v != 123 {
		t.Fatalf("eval() = (%d, %v), want (123, nil)", v, err)
	}
}

func TestScenarioFirstOfQueue(t *testing.T) {
	q := leaf.NewQueue[int]()
	f := reactor.First[int](q)

	if got := f.Commit(0); got != reactor.NONE {
		t.Fatalf("commit(0) = %s, want NONE", got)
	}

	q.Push(10)

	if got := f.Commit(1); got != reactor.COMPLETE_EVALUATED {
		t.Fatalf("commit(1) = %s, want COMPLETE_EVALUATED", got)
	}
	if v, err := f.Eval(); err != nil || v != 10 {
		t.Fatalf("eval() = (%d, %v), want (10, nil)", v, err)
	}
}

func TestScenarioThrow(t *testing.T) {
	want := errors.New("runtime_error")
	th := leaf.Throw[int](want)

	if got := th.Commit(0); got != reactor.COMPLETE_EVALUATED {
		t.Fatalf("commit(0) = %s, want COMPLETE_EVALUATED", got)
	}
	if _, err := th.Eval(); !errors.Is(err, want) {
		t.Fatalf("eval() error = %v, want %v", err, want)
	}
}

func TestScenarioRangeOnPerpetualDriver(t *testing.T) {
	r := reactor.Range(leaf.Constant(0), leaf.Constant(3), leaf.Constant(1))

	var got []int
	seq := 0
	for {
		state := r.Commit(seq)
		if reactor.HasEvaluation(state) {
			v, err := r.Eval()
			if err != nil {
				t.Fatalf("eval() error = %v", err)
			}
			got = append(got, v)
		}
		if reactor.IsComplete(state) {
			break
		}
		seq++
		if seq > 10 {
			t.Fatal("range never completed")
		}
	}

	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("values = %v, want %v", got, want)
		}
	}
}
