package reactor_test

import (
	"errors"
	"testing"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/leaf"
)

func TestUntilStopsWhenConditionTurnsTruthy(t *testing.T) {
	cond := leaf.NewQueue[bool]()
	series := leaf.NewQueue[int]()
	u := reactor.Until[bool, int](cond, func(b bool) bool { return b }, series)

	series.Push(1)
	got := u.Commit(0)
	if !reactor.HasEvaluation(got) || reactor.IsComplete(got) {
		t.Fatalf("commit(0) = %s, want evaluated and not complete", got)
	}
	if v, _ := u.Eval(); v != 1 {
		t.Fatalf("eval() = %d, want 1", v)
	}

	series.Push(2)
	cond.Push(true)
	got = u.Commit(1)
	if !reactor.IsComplete(got) {
		t.Fatalf("commit(1) = %s, want complete once condition fires", got)
	}
	// The series never got a tick to act on its pending push(2): Eval still
	// reports the last value it actually produced.
	if v, _ := u.Eval(); v != 1 {
		t.Fatalf("eval() after completion = %d, want 1 (series push(2) never committed)", v)
	}
}

func TestUntilNeverFiresReportsCompleteEmptyWhenSeriesEndsFirst(t *testing.T) {
	cond := leaf.NewQueue[bool]()
	u := reactor.Until[bool, int](cond, func(b bool) bool { return b }, leaf.None[int]())

	got := u.Commit(0)
	if got != reactor.COMPLETE_EMPTY {
		t.Fatalf("commit(0) = %s, want COMPLETE_EMPTY", got)
	}
	if _, err := u.Eval(); !errors.Is(err, reactor.ErrNoEvaluation) {
		t.Fatalf("eval() error = %v, want ErrNoEvaluation", err)
	}
}

func TestUntilConditionFaultTerminates(t *testing.T) {
	want := errors.New("condition fault")
	u := reactor.Until[bool, int](leaf.Throw[bool](want), func(b bool) bool { return b }, leaf.NewQueue[int]())

	got := u.Commit(0)
	if !reactor.IsComplete(got) || !reactor.HasEvaluation(got) {
		t.Fatalf("commit(0) = %s, want complete and evaluated", got)
	}
	if _, err := u.Eval(); !errors.Is(err, want) {
		t.Fatalf("eval() error = %v, want %v", err, want)
	}
}
