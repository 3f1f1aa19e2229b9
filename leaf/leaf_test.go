package leaf_test

import (
	"errors"
	"testing"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/leaf"
)

func TestConstant(t *testing.T) {
	c := leaf.Constant("hello")

	for seq := 0; seq < 3; seq++ {
		if got := c.Commit(seq); got != reactor.COMPLETE_EVALUATED {
			t.Fatalf("commit(%d) = %s, want COMPLETE_EVALUATED", seq, got)
		}
	}
	if v, err := c.Eval(); err != nil || v != "hello" {
		t.Fatalf("eval() = (%q, %v), want (%q, nil)", v, err, "hello")
	}
}

func TestNone(t *testing.T) {
	n := leaf.None[int]()

	if got := n.Commit(0); got != reactor.COMPLETE_EMPTY {
		t.Fatalf("commit(0) = %s, want COMPLETE_EMPTY", got)
	}
	if _, err := n.Eval(); !errors.Is(err, reactor.ErrNoEvaluation) {
		t.Fatalf("eval() error = %v, want ErrNoEvaluation", err)
	}
}

func TestThrow(t *testing.T) {
	want := errors.New("boom")
	th := leaf.Throw[int](want)

	if got := th.Commit(0); got != reactor.COMPLETE_EVALUATED {
		t.Fatalf("commit(0) = %s, want COMPLETE_EVALUATED", got)
	}
	if _, err := th.Eval(); !errors.Is(err, want) {
		t.Fatalf("eval() error = %v, want %v", err, want)
	}
	// Re-raises on every call.
	if _, err := th.Eval(); !errors.Is(err, want) {
		t.Fatalf("second eval() error = %v, want %v", err, want)
	}
}

func TestPerpetual(t *testing.T) {
	p := leaf.Perpetual()
	for seq := 0; seq < 5; seq++ {
		if got := p.Commit(seq); got != reactor.CONTINUE {
			t.Fatalf("commit(%d) = %s, want CONTINUE", seq, got)
		}
	}
	if _, err := p.Eval(); !errors.Is(err, reactor.ErrNoEvaluation) {
		t.Fatalf("eval() error = %v, want ErrNoEvaluation", err)
	}
}

func TestQueueDrainsOnePerTick(t *testing.T) {
	q := leaf.NewQueue[int]()

	if got := q.Commit(0); got != reactor.NONE {
		t.Fatalf("commit(0) = %s, want NONE", got)
	}

	q.Push(1)
	q.Push(2)

	if got := q.Commit(1); got != reactor.CONTINUE_EVALUATED {
		t.Fatalf("commit(1) = %s, want CONTINUE_EVALUATED", got)
	}
	if v, _ := q.Eval(); v != 1 {
		t.Fatalf("eval() = %d, want 1", v)
	}

	if got := q.Commit(2); got != reactor.EVALUATED {
		t.Fatalf("commit(2) = %s, want EVALUATED", got)
	}
	if v, _ := q.Eval(); v != 2 {
		t.Fatalf("eval() = %d, want 2", v)
	}

	if got := q.Commit(3); got != reactor.NONE {
		t.Fatalf("commit(3) = %s, want NONE", got)
	}

	q.Close()
	if got := q.Commit(4); got != reactor.COMPLETE {
		t.Fatalf("commit(4) = %s, want COMPLETE", got)
	}
	// Frozen thereafter regardless of sequence.
	if got := q.Commit(9); got != reactor.COMPLETE {
		t.Fatalf("commit(9) = %s, want COMPLETE (frozen)", got)
	}
}

func TestQueueClosedEmpty(t *testing.T) {
	q := leaf.NewQueue[int]()
	q.Close()

	if got := q.Commit(0); got != reactor.COMPLETE_EMPTY {
		t.Fatalf("commit(0) = %s, want COMPLETE_EMPTY", got)
	}
	if _, err := q.Eval(); !errors.Is(err, reactor.ErrNoEvaluation) {
		t.Fatalf("eval() error = %v, want ErrNoEvaluation", err)
	}
}

func TestQueueCommitIsMemoizedPerSequence(t *testing.T) {
	q := leaf.NewQueue[int]()
	q.Push(5)

	first := q.Commit(0)
	q.Push(6) // pushed after the first commit(0), must not be seen by a repeat commit(0)
	second := q.Commit(0)

	if first != second {
		t.Fatalf("commit(0) twice = %s then %s, want identical", first, second)
	}
	if v, _ := q.Eval(); v != 5 {
		t.Fatalf("eval() = %d, want 5", v)
	}
}

func TestStateReactor(t *testing.T) {
	s := leaf.NewStateReactor(42)

	if got := s.Commit(0); got != reactor.EVALUATED {
		t.Fatalf("commit(0) = %s, want EVALUATED", got)
	}
	if v, err := s.Eval(); err != nil || v != 42 {
		t.Fatalf("eval() = (%d, %v), want (42, nil)", v, err)
	}

	if got := s.Commit(1); got != reactor.NONE {
		t.Fatalf("commit(1) = %s, want NONE", got)
	}
	if v, err := s.Eval(); err != nil || v != 42 {
		t.Fatalf("eval() after NONE = (%d, %v), want (42, nil)", v, err)
	}
}
