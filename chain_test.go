package reactor_test

import (
	"errors"
	"testing"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/leaf"
)

func TestChainPropagatesFaultFromB(t *testing.T) {
	want := errors.New("series fault")
	c := reactor.Chain[int](leaf.None[int](), leaf.Throw[int](want))

	got := c.Commit(0)
	if !reactor.IsComplete(got) || !reactor.HasEvaluation(got) {
		t.Fatalf("commit(0) = %s, want complete and evaluated", got)
	}
	if _, err := c.Eval(); !errors.Is(err, want) {
		t.Fatalf("eval() error = %v, want %v", err, want)
	}
}

func TestChainBNeverCommittedBeforeATransitions(t *testing.T) {
	a := leaf.NewQueue[int]()
	var bCommits int
	b := &commitCountingReactor{commits: &bCommits, state: reactor.COMPLETE_EVALUATED, value: 99}

	c := reactor.Chain[int](a, b)

	c.Commit(0)
	if bCommits != 0 {
		t.Fatalf("b committed %d times before a completed, want 0", bCommits)
	}

	a.Close() // a completes empty this tick, so b must start the same tick
	c.Commit(1)
	if bCommits != 1 {
		t.Fatalf("b committed %d times once a completed, want 1", bCommits)
	}
}

type commitCountingReactor struct {
	commits *int
	state   reactor.State
	value   int
}

func (r *commitCountingReactor) Commit(int) reactor.State {
	*r.commits++
	return r.state
}

func (r *commitCountingReactor) Eval() (int, error) {
	return r.value, nil
}
