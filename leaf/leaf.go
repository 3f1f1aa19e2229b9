// Package leaf provides the terminal reactors every graph bottoms out in:
// fixed values, absence, faults, a free-running ticker, an externally-fed
// queue, and a single-shot wrapper around a plain Go value. None of these
// carry children or fold state from anything else — they are where the
// algebra in the root reactor package meets ordinary data.
package leaf

import (
	"sync"

	"github.com/aspenflow/reactor"
)

// Constant always reports a fixed value, complete from its very first tick.
func Constant[T any](value T) reactor.Reactor[T] {
	return &constantReactor[T]{value: value}
}

type constantReactor[T any] struct {
	value T
}

func (c *constantReactor[T]) Commit(int) reactor.State { return reactor.COMPLETE_EVALUATED }

func (c *constantReactor[T]) Eval() (T, error) { return c.value, nil }

// None never produces a value; it is complete and empty from its first
// tick. Eval always reports ErrNoEvaluation.
func None[T any]() reactor.Reactor[T] {
	return &noneReactor[T]{}
}

type noneReactor[T any] struct{}

func (n *noneReactor[T]) Commit(int) reactor.State { return reactor.COMPLETE_EMPTY }

func (n *noneReactor[T]) Eval() (T, error) {
	var zero T
	return zero, reactor.ErrNoEvaluation
}

// Throw evaluates exactly once, to a fault rather than a value: commit
// reports COMPLETE_EVALUATED immediately, and Eval always re-raises err.
func Throw[T any](err error) reactor.Reactor[T] {
	return &throwReactor[T]{err: err}
}

type throwReactor[T any] struct {
	err error
}

func (t *throwReactor[T]) Commit(int) reactor.State { return reactor.COMPLETE_EVALUATED }

func (t *throwReactor[T]) Eval() (T, error) {
	var zero T
	return zero, t.err
}

// Perpetual never evaluates and never completes; it exists purely to
// request a recommit every tick, the role Range's ticker plays and the
// role a YAML graph names explicitly when it wants a node kept alive
// without a value of its own.
func Perpetual() reactor.Reactor[struct{}] {
	return perpetualReactor{}
}

type perpetualReactor struct{}

func (perpetualReactor) Commit(int) reactor.State { return reactor.CONTINUE }

func (perpetualReactor) Eval() (struct{}, error) {
	var zero struct{}
	return zero, reactor.ErrNoEvaluation
}

// Queue is an externally-fed FIFO reactor: Push enqueues a value from
// outside the graph (a producer goroutine, a test, a driver callback), and
// each commit drains at most one queued value. Close marks the queue
// terminal once everything already pushed has drained.
type Queue[T any] struct {
	mu sync.Mutex

	items   []T
	closed  bool
	current T

	started       bool
	prevSequence  int
	done          bool
	hadEvaluation bool
	lastState     reactor.State
}

// NewQueue returns an empty, open queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{prevSequence: -1}
}

// Push enqueues v for the next commit(s) to drain. Safe to call from any
// goroutine; pushing after Close is a no-op since nothing will ever drain
// it.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, v)
}

// Close marks the queue terminal once its current contents are drained. No
// further pushes are accepted.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Commit drains at most one item per distinct sequence.
func (q *Queue[T]) Commit(sequence int) reactor.State {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started && (sequence == q.prevSequence || q.done) {
		return q.lastState
	}
	q.started = true
	q.prevSequence = sequence

	if len(q.items) > 0 {
		q.current = q.items[0]
		q.items = q.items[1:]
		q.hadEvaluation = true
		switch {
		case len(q.items) > 0:
			q.lastState = reactor.CONTINUE_EVALUATED
		case q.closed:
			q.done = true
			q.lastState = reactor.COMPLETE_EVALUATED
		default:
			q.lastState = reactor.EVALUATED
		}
		return q.lastState
	}

	if q.closed {
		q.done = true
		if q.hadEvaluation {
			q.lastState = reactor.COMPLETE
		} else {
			q.lastState = reactor.COMPLETE_EMPTY
		}
		return q.lastState
	}

	q.lastState = reactor.NONE
	return q.lastState
}

// Eval returns the value most recently drained.
func (q *Queue[T]) Eval() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.hadEvaluation {
		var zero T
		return zero, reactor.ErrNoEvaluation
	}
	return q.current, nil
}

// StateReactor wraps a plain value behind the Reactor contract without any
// variation over time: it evaluates once, on its first commit, then holds
// quiet (NONE) forever rather than completing — for a Lift argument that
// should participate in folding but never itself drive completion. (Range's
// completion-status mirrors are a separate type in the root package that
// evaluates every tick.)
type StateReactor[T any] struct {
	value T

	started       bool
	hadEvaluation bool
}

// NewStateReactor wraps value.
func NewStateReactor[T any](value T) *StateReactor[T] {
	return &StateReactor[T]{value: value}
}

func (s *StateReactor[T]) Commit(int) reactor.State {
	if !s.started {
		s.started = true
		s.hadEvaluation = true
		return reactor.EVALUATED
	}
	return reactor.NONE
}

func (s *StateReactor[T]) Eval() (T, error) {
	if !s.hadEvaluation {
		var zero T
		return zero, reactor.ErrNoEvaluation
	}
	return s.value, nil
}
