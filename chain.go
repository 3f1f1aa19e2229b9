package reactor

// chainPhase tracks which half of a Chain is driving ticks.
type chainPhase int

const (
	chainPhaseA chainPhase = iota
	chainPhaseTransition
	chainPhaseB
)

// chain implements §4.6: evaluate A until it completes, then switch to B.
type chain[T any] struct {
	base

	a, b Reactor[T]

	phase         chainPhase
	value         Maybe[T]
	hadEvaluation bool
}

// Chain evaluates a until it completes, then switches to b. If a completes
// having evaluated, that terminal evaluation is reported as a plain
// EVALUATED tick (not COMPLETE_EVALUATED) and b starts on the following
// tick; if a completes empty, b starts the same tick.
func Chain[T any](a, b Reactor[T]) Reactor[T] {
	return &chain[T]{base: newBase(), a: a, b: b}
}

func (c *chain[T]) Commit(sequence int) State {
	return c.commitOnce(sequence, func() State {
		switch c.phase {
		case chainPhaseA:
			return c.tickA(sequence)
		case chainPhaseTransition:
			c.phase = chainPhaseB
			return c.tickB(sequence)
		default:
			return c.tickB(sequence)
		}
	})
}

func (c *chain[T]) tickA(sequence int) State {
	aState := c.a.Commit(sequence)

	if HasEvaluation(aState) {
		if v, err := c.a.Eval(); err == nil {
			c.value = Value(v)
		} else {
			c.value = Failed[T](err)
		}
		c.hadEvaluation = true

		if IsComplete(aState) {
			// A's terminal tick carried an evaluation: report it as a
			// plain evaluation now, switch to B on the next tick.
			c.phase = chainPhaseTransition
			return EVALUATED
		}
		return aState
	}

	if !IsComplete(aState) {
		return aState
	}

	// A finished without a new evaluation this tick (whether or not it
	// ever produced one earlier): B starts this same tick.
	c.phase = chainPhaseB
	return c.tickB(sequence)
}

func (c *chain[T]) tickB(sequence int) State {
	bState := c.b.Commit(sequence)

	if HasEvaluation(bState) {
		if v, err := c.b.Eval(); err == nil {
			c.value = Value(v)
		} else {
			c.value = Failed[T](err)
		}
		c.hadEvaluation = true
	}

	if IsComplete(bState) && !HasEvaluation(bState) {
		if c.hadEvaluation {
			return COMPLETE
		}
		return COMPLETE_EMPTY
	}
	return bState
}

// Eval returns the last value produced by whichever child produced it.
func (c *chain[T]) Eval() (T, error) {
	if !c.hadEvaluation {
		var zero T
		if !c.started {
			return zero, ErrNotCommitted
		}
		return zero, ErrNoEvaluation
	}
	return c.value.Get()
}
