package reactor

// tickerReactor is Range's perpetual driver: it never evaluates and never
// completes, existing only to contribute a standing CONTINUE bit that
// keeps a Range ticking once its function itself has asked to keep
// running (§4.9's "plus a perpetual ticker").
type tickerReactor struct{}

func (tickerReactor) Commit(int) State { return CONTINUE }

func (tickerReactor) Eval() (struct{}, error) {
	var zero struct{}
	return zero, ErrNoEvaluation
}

// stateMirror wraps r and reports, as its own evaluated bool value, whether
// r's last commit was complete. It shares r's memoization (it commits the
// same r, so a second commit of r at the same sequence elsewhere in the
// same tick is a cache hit, not a re-advance) and always evaluates,
// guaranteeing the owning Lift's has_evaluation(child_state) is true every
// tick — exactly what Range's function needs both to read completion and
// to be invoked every tick regardless of whether r itself produced
// anything new.
type stateMirror[T any] struct {
	r    Reactor[T]
	last State
}

func newStateMirror[T any](r Reactor[T]) *stateMirror[T] {
	return &stateMirror[T]{r: r}
}

func (m *stateMirror[T]) Commit(sequence int) State {
	m.last = m.r.Commit(sequence)
	return EVALUATED
}

func (m *stateMirror[T]) Eval() (bool, error) {
	return IsComplete(m.last), nil
}

// Range produces start, start+step, start+2*step, … while the value stays
// strictly less than stop. If an increment would not strictly exceed the
// previously emitted value (start raised mid-flight), the emitted value is
// max(start, previous+step). Range completes the tick it emits its last
// in-range value once start and stop are themselves both complete and the
// next candidate would reach or exceed stop. A tick whose candidate already
// reaches stop emits nothing; it completes (COMPLETE_EMPTY if Range never
// emitted a value) when start and stop are both complete, and reports
// CONTINUE otherwise.
func Range(start, stop, step Reactor[int]) Reactor[int] {
	var previous int
	var havePrevious bool

	startMirror := newStateMirror[int](start)
	stopMirror := newStateMirror[int](stop)

	fn := func(args []Maybe[any]) FunctionEvaluation[int] {
		sv, err := maybeAs[int](args[0]).Get()
		if err != nil {
			return FaultedResult[int](err)
		}
		tv, err := maybeAs[int](args[1]).Get()
		if err != nil {
			return FaultedResult[int](err)
		}
		pv, err := maybeAs[int](args[2]).Get()
		if err != nil {
			return FaultedResult[int](err)
		}
		startComplete, _ := maybeAs[bool](args[3]).Get()
		stopComplete, _ := maybeAs[bool](args[4]).Get()

		candidate := sv
		if havePrevious {
			candidate = previous + pv
			if sv > candidate {
				candidate = sv
			}
		}

		if candidate >= tv {
			if startComplete && stopComplete {
				return StateOnly[int](COMPLETE)
			}
			return NoResult[int]()
		}

		previous = candidate
		havePrevious = true

		next := candidate + pv
		if sv > next {
			next = sv
		}
		if startComplete && stopComplete && next >= tv {
			return ResultWithState(candidate, COMPLETE)
		}
		return ResultWithState(candidate, CONTINUE)
	}

	return LiftN[int]("range", fn,
		NewBox(start), NewBox(stop), NewBox(step),
		NewBox[bool](startMirror), NewBox[bool](stopMirror),
		NewBox[struct{}](tickerReactor{}),
	)
}
