package reactor

// liftFunc is the type-erased shape every Lift arity wrapper reduces to: a
// function taking one Maybe[any] per child argument (already
// fault-guarded) and returning a FunctionEvaluation[T]. Only the arity
// wrappers (Lift0..Lift4 in lift_arity.go, and LiftN below) are
// arity-specific; the engine itself is written once.
type liftFunc[T any] func(args []Maybe[any]) FunctionEvaluation[T]

// lift is the core combinator described in §4.5. It is unexported; callers
// build one through LiftN or one of the fixed-arity convenience wrappers,
// which handle boxing typed children into the []anyEvaluator this engine
// operates over.
type lift[T any] struct {
	base

	name     string
	fn       liftFunc[T]
	children []anyEvaluator
	handler  *StaticCommitHandler

	value           Maybe[T]
	hasContinuation bool
	hadEvaluation   bool
}

// anyEvaluator is what lift needs from a (boxed) child: commit it, and read
// its evaluation guarded against a faulting Eval.
type anyEvaluator interface {
	Commit(sequence int) State
	evalAny() Maybe[any]
}

// LiftN builds an N-ary Lift from already-boxed children and a type-erased
// function. It is the single generic engine every typed LiftK wrapper in
// lift_arity.go delegates to.
func LiftN[T any](name string, fn liftFunc[T], children ...Reactor[any]) Reactor[T] {
	boxed := make([]anyEvaluator, len(children))
	erased := make([]anyReactor, len(children))
	for i, c := range children {
		b := newAnyBox(c)
		boxed[i] = b
		erased[i] = b
	}

	l := &lift[T]{
		base:     newBase(),
		name:     name,
		fn:       fn,
		children: boxed,
	}
	if len(children) > 0 {
		l.handler = NewStaticCommitHandler(erased...)
	}
	return l
}

// Commit runs the algorithm in §4.5.1. Zero-argument lifts take the
// specialization in §4.5.2.
func (l *lift[T]) Commit(sequence int) State {
	return l.commitOnce(sequence, func() State {
		if l.handler == nil {
			return l.commitZeroArg()
		}
		return l.commitWithChildren(sequence)
	})
}

// commitZeroArg implements §4.5.2: invoke the function exactly once: the
// first call to commitOnce's advance closure IS that one invocation, since
// commitOnce freezes state (and never calls advance again) as soon as it
// reports complete, which a zero-arg Lift always does immediately.
func (l *lift[T]) commitZeroArg() (state State) {
	defer func() {
		if r := recover(); r != nil {
			l.value = Failed[T](panicToError(r))
			l.hadEvaluation = true
			state = COMPLETE_EVALUATED
		}
	}()

	fe := collapseIfVoid(l.fn(nil))
	if fe.HasValue() {
		l.value = fe.Value()
		l.hadEvaluation = true
		return COMPLETE_EVALUATED
	}
	return COMPLETE_EMPTY
}

func (l *lift[T]) commitWithChildren(sequence int) State {
	childState := l.handler.Commit(sequence)

	invoke := HasEvaluation(childState) ||
		l.hasContinuation ||
		(IsComplete(childState) && !IsEmpty(childState))

	if !invoke {
		return childState
	}

	l.hasContinuation = false
	invocationState := l.invoke()

	switch {
	case invocationState == NONE:
		if IsComplete(childState) {
			if l.hadEvaluation {
				return COMPLETE
			}
			return COMPLETE_EMPTY
		}
		if HasContinuation(childState) {
			return CONTINUE
		}
		return NONE

	case IsComplete(invocationState):
		if HasEvaluation(invocationState) {
			return COMPLETE_EVALUATED
		}
		if l.hadEvaluation {
			return COMPLETE
		}
		return COMPLETE_EMPTY

	default:
		state := invocationState
		l.hasContinuation = HasContinuation(invocationState)
		if HasContinuation(childState) {
			state = Combine(state, CONTINUE)
		} else if IsComplete(childState) && !l.hasContinuation {
			state = Combine(state, COMPLETE)
		}
		return state
	}
}

// invoke calls the user function with each child's guarded evaluation,
// captures a panicking function's fault into the Lift's own value, and
// folds the had-evaluation flag.
func (l *lift[T]) invoke() (invocationState State) {
	args := make([]Maybe[any], len(l.children))
	for i, c := range l.children {
		args[i] = c.evalAny()
	}

	defer func() {
		if r := recover(); r != nil {
			l.value = Failed[T](panicToError(r))
			l.hadEvaluation = true
			invocationState = EVALUATED
		}
	}()

	fe := collapseIfVoid(l.fn(args))
	if fe.HasValue() {
		l.value = fe.Value()
	}
	invocationState = fe.State()
	if HasEvaluation(invocationState) {
		l.hadEvaluation = true
	}
	return invocationState
}

// Eval returns the value produced by the most recent evaluation. A Lift
// that has completed without ever evaluating again after its last value
// (state COMPLETE rather than COMPLETE_EVALUATED) still yields that sticky
// last value; only a Lift that has never evaluated at all refuses.
func (l *lift[T]) Eval() (T, error) {
	if !l.hadEvaluation {
		var zero T
		if !l.started {
			return zero, ErrNotCommitted
		}
		return zero, ErrNoEvaluation
	}
	return l.value.Get()
}

// Name returns the label the Lift was constructed with, used by
// reactor/graph and reactor/query to identify nodes in a snapshot tree.
func (l *lift[T]) Name() string {
	return l.name
}
