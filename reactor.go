package reactor

// Reactor is the uniform contract every node in a dataflow graph satisfies.
// Commit must be memoized per sequence number: calling it twice with the
// same sequence returns the previously computed state without re-entering
// child commits, and calling it after reaching a complete state returns
// that state unchanged. Eval returns the value produced by the most recent
// evaluated commit, which may be earlier than the last commit.
type Reactor[T any] interface {
	// Commit advances the reactor to sequence and returns its resulting
	// State.
	Commit(sequence int) State

	// Eval returns the value produced by the most recent commit that
	// carried an evaluation, or an error if no commit has evaluated yet.
	Eval() (T, error)
}

// base implements the memoization half of the Reactor contract (§4.3):
// idempotence within a sequence, and freezing once complete. Combinators
// embed base and only need to implement the actual tick logic.
type base struct {
	prevSequence int
	started      bool
	state        State
}

const noSequence = -1

func newBase() base {
	return base{prevSequence: noSequence, state: NONE}
}

// commitOnce runs advance exactly once per effective sequence, honoring
// memoization and completion-freezing. advance is only called when this
// tick genuinely needs to run tick logic.
func (b *base) commitOnce(sequence int, advance func() State) State {
	if b.started && (sequence == b.prevSequence || IsComplete(b.state)) {
		return b.state
	}
	b.started = true
	b.state = advance()
	b.prevSequence = sequence
	return b.state
}

// lastState returns the state most recently computed, NONE before the
// first commit.
func (b *base) lastState() State {
	return b.state
}
