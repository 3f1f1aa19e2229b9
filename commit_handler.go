package reactor

// StaticCommitHandler commits a fixed tuple of children, in declaration
// order, and folds their states per §4.4:
//
//   - all children complete and empty  -> COMPLETE_EMPTY
//   - all children complete            -> COMPLETE, plus EVALUATED if any
//     child evaluated this tick
//   - otherwise                        -> OR the EVALUATED/CONTINUE bits
//     across children; EMPTY if every non-complete child is still empty,
//     NONE otherwise
type StaticCommitHandler struct {
	children []anyReactor
}

// anyReactor is the minimal type-erased surface StaticCommitHandler needs;
// Box satisfies it, and so does any Reactor[T] via boxing.
type anyReactor interface {
	Commit(sequence int) State
}

// NewStaticCommitHandler builds a handler over children, in the order they
// must be committed every tick.
func NewStaticCommitHandler(children ...anyReactor) *StaticCommitHandler {
	return &StaticCommitHandler{children: children}
}

// Transfer rebinds h to other's children — used after a copy or move when
// the owning combinator's arguments have moved to new storage but the
// handler's fold logic and identity should carry over unchanged.
func (h *StaticCommitHandler) Transfer(other *StaticCommitHandler) {
	h.children = other.children
}

// Commit runs every child in declaration order and folds their states.
func (h *StaticCommitHandler) Commit(sequence int) State {
	if len(h.children) == 0 {
		return COMPLETE_EMPTY
	}

	allComplete := true
	allCompleteEmpty := true
	allEmptyNonComplete := true
	var evaluated, cont State

	for _, c := range h.children {
		s := c.Commit(sequence)

		if IsComplete(s) {
			if !IsEmpty(s) {
				allCompleteEmpty = false
			}
		} else {
			allComplete = false
			allCompleteEmpty = false
			if !IsEmpty(s) {
				allEmptyNonComplete = false
			}
		}

		evaluated |= s & flagEvaluated
		cont |= s & flagContinue
	}

	if allComplete {
		if allCompleteEmpty {
			return COMPLETE_EMPTY | evaluated
		}
		return COMPLETE | evaluated
	}

	if allEmptyNonComplete {
		return EMPTY | evaluated | cont
	}
	return NONE | evaluated | cont
}
