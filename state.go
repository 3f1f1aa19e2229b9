package reactor

import "fmt"

// State is the outcome of a single commit. It is a bitwise union of three
// orthogonal flags (evaluated, complete, continue) plus a fourth flag,
// empty, that distinguishes "has never produced" from "quiet this tick".
type State uint8

const (
	flagEvaluated State = 1 << iota
	flagComplete
	flagContinue
	flagEmpty
)

// The eight states named in the specification. EMPTY and NONE both carry no
// other flags; EMPTY additionally carries flagEmpty to mark "never produced,
// may still produce" while NONE marks "ran at least once, quiet this tick".
const (
	NONE               State = 0
	EMPTY              State = flagEmpty
	EVALUATED          State = flagEvaluated
	COMPLETE           State = flagComplete
	COMPLETE_EVALUATED State = flagComplete | flagEvaluated
	COMPLETE_EMPTY     State = flagComplete | flagEmpty
	CONTINUE           State = flagContinue
	CONTINUE_EVALUATED State = flagContinue | flagEvaluated
)

// HasEvaluation reports whether s carries a value produced this tick.
func HasEvaluation(s State) bool {
	return s&flagEvaluated != 0
}

// IsComplete reports whether s is terminal.
func IsComplete(s State) bool {
	return s&flagComplete != 0
}

// HasContinuation reports whether s requests an immediate recommit.
func HasContinuation(s State) bool {
	return s&flagContinue != 0
}

// IsEmpty reports whether s has never produced a value.
func IsEmpty(s State) bool {
	return s&flagEmpty != 0
}

// Combine folds two states together: the evaluated, complete and continue
// predicates of the result are the union of those of a and b, except
// completion dominates continuation (a complete-and-continuing fold resolves
// to complete, never to a state that is simultaneously complete and
// requesting a recommit). The result is empty only when both a and b are
// empty and neither evaluated.
func Combine(a, b State) State {
	evaluated := a&flagEvaluated | b&flagEvaluated
	complete := a&flagComplete | b&flagComplete
	cont := a&flagContinue | b&flagContinue
	empty := (a & flagEmpty) & (b & flagEmpty)

	if complete != 0 {
		cont = 0
	}
	if evaluated != 0 {
		empty = 0
	}

	return evaluated | complete | cont | empty
}

// String renders s using the canonical spec names, for logging and test
// failure messages.
func (s State) String() string {
	switch s {
	case NONE:
		return "NONE"
	case EMPTY:
		return "EMPTY"
	case EVALUATED:
		return "EVALUATED"
	case COMPLETE:
		return "COMPLETE"
	case COMPLETE_EVALUATED:
		return "COMPLETE_EVALUATED"
	case COMPLETE_EMPTY:
		return "COMPLETE_EMPTY"
	case CONTINUE:
		return "CONTINUE"
	case CONTINUE_EVALUATED:
		return "CONTINUE_EVALUATED"
	default:
		return fmt.Sprintf("State(%#02x)", uint8(s))
	}
}
