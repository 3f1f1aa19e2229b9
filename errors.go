package reactor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the core. Wrapped at call sites with
// fmt.Errorf("%w: ...") so callers can errors.Is against them.
var (
	// ErrNoEvaluation is returned by Eval when the reactor has been
	// committed but has never reported an evaluation.
	ErrNoEvaluation = errors.New("reactor: eval called before any evaluation")

	// ErrNotCommitted is returned by Eval when the reactor has never been
	// committed.
	ErrNotCommitted = errors.New("reactor: eval called before any commit")
)

// ContractViolationError marks a programming error in how the Reactor
// contract was used (e.g. calling Get on a Maybe that was never constructed,
// or constructing an invalid FunctionEvaluation). The spec calls for
// implementations to "assert in debug builds"; Go has no such build mode,
// so these surface as panics that well-behaved callers never trigger.
type ContractViolationError struct {
	msg string
}

func (e *ContractViolationError) Error() string { return e.msg }

func errContractViolation(format string, args ...any) error {
	return &ContractViolationError{msg: fmt.Sprintf(format, args...)}
}
