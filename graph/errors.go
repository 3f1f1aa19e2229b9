package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors, matching the teacher's package-prefixed sentinel style.
var (
	ErrInvalidDefinition = errors.New("graph: invalid definition")
	ErrUnknownFunction   = errors.New("graph: unknown function")
)

func errMissingField(field string) error {
	return fmt.Errorf("%w: missing %s", ErrInvalidDefinition, field)
}

func errNoNodes() error {
	return fmt.Errorf("%w: at least one node is required", ErrInvalidDefinition)
}

func errDuplicateNode(name string) error {
	return fmt.Errorf("%w: duplicate node %q", ErrInvalidDefinition, name)
}

func errUnknownType(name, nodeType string) error {
	return fmt.Errorf("%w: node %q has unknown type %q", ErrInvalidDefinition, name, nodeType)
}

func errUnknownChild(name, child string) error {
	return fmt.Errorf("%w: node %q references unknown child %q", ErrInvalidDefinition, name, child)
}
