package graph

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/leaf"
)

// Loader parses and validates a Definition, then builds the Reactor[any]
// tree it describes.
type Loader struct {
	functions *FunctionRegistry
}

// NewLoader returns a Loader that resolves "lift" nodes' functions against
// functions.
func NewLoader(functions *FunctionRegistry) *Loader {
	return &Loader{functions: functions}
}

// Parse unmarshals a YAML document into a Definition without building or
// validating it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("graph: parse: %w", err)
	}
	return &def, nil
}

// Load parses, validates, and builds data into a Reactor[any] rooted at
// the definition's named root node.
func (l *Loader) Load(data []byte) (reactor.Reactor[any], error) {
	def, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return l.Build(def)
}

// Build validates def (structurally and per-node config) and constructs
// its Reactor[any] tree.
func (l *Loader) Build(def *Definition) (reactor.Reactor[any], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	byName := make(map[string]NodeDefinition, len(def.Nodes))
	for _, n := range def.Nodes {
		if err := validateConfig(n); err != nil {
			return nil, err
		}
		byName[n.Name] = n
	}

	b := &builder{defs: byName, built: make(map[string]reactor.Reactor[any]), functions: l.functions}
	root, err := b.resolve(def.Root, nil)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// builder resolves node names to built reactors, memoizing each (a node
// referenced as a child by more than one parent is built once and shared)
// and detecting cycles via the in-progress stack.
type builder struct {
	defs      map[string]NodeDefinition
	built     map[string]reactor.Reactor[any]
	functions *FunctionRegistry
}

func (b *builder) resolve(name string, stack []string) (reactor.Reactor[any], error) {
	if r, ok := b.built[name]; ok {
		return r, nil
	}
	for _, s := range stack {
		if s == name {
			return nil, fmt.Errorf("graph: cycle detected at node %q", name)
		}
	}
	stack = append(stack, name)

	def := b.defs[name]
	children := make([]reactor.Reactor[any], len(def.Children))
	for i, c := range def.Children {
		child, err := b.resolve(c, stack)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	r, err := b.build(def, children)
	if err != nil {
		return nil, err
	}
	b.built[name] = r
	return r, nil
}

func (b *builder) build(def NodeDefinition, children []reactor.Reactor[any]) (reactor.Reactor[any], error) {
	switch def.Type {
	case TypeConstant:
		return leaf.Constant[any](yamlInt(def.Config["value"])), nil

	case TypeNone:
		return leaf.None[any](), nil

	case TypeThrow:
		msg, _ := def.Config["message"].(string)
		return leaf.Throw[any](fmt.Errorf("graph: %s", msg)), nil

	case TypePerpetual:
		return anyAdapter{inner: leaf.Perpetual()}, nil

	case TypeQueue:
		q := leaf.NewQueue[any]()
		if items, ok := def.Config["items"].([]interface{}); ok {
			for _, item := range items {
				q.Push(yamlInt(item))
			}
		}
		if closed, ok := def.Config["closed"].(bool); ok && closed {
			q.Close()
		}
		return q, nil

	case TypeLift:
		name, _ := def.Config["function"].(string)
		fn, ok := b.functions.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (node %q)", ErrUnknownFunction, name, def.Name)
		}
		// fn is graph.Function, a named type; LiftN's fn parameter is an
		// unexported named type with the same underlying shape, so the
		// call must pass an unnamed func literal rather than fn itself.
		return reactor.LiftN[any](def.Name, func(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
			return fn(args)
		}, children...), nil

	case TypeChain:
		a, b2 := b.childByRole(def, "a", children), b.childByRole(def, "b", children)
		return reactor.Chain[any](a, b2), nil

	case TypeUntil:
		cond := b.childByRole(def, "cond", children)
		series := b.childByRole(def, "series", children)
		field, _ := def.Config["truthy_field"].(string)
		return reactor.Until[any, any](cond, truthyOf(field), series), nil

	case TypeFirst:
		child := b.childByRole(def, "child", children)
		return reactor.First[any](child), nil

	case TypeRange:
		start := b.childByRole(def, "start", children)
		stop := b.childByRole(def, "stop", children)
		step := b.childByRole(def, "step", children)
		return anyRange(start, stop, step), nil

	default:
		return nil, fmt.Errorf("graph: node %q has unbuildable type %q", def.Name, def.Type)
	}
}

// yamlInt converts an integer the YAML decoder produced as uint64 or int64
// to int, the integer type lift functions and Range's adapter assert
// against; any other value is returned unchanged.
func yamlInt(v any) any {
	switch n := v.(type) {
	case uint64:
		return int(n)
	case int64:
		return int(n)
	}
	return v
}

// childByRole resolves a named-role config field (e.g. "a", "series") to
// the already-built child at that position in def.Children.
func (b *builder) childByRole(def NodeDefinition, role string, children []reactor.Reactor[any]) reactor.Reactor[any] {
	name, _ := def.Config[role].(string)
	for i, c := range def.Children {
		if c == name {
			return children[i]
		}
	}
	return nil
}

// truthyOf returns the Until predicate for a "truthy_field" config value:
// empty means the condition's own value is the bool; non-empty names a key
// to read out of a map[string]any value.
func truthyOf(field string) func(any) bool {
	if field == "" {
		return func(v any) bool {
			b, _ := v.(bool)
			return b
		}
	}
	return func(v any) bool {
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		b, _ := m[field].(bool)
		return b
	}
}

// anyAdapter widens a Reactor[struct{}] (Perpetual) to Reactor[any] so it
// composes with the rest of a type-erased graph.
type anyAdapter struct {
	inner reactor.Reactor[struct{}]
}

func (a anyAdapter) Commit(sequence int) reactor.State { return a.inner.Commit(sequence) }

func (a anyAdapter) Eval() (any, error) {
	v, err := a.inner.Eval()
	return v, err
}

// anyRange adapts Range's int-typed reactors to the any-typed tree a YAML
// graph builds, asserting each child's evaluated value to int.
func anyRange(start, stop, step reactor.Reactor[any]) reactor.Reactor[any] {
	toInt := func(r reactor.Reactor[any]) reactor.Reactor[int] { return intAdapter{inner: r} }
	return widenInt(reactor.Range(toInt(start), toInt(stop), toInt(step)))
}

type intAdapter struct {
	inner reactor.Reactor[any]
}

func (a intAdapter) Commit(sequence int) reactor.State { return a.inner.Commit(sequence) }

func (a intAdapter) Eval() (int, error) {
	v, err := a.inner.Eval()
	if err != nil {
		return 0, err
	}
	n, _ := v.(int)
	return n, nil
}

type widenIntAdapter struct {
	inner reactor.Reactor[int]
}

func widenInt(r reactor.Reactor[int]) reactor.Reactor[any] {
	return widenIntAdapter{inner: r}
}

func (a widenIntAdapter) Commit(sequence int) reactor.State { return a.inner.Commit(sequence) }

func (a widenIntAdapter) Eval() (any, error) {
	v, err := a.inner.Eval()
	return v, err
}
