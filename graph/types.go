// Package graph builds reactor graphs from a declarative YAML definition:
// a named set of nodes (constant, none, throw, perpetual, queue, lift,
// chain, until, first, range) and their wiring. A Loader parses the
// definition, validates each node's config against a per-type JSON Schema,
// and wires a Reactor[any] tree whose lift nodes call into a
// FunctionRegistry rather than inventing computation of their own — the
// YAML layer only describes structure.
package graph

// Definition is a complete named graph: its nodes and the one designated
// root.
type Definition struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Version     string           `yaml:"version,omitempty"`
	Root        string           `yaml:"root"`
	Nodes       []NodeDefinition `yaml:"nodes"`
}

// NodeDefinition describes one node: its name, its type (one of the
// built-in kinds below), its children (by name, in declaration order — the
// order a lift node's StaticCommitHandler will commit them in), and a
// free-form config map validated against that type's JSON Schema before
// construction.
type NodeDefinition struct {
	Name     string                 `yaml:"name"`
	Type     string                 `yaml:"type"`
	Children []string               `yaml:"children,omitempty"`
	Config   map[string]interface{} `yaml:"config,omitempty"`
}

// The node type names a Definition's nodes may use.
const (
	TypeConstant  = "constant"
	TypeNone      = "none"
	TypeThrow     = "throw"
	TypePerpetual = "perpetual"
	TypeQueue     = "queue"
	TypeLift      = "lift"
	TypeChain     = "chain"
	TypeUntil     = "until"
	TypeFirst     = "first"
	TypeRange     = "range"
)

// Validate checks structural well-formedness: every node has a name and a
// known type, names are unique, every referenced child exists, and root
// names a node actually present. It does not validate per-node config —
// that is validateConfig's job, run separately by the Loader so a config error
// and a wiring error are reported distinctly.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errMissingField("name")
	}
	if d.Root == "" {
		return errMissingField("root")
	}
	if len(d.Nodes) == 0 {
		return errNoNodes()
	}

	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Name == "" {
			return errMissingField("nodes[].name")
		}
		if seen[n.Name] {
			return errDuplicateNode(n.Name)
		}
		seen[n.Name] = true
		if !isKnownType(n.Type) {
			return errUnknownType(n.Name, n.Type)
		}
	}

	for _, n := range d.Nodes {
		for _, child := range n.Children {
			if !seen[child] {
				return errUnknownChild(n.Name, child)
			}
		}
	}

	if !seen[d.Root] {
		return errUnknownChild("<root>", d.Root)
	}

	return nil
}

func isKnownType(t string) bool {
	switch t {
	case TypeConstant, TypeNone, TypeThrow, TypePerpetual, TypeQueue,
		TypeLift, TypeChain, TypeUntil, TypeFirst, TypeRange:
		return true
	default:
		return false
	}
}
