// Package query lets external tooling inspect a reactor tree's last
// committed values by JSON path, the same expression language the pack
// uses for its own JSONPath extraction node, rather than reading each
// reactor through Go code.
package query

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Snapshot is a plain-data capture of a reactor tree's last tick, shaped
// however the caller builds it — the paths used throughout this package
// assume a "nodes" map from each node's name to a map holding its "value"
// (nil if it hadn't evaluated). A
// caller builds one explicitly — the root reactor package has no built-in
// name-to-node map, since names are a graph-layer (§4.12) concept, not a
// core one — typically from a graph.Definition's node names paired with
// each node's last reactor.Eval() result.
type Snapshot map[string]any

// Expression is a parsed JSON path, reusable across many Query calls
// against different snapshots.
type Expression struct {
	expr jp.Expr
}

// Parse compiles a JSONPath expression (e.g. "$.nodes.sum.value" or
// "$.nodes.*.value") once, surfacing a syntax error immediately rather
// than on first use.
func Parse(path string) (*Expression, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("query: parse %q: %w", path, err)
	}
	return &Expression{expr: expr}, nil
}

// Get evaluates e against snap, returning every match. A path that selects
// nothing returns an empty (not nil) slice.
func (e *Expression) Get(snap Snapshot) []any {
	results := e.expr.Get(map[string]any(snap))
	if results == nil {
		return []any{}
	}
	return results
}

// First evaluates e against snap and returns its first match, or
// (nil, false) if there were none.
func (e *Expression) First(snap Snapshot) (any, bool) {
	results := e.Get(snap)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// Get is a one-shot convenience over Parse+Get for callers that don't need
// to reuse the compiled expression (a CLI flag evaluated once, a one-off
// debugging query).
func Get(snap Snapshot, path string) ([]any, error) {
	e, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return e.Get(snap), nil
}
