// Package builtin registers a small set of ready-made functions into a
// graph.FunctionRegistry — arithmetic and string operations common enough
// that a YAML graph shouldn't need a Lua script or a WASM module just to
// add two numbers, mirroring the pack's own RegisterAll convention of
// seeding a registry with a standard node set before a user's graph loads.
package builtin

import (
	"fmt"
	"strings"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/graph"
)

// RegisterAll adds every built-in function to functions, overwriting any
// prior registration under the same name.
func RegisterAll(functions *graph.FunctionRegistry) {
	functions.Register("add", numeric(func(a, b float64) float64 { return a + b }))
	functions.Register("subtract", numeric(func(a, b float64) float64 { return a - b }))
	functions.Register("multiply", numeric(func(a, b float64) float64 { return a * b }))
	functions.Register("divide", divide)
	functions.Register("concat", concat)
	functions.Register("upper", upper)
	functions.Register("lower", lower)
}

// numeric builds a two-argument function over float64 operands, faulting
// if either argument is missing or not a number.
func numeric(op func(a, b float64) float64) graph.Function {
	return func(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
		a, b, err := numericArgs(args)
		if err != nil {
			return reactor.FaultedResult[any](err)
		}
		return reactor.EvaluatedResult[any](op(a, b))
	}
}

func divide(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
	a, b, err := numericArgs(args)
	if err != nil {
		return reactor.FaultedResult[any](err)
	}
	if b == 0 {
		return reactor.FaultedResult[any](fmt.Errorf("builtin: divide by zero"))
	}
	return reactor.EvaluatedResult[any](a / b)
}

func concat(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
	var sb strings.Builder
	for _, a := range args {
		v, err := a.Get()
		if err != nil {
			return reactor.FaultedResult[any](err)
		}
		fmt.Fprintf(&sb, "%v", v)
	}
	return reactor.EvaluatedResult[any](sb.String())
}

func upper(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
	s, err := stringArg(args, 0)
	if err != nil {
		return reactor.FaultedResult[any](err)
	}
	return reactor.EvaluatedResult[any](strings.ToUpper(s))
}

func lower(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
	s, err := stringArg(args, 0)
	if err != nil {
		return reactor.FaultedResult[any](err)
	}
	return reactor.EvaluatedResult[any](strings.ToLower(s))
}

func numericArgs(args []reactor.Maybe[any]) (float64, float64, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("builtin: expected 2 arguments, got %d", len(args))
	}
	a, err := numberOf(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := numberOf(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func numberOf(m reactor.Maybe[any]) (float64, error) {
	v, err := m.Get()
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("builtin: value %v is not a number", v)
	}
}

func stringArg(args []reactor.Maybe[any], i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("builtin: expected argument %d", i)
	}
	v, err := args[i].Get()
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("builtin: value %v is not a string", v)
	}
	return s, nil
}
