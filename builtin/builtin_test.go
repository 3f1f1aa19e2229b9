package builtin_test

import (
	"testing"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/builtin"
	"github.com/aspenflow/reactor/graph"
)

func call(t *testing.T, functions *graph.FunctionRegistry, name string, args ...any) reactor.FunctionEvaluation[any] {
	t.Helper()
	fn, ok := functions.Lookup(name)
	if !ok {
		t.Fatalf("function %q not registered", name)
	}
	maybes := make([]reactor.Maybe[any], len(args))
	for i, a := range args {
		maybes[i] = reactor.Value[any](a)
	}
	return fn(maybes)
}

func TestAdd(t *testing.T) {
	functions := graph.NewFunctionRegistry()
	builtin.RegisterAll(functions)

	fe := call(t, functions, "add", 2, 3)
	v, err := fe.Value().Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.(float64) != 5 {
		t.Fatalf("v = %v, want 5", v)
	}
}

func TestDivideByZeroFaults(t *testing.T) {
	functions := graph.NewFunctionRegistry()
	builtin.RegisterAll(functions)

	fe := call(t, functions, "divide", 1, 0)
	if _, err := fe.Value().Get(); err == nil {
		t.Fatal("expected a divide-by-zero fault")
	}
}

func TestConcat(t *testing.T) {
	functions := graph.NewFunctionRegistry()
	builtin.RegisterAll(functions)

	fe := call(t, functions, "concat", "foo", "bar")
	v, err := fe.Value().Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.(string) != "foobar" {
		t.Fatalf("v = %v, want foobar", v)
	}
}

func TestUpperRejectsNonString(t *testing.T) {
	functions := graph.NewFunctionRegistry()
	builtin.RegisterAll(functions)

	fe := call(t, functions, "upper", 5)
	if _, err := fe.Value().Get(); err == nil {
		t.Fatal("expected a type error")
	}
}
