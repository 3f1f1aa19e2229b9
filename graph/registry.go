package graph

import (
	"sync"

	"github.com/aspenflow/reactor"
)

// Function is the shape a named lift function in a graph definition must
// have — the same type-erased shape reactor.LiftN takes internally,
// exposed here so Go code, reactor/script's Lua bridge, and reactor/wasm's
// module bridge can all register against one registry.
type Function func(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any]

// FunctionRegistry is a named set of Functions a Loader resolves "lift"
// nodes' "function" config field against. The YAML layer never invents
// computation itself, only wiring — every function a graph uses must
// already be registered before Load runs.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry returns an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Register adds fn under name, overwriting any previous registration.
func (r *FunctionRegistry) Register(name string, fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = fn
}

// Lookup returns the function registered under name.
func (r *FunctionRegistry) Lookup(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn, ok
}
