// Package wasm hosts a compiled WebAssembly module as a lift node's
// function, so a graph can call out to a plugin written in any
// WASM-targeting language without the host process linking against it.
// Each module exchanges one JSON-encoded call per tick through its linear
// memory, the same request/response-over-shared-memory shape the pack's
// WASI plugin host uses for its own node calls.
package wasm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/aspenflow/reactor"
)

// callArg is one lift argument marshaled for a module to read: either a
// value or a deferred fault message, mirroring Maybe[any]'s two states.
type callArg struct {
	Value any    `json:"value,omitempty"`
	Fault string `json:"fault,omitempty"`
}

// callResult is what a module's reactor_tick must write back: the state
// this tick implies, plus a value when the state claims one.
type callResult struct {
	State string `json:"state"`
	Value any    `json:"value,omitempty"`
	Fault string `json:"fault,omitempty"`
}

// Module wraps one compiled, instantiated WASM module exporting
// reactor_tick, reactor_alloc, and (optionally) reactor_free.
type Module struct {
	mu sync.Mutex

	runtime wazero.Runtime
	module  api.Module

	tick  api.Function
	alloc api.Function
	free  api.Function
}

// Load compiles and instantiates a WASM module from wasmBytes with WASI
// support, matching the pack's wazero plugin host: one runtime per module,
// WASI instantiated before the module, start functions suppressed so the
// caller decides when to invoke it.
func Load(ctx context.Context, wasmBytes []byte) (*Module, error) {
	runtime := wazero.NewRuntime(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("wasm: instantiate WASI: %w", err)
	}

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("wasm: compile module: %w", err)
	}

	config := wazero.NewModuleConfig().WithStartFunctions()
	module, err := runtime.InstantiateModule(ctx, compiled, config)
	if err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("wasm: instantiate module: %w", err)
	}

	tick := module.ExportedFunction("reactor_tick")
	if tick == nil {
		module.Close(ctx)
		runtime.Close(ctx)
		return nil, fmt.Errorf("wasm: module does not export reactor_tick")
	}
	alloc := module.ExportedFunction("reactor_alloc")
	if alloc == nil {
		module.Close(ctx)
		runtime.Close(ctx)
		return nil, fmt.Errorf("wasm: module does not export reactor_alloc")
	}

	return &Module{
		runtime: runtime,
		module:  module,
		tick:    tick,
		alloc:   alloc,
		free:    module.ExportedFunction("reactor_free"),
	}, nil
}

// Close releases the module and its runtime.
func (m *Module) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.module != nil {
		m.module.Close(ctx)
	}
	if m.runtime != nil {
		return m.runtime.Close(ctx)
	}
	return nil
}

// Function adapts m into a lift function: marshal args to JSON, write them
// into the module's linear memory, call reactor_tick, and translate its
// JSON response into a FunctionEvaluation.
func (m *Module) Function(ctx context.Context) func(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
	return func(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
		m.mu.Lock()
		defer m.mu.Unlock()

		callArgs := make([]callArg, len(args))
		for i, a := range args {
			v, err := a.Get()
			if err != nil {
				callArgs[i] = callArg{Fault: err.Error()}
				continue
			}
			callArgs[i] = callArg{Value: v}
		}

		input, err := json.Marshal(callArgs)
		if err != nil {
			return reactor.FaultedResult[any](fmt.Errorf("wasm: marshal args: %w", err))
		}

		result, err := m.call(ctx, input)
		if err != nil {
			return reactor.FaultedResult[any](err)
		}

		var cr callResult
		if err := json.Unmarshal(result, &cr); err != nil {
			return reactor.FaultedResult[any](fmt.Errorf("wasm: unmarshal result: %w", err))
		}

		if cr.Fault != "" {
			return reactor.FaultedResult[any](fmt.Errorf("wasm: %s", cr.Fault))
		}

		switch cr.State {
		case "none", "":
			return reactor.NoResult[any]()
		case "evaluated":
			return reactor.EvaluatedResult[any](cr.Value)
		case "continue":
			return reactor.ResultWithState[any](cr.Value, reactor.CONTINUE)
		case "complete":
			return reactor.StateOnly[any](reactor.COMPLETE)
		default:
			return reactor.FaultedResult[any](fmt.Errorf("wasm: unrecognized result state %q", cr.State))
		}
	}
}

// call writes input to the module's memory, invokes reactor_tick, and
// reads back the result it wrote, freeing both buffers when the module
// exports reactor_free.
func (m *Module) call(ctx context.Context, input []byte) ([]byte, error) {
	memory := m.module.ExportedMemory("memory")
	if memory == nil {
		return nil, fmt.Errorf("wasm: module does not export memory")
	}

	inputLen := uint32(len(input))
	allocResult, err := m.alloc.Call(ctx, uint64(inputLen))
	if err != nil {
		return nil, fmt.Errorf("wasm: alloc: %w", err)
	}
	inputPtr := uint32(allocResult[0])

	if !memory.Write(inputPtr, input) {
		return nil, fmt.Errorf("wasm: write input to memory")
	}

	tickResult, err := m.tick.Call(ctx, uint64(inputPtr), uint64(inputLen))
	if err != nil {
		return nil, fmt.Errorf("wasm: reactor_tick: %w", err)
	}
	if m.free != nil {
		m.free.Call(ctx, uint64(inputPtr), uint64(inputLen))
	}

	resultPtr := uint32(tickResult[0])
	resultLen := uint32(tickResult[1])
	if resultLen == 0 {
		return []byte(`{"state":"none"}`), nil
	}

	output, ok := memory.Read(resultPtr, resultLen)
	if !ok {
		return nil, fmt.Errorf("wasm: read result from memory")
	}
	result := append([]byte(nil), output...)

	if m.free != nil {
		m.free.Call(ctx, uint64(resultPtr), uint64(resultLen))
	}

	return result, nil
}
