// Package script runs a lift node's function as a sandboxed Lua script
// instead of compiled Go, so a graph definition can carry its computation
// inline (or loaded from a file) without a Go build step. Each invocation
// gets a fresh interpreter state restricted to a safe standard-library
// subset — no filesystem, process, or dynamic-load access — matching the
// sandbox the pack's Lua node manager builds for the same reason.
package script

import (
	"encoding/json"
	"fmt"

	lua "github.com/Shopify/go-lua"

	"github.com/aspenflow/reactor"
)

// Script is a parsed, ready-to-run Lua source. Parse validates the source
// loads cleanly (a syntax error surfaces at Parse rather than on first
// tick) but does not execute top-level code until Function is called.
type Script struct {
	source string
}

// Parse checks that source loads as a valid Lua chunk.
func Parse(source string) (*Script, error) {
	l := lua.NewState()
	if err := lua.LoadString(l, source); err != nil {
		return nil, fmt.Errorf("script: parse: %w", err)
	}
	return &Script{source: source}, nil
}

// Function adapts s into the shape a graph.Function (or any LiftN fn) can
// call: it runs s fresh in a new sandboxed state on every invocation,
// exposes the lift's arguments as a Lua global table named "args" (1-based,
// a fault argument surfaces as a Lua table {fault = "<message>"}), and reads
// the result from a top-level "exec(args)" function if the script defines
// one, falling back to whatever value top-level execution left on the
// stack. Either source reports its result through the same envelope
// pullEvaluation understands, mirroring the {state, value, fault} contract
// reactor/wasm's compiled modules answer through linear memory: a script
// can return a bare value (an implicit EvaluatedResult), nil (NoResult), or
// a table naming "state" as "continue"/"complete" to drive a Lift's
// continuation or completion directly, something the teacher's Lua
// integration never let a script do — pocket's manager.ExecuteLuaScript
// only ever reads a script's return value, never its control state.
func (s *Script) Function(args []reactor.Maybe[any]) reactor.FunctionEvaluation[any] {
	l := lua.NewState()
	setupSandbox(l)

	pushArgsTable(l, args)
	l.SetGlobal("args")

	if err := lua.DoString(l, s.source); err != nil {
		return reactor.FaultedResult[any](fmt.Errorf("script: %w", err))
	}

	l.Global("exec")
	if l.TypeOf(-1) == lua.TypeFunction {
		pushArgsTable(l, args)
		if err := l.ProtectedCall(1, 1, 0); err != nil {
			return reactor.FaultedResult[any](fmt.Errorf("script: exec: %w", err))
		}
		fe := pullEvaluation(l, -1)
		l.Pop(1)
		return fe
	}
	l.Pop(1)

	if l.Top() > 0 {
		fe := pullEvaluation(l, -1)
		l.Pop(1)
		return fe
	}

	return reactor.NoResult[any]()
}

// pushArgsTable builds the 1-based "args" table exec(args) receives,
// turning each faulted Maybe into a {fault = "<message>"} entry rather than
// erroring out the whole invocation — a script can inspect which argument
// failed and still decide what to do.
func pushArgsTable(l *lua.State, args []reactor.Maybe[any]) {
	l.NewTable()
	for i, a := range args {
		l.PushInteger(i + 1)
		if v, err := a.Get(); err != nil {
			l.NewTable()
			l.PushString(err.Error())
			l.SetField(-2, "fault")
		} else {
			pushValue(l, v)
		}
		l.SetTable(-3)
	}
}

// pullEvaluation reads the Lua value left at idx as a FunctionEvaluation,
// honoring the state envelope described on Function: nil collapses to
// NoResult, a table carrying a string "fault" field becomes a
// FaultedResult, a table naming "state" as "continue" or "complete" becomes
// the matching ResultWithState/StateOnly (with "value" supplying the
// payload when present), and anything else is a plain EvaluatedResult.
func pullEvaluation(l *lua.State, idx int) reactor.FunctionEvaluation[any] {
	if l.TypeOf(idx) == lua.TypeNil {
		return reactor.NoResult[any]()
	}

	if l.TypeOf(idx) != lua.TypeTable {
		return reactor.EvaluatedResult[any](pullValue(l, idx))
	}

	l.Field(idx, "fault")
	fault, hasFault := l.ToString(-1)
	l.Pop(1)
	if hasFault {
		return reactor.FaultedResult[any](fmt.Errorf("script: %s", fault))
	}

	l.Field(idx, "state")
	state, hasState := l.ToString(-1)
	l.Pop(1)
	if !hasState {
		return reactor.EvaluatedResult[any](pullValue(l, idx))
	}

	l.Field(idx, "value")
	hasValue := l.TypeOf(-1) != lua.TypeNil
	value := pullValue(l, -1)
	l.Pop(1)

	switch state {
	case "continue":
		if hasValue {
			return reactor.ResultWithState[any](value, reactor.CONTINUE)
		}
		return reactor.StateOnly[any](reactor.CONTINUE)
	case "complete":
		if hasValue {
			return reactor.ResultWithState[any](value, reactor.COMPLETE)
		}
		return reactor.StateOnly[any](reactor.COMPLETE)
	default:
		return reactor.FaultedResult[any](fmt.Errorf("script: unrecognized result state %q", state))
	}
}

// setupSandbox loads a restricted standard library (base, string, table,
// math) and removes every function capable of touching the filesystem,
// environment, or process, plus the dynamic-load builtins that would let a
// script escape the sandbox by loading further code.
func setupSandbox(l *lua.State) {
	lua.Require(l, "_G", lua.BaseOpen, true)
	l.Pop(1)
	lua.Require(l, "string", lua.StringOpen, true)
	l.Pop(1)
	lua.Require(l, "table", lua.TableOpen, true)
	l.Pop(1)
	lua.Require(l, "math", lua.MathOpen, true)
	l.Pop(1)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		l.PushNil()
		l.SetGlobal(name)
	}

	l.Register("json_encode", jsonEncode)
	l.Register("json_decode", jsonDecode)
}

func jsonEncode(l *lua.State) int {
	v := pullValue(l, 1)
	data, err := json.Marshal(v)
	if err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	l.PushString(string(data))
	return 1
}

func jsonDecode(l *lua.State) int {
	s, ok := l.ToString(1)
	if !ok {
		l.PushNil()
		l.PushString("json_decode: argument is not a string")
		return 2
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	pushValue(l, v)
	return 1
}

// pushValue converts a plain Go value (as produced by pullValue, or by
// json_decode) into its Lua equivalent on top of l's stack. This is pure
// tree-shaped value marshaling, not the script/reactor result contract —
// pushArgsTable and pullEvaluation are where that contract lives.
func pushValue(l *lua.State, v interface{}) {
	switch val := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(val)
	case int:
		l.PushInteger(val)
	case int64:
		l.PushInteger(int(val))
	case float64:
		l.PushNumber(val)
	case string:
		l.PushString(val)
	case []interface{}:
		l.NewTable()
		for i, item := range val {
			l.PushInteger(i + 1)
			pushValue(l, item)
			l.SetTable(-3)
		}
	case map[string]interface{}:
		l.NewTable()
		for k, item := range val {
			l.PushString(k)
			pushValue(l, item)
			l.SetTable(-3)
		}
	default:
		if data, err := json.Marshal(val); err == nil {
			l.PushString(string(data))
		} else {
			l.PushNil()
		}
	}
}

// pullValue converts the Lua value at idx into a plain Go value, the
// inverse of pushValue. A table with only positive-integer keys pulls as a
// []interface{}; anything else pulls as a map[string]interface{}.
func pullValue(l *lua.State, idx int) interface{} {
	switch l.TypeOf(idx) {
	case lua.TypeNil:
		return nil
	case lua.TypeBoolean:
		return l.ToBoolean(idx)
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return n
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s
	case lua.TypeTable:
		return pullTable(l, idx)
	default:
		return nil
	}
}

// pullTable walks the table at idx once to decide whether it is array- or
// object-shaped, then walks it again to pull its elements in the chosen
// shape.
func pullTable(l *lua.State, idx int) interface{} {
	l.PushValue(idx)

	isArray := true
	maxIndex := 0
	l.PushNil()
	for l.Next(-2) {
		if l.TypeOf(-2) != lua.TypeNumber {
			isArray = false
			l.Pop(2)
			break
		}
		n, _ := l.ToNumber(-2)
		if i := int(n); i > maxIndex {
			maxIndex = i
		}
		l.Pop(1)
	}

	if isArray && maxIndex > 0 {
		arr := make([]interface{}, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			l.PushInteger(i)
			l.Table(-2)
			arr[i-1] = pullValue(l, -1)
			l.Pop(1)
		}
		l.Pop(1)
		return arr
	}

	obj := make(map[string]interface{})
	l.PushNil()
	for l.Next(-2) {
		key := fmt.Sprintf("%v", pullValue(l, -2))
		obj[key] = pullValue(l, -1)
		l.Pop(1)
	}
	l.Pop(1)
	return obj
}
