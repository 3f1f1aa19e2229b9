/*
Package reactor provides the core of a synchronous reactive-dataflow engine:
a library of composable reactors that evaluate a value over a sequence of
discrete ticks.

Every reactor reports a State after each tick describing whether it produced
a value, whether it may still produce more, and whether it wants to be
recommitted immediately. Combinators are built on top of this uniform
contract:

  - Lift turns an ordinary function into a reactor over reactor-typed
    arguments, coordinating child commits and folding their states with the
    function's own.
  - Chain, Until, First and Range demonstrate the non-trivial state
    transitions the algebra supports.

Basic usage:

	c := leaf.Constant(100)
	if s := c.Commit(0); reactor.HasEvaluation(s) {
		v, _ := c.Eval()
		fmt.Println(v) // 100
	}

Composing with Lift:

	sum := reactor.Lift2("sum",
	    func(a, b reactor.Maybe[int]) reactor.FunctionEvaluation[int] {
	        av, _ := a.Get()
	        bv, _ := b.Get()
	        return reactor.EvaluatedResult(av + bv)
	    },
	    leaf.Constant(1), leaf.Constant(2))

The core has zero dependencies beyond the standard library; declarative
graph construction, scripting, WebAssembly plugins, a concurrent multi-graph
driver, and a CLI live in sibling packages built on top of it.
*/
package reactor
