package fixtures

import "github.com/cwbudde/qjscore/ir"

// Counter builds:
//
//	function mk() {
//	  var x = 0;
//	  return function() { x = x + 1; return x; };
//	}
//
// (spec.md §8.4 scenario 5). "x" is captured through the scope
// chain by name, not by Temp index: addrOfTemp addresses are always
// relative to the *current* Context's Locals/Arguments array, so a
// variable an inner closure must still see after mk has returned can only
// live as a named Activation property (runtime.GetActivationProperty's
// Outer-chain walk), not a raw Temp. mk.NeedsActivation is set for
// exactly this reason: its local is captured by an escaping closure.
func Counter() *ir.Function {
	increment := &ir.Function{
		Name: "",
		Blocks: wireBlocks(block("entry",
			ir.Move{Target: ir.Name{Ident: "x"}, Source: intConst(1), Op: ir.OpAdd},
			ir.Ret{Value: ir.Name{Ident: "x"}},
		)),
	}

	entry := block("entry",
		ir.Exp{Expr: ir.Call{Base: ir.Name{Builtin: ir.BuiltinDeclareVars}, Args: []ir.Expr{strLit("x")}}},
		ir.Move{Target: ir.Name{Ident: "x"}, Source: intConst(0)},
		ir.Ret{Value: ir.Closure{Function: increment}},
	)
	return &ir.Function{
		Name:            "mk",
		NeedsActivation: true,
		Blocks:          wireBlocks(entry),
	}
}
