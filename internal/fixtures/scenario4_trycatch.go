package fixtures

import "github.com/cwbudde/qjscore/ir"

// TryCatch builds the equivalent of:
//
//	function h() {
//	  try { throw 42; } catch (e) { return e; }
//	}
//
// (spec.md §8.4 scenario 4). Enter installs handlers as the resume
// block for the try region (spec.md §3.9/§4.4.8); the Call lowering that
// follows Throw unconditionally checks the exception flag and branches
// there. The handler block reads the thrown value with get_exception,
// then must clear_exception before its own Ret — otherwise the stale
// HasUncaughtException flag would make engine.invokerFor report this
// call as still-throwing even though the catch recovered.
func TryCatch() *ir.Function {
	e := ir.Temp(0)

	handlers := block("handlers",
		ir.Move{Target: ir.TempRef{Temp: e}, Source: ir.Call{Base: ir.Name{Builtin: ir.BuiltinGetException}}},
		ir.Exp{Expr: ir.Call{Base: ir.Name{Builtin: ir.BuiltinClearException}}},
		ir.Leave{},
		ir.Ret{Value: ir.TempRef{Temp: e}},
	)
	entry := block("entry",
		ir.Enter{HandlersBlock: handlers},
		ir.Exp{Expr: ir.Call{Base: ir.Name{Builtin: ir.BuiltinThrow}, Args: []ir.Expr{intConst(42)}}},
		// BuiltinThrow unconditionally sets the exception flag, so the
		// post-call exception check always branches to handlers above;
		// this Ret only exists to give the block a well-formed terminator
		// for its (unreachable) normal-exit path.
		ir.Ret{Value: ir.Const{Kind: ir.ConstUndefined}},
	)
	return &ir.Function{
		Name:          "h",
		LocalCount:    1,
		TempCount:     1,
		HandlersBlock: handlers,
		Blocks:        wireBlocks(entry, handlers),
	}
}
