package fixtures

import "github.com/cwbudde/qjscore/ir"

// ArgumentsAlias builds:
//
//	function a(x) { arguments[0] = 5; return x; }
//
// (spec.md §8.4 scenario 6). a.NeedsActivation triggers
// engine.bindArguments, which installs "arguments" as an ArgumentsObject
// sharing the callee Context's backing argument slots — so the indexed
// write below and the formal-parameter read both observe the same
// storage, and the function returns 5, not the originally-passed value.
func ArgumentsAlias() *ir.Function {
	entry := block("entry",
		ir.Move{Target: ir.Subscript{Base: ir.Name{Ident: "arguments"}, Index: intConst(0)}, Source: intConst(5)},
		ir.Ret{Value: arg(0)},
	)
	return &ir.Function{
		Name:                 "a",
		FormalParameterCount: 1,
		NeedsActivation:      true,
		Blocks:               wireBlocks(entry),
	}
}
