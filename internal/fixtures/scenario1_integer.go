package fixtures

import "github.com/cwbudde/qjscore/ir"

// IntegerAdd builds `function f(a, b) { return a + b; }` (spec.md
// §8.4 scenario 1): two Integer-tagged formals added together, exercising
// runtime.Add's Integer-fast-path-with-overflow-to-Number fallback
// (numericResult packs the sum back as Integer only when it round-trips
// through int32 exactly).
func IntegerAdd() *ir.Function {
	entry := block("entry", ir.Ret{Value: ir.Binop{Op: ir.OpAdd, Left: arg(0), Right: arg(1)}})
	return &ir.Function{
		Name:                 "f",
		FormalParameterCount: 2,
		Blocks:               wireBlocks(entry),
	}
}
