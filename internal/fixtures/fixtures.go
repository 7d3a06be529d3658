// Package fixtures builds the hand-written ir.Function graphs spec.md
// §8.4's six end-to-end scenarios describe, for cmd/qjsc's demo mode and
// isel/engine's end-to-end tests. There is no front end in this module
// (ir.Function's doc comment: "construction of an ir.Function from source
// text is the job of a front end that lives outside this module"), so
// these are built directly the way a compiler's IR builder would.
package fixtures

import "github.com/cwbudde/qjscore/ir"

func block(name string, stmts ...ir.Stmt) *ir.BasicBlock {
	return &ir.BasicBlock{Name: name, Statements: stmts}
}

func wireBlocks(blocks ...*ir.BasicBlock) []*ir.BasicBlock {
	for i, b := range blocks {
		b.Index = i
	}
	return blocks
}

func arg(i int) ir.Expr { return ir.TempRef{Temp: ir.Temp(-i - 1)} }

func intConst(n int32) ir.Expr { return ir.Const{Kind: ir.ConstInt, Int: n} }

func strLit(s string) ir.Expr { return ir.StringLit{Value: s} }
