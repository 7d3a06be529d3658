package isel

import (
	"strings"
	"testing"

	"github.com/cwbudde/qjscore/ir"
	"github.com/gkampitakis/go-snaps/snaps"
)

// These fixtures build ir.Function graphs directly rather than importing
// internal/fixtures: that package goes through engine, which imports this
// package, so pulling it into an isel-internal test would be a dependency
// cycle. Scope is narrower in exchange — just enough shape to exercise the
// selector paths these snapshots pin down.

func block(name string, stmts ...ir.Stmt) *ir.BasicBlock {
	return &ir.BasicBlock{Name: name, Statements: stmts}
}

func wire(blocks ...*ir.BasicBlock) []*ir.BasicBlock {
	for i, b := range blocks {
		b.Index = i
	}
	return blocks
}

func intConst(n int32) ir.Expr { return ir.Const{Kind: ir.ConstInt, Int: n} }

func arg(i int) ir.Expr { return ir.TempRef{Temp: ir.Temp(-i - 1)} }

// disassemble compiles fn (with no cross-function closures) and returns
// its disassembly as a single newline-joined string for snapshotting.
func disassemble(t *testing.T, fn *ir.Function) string {
	t.Helper()
	cf, err := Compile(fn, func(*ir.Function) int32 {
		t.Fatalf("%s: unexpected closure lowering", fn.Name)
		return 0
	})
	if err != nil {
		t.Fatalf("Compile(%s): %v", fn.Name, err)
	}
	return strings.Join(cf.Disassembler(), "\n")
}

// TestDisassembleIntegerAdd snapshots the selector's output for the
// simplest possible function body, `return a + b`, pinning the Binop
// call-helper shape of spec.md §4.4.5.
func TestDisassembleIntegerAdd(t *testing.T) {
	entry := block("entry", ir.Ret{Value: ir.Binop{Op: ir.OpAdd, Left: arg(0), Right: arg(1)}})
	fn := &ir.Function{
		Name:                 "add",
		FormalParameterCount: 2,
		Blocks:               wire(entry),
	}
	snaps.MatchSnapshot(t, disassemble(t, fn))
}

// TestDisassembleConditionalBranch snapshots a CJump over a literal
// condition, pinning the runtime.ToBoolean helper call lowerCJump emits
// ahead of its TestRegReg (isel/blocks.go).
func TestDisassembleConditionalBranch(t *testing.T) {
	trueBlock := block("trueBlock", ir.Ret{Value: intConst(1)})
	falseBlock := block("falseBlock", ir.Ret{Value: intConst(0)})
	entry := block("entry", ir.CJump{Cond: arg(0), True: trueBlock, False: falseBlock})
	fn := &ir.Function{
		Name:                 "pick",
		FormalParameterCount: 1,
		Blocks:               wire(entry, trueBlock, falseBlock),
	}
	snaps.MatchSnapshot(t, disassemble(t, fn))
}

// TestDisassembleThrow snapshots a builtin call (throw) followed by the
// post-call exception check sequence (emitExceptionCheck), with no
// handler installed so it resolves to the uncaught-exception epilogue
// path.
func TestDisassembleThrow(t *testing.T) {
	entry := block("entry",
		ir.Exp{Expr: ir.Call{Base: ir.Name{Builtin: ir.BuiltinThrow}, Args: []ir.Expr{intConst(7)}}},
		ir.Ret{Value: ir.Const{Kind: ir.ConstUndefined}},
	)
	fn := &ir.Function{Name: "throwSeven", Blocks: wire(entry)}
	snaps.MatchSnapshot(t, disassemble(t, fn))
}
