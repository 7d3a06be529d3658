package engine

import (
	"fmt"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/isel"
)

// CompiledFunction wraps entry's callable machine code plus, under
// SHOW_CODE, its disassembly text (spec.md §6, SPEC_FULL.md §8).
type CompiledFunction struct {
	EntryPoint asm.EntryPoint
	Disasm     []string
}

// registerFunction assigns fn a stable function-table index, recursing
// into every ir.Function reachable through a nested Closure expression so
// that isel.Compile's functionIndex callback (and later, runtime.MakeClosure)
// can resolve any Closure in the whole transitive call graph before a
// single one of them is selected.
func (e *Engine) registerFunction(fn *ir.Function) int32 {
	if idx, ok := e.functionIndex[fn]; ok {
		return idx
	}
	idx := int32(len(e.functions))
	e.functionIndex[fn] = idx
	e.functions = append(e.functions, fn)
	e.entryPoints = append(e.entryPoints, nil)
	e.retained = append(e.retained, nil)

	for _, b := range fn.Blocks {
		for _, st := range b.Statements {
			walkStmtClosures(st, func(nested *ir.Function) { e.registerFunction(nested) })
		}
	}
	return idx
}

func walkStmtClosures(st ir.Stmt, visit func(*ir.Function)) {
	switch n := st.(type) {
	case ir.Move:
		walkExprClosures(n.Target, visit)
		walkExprClosures(n.Source, visit)
	case ir.Exp:
		walkExprClosures(n.Expr, visit)
	case ir.Ret:
		walkExprClosures(n.Value, visit)
	case ir.CJump:
		walkExprClosures(n.Cond, visit)
	}
}

func walkExprClosures(e ir.Expr, visit func(*ir.Function)) {
	switch n := e.(type) {
	case ir.Closure:
		visit(n.Function)
	case ir.Binop:
		walkExprClosures(n.Left, visit)
		walkExprClosures(n.Right, visit)
	case ir.Unop:
		walkExprClosures(n.Arg, visit)
	case ir.Member:
		walkExprClosures(n.Base, visit)
	case ir.Subscript:
		walkExprClosures(n.Base, visit)
		walkExprClosures(n.Index, visit)
	case ir.Call:
		walkExprClosures(n.Base, visit)
		for _, a := range n.Args {
			walkExprClosures(a, visit)
		}
	case ir.New:
		walkExprClosures(n.Base, visit)
		for _, a := range n.Args {
			walkExprClosures(a, visit)
		}
	}
}

// Compile selects and installs machine code for entry and every function
// it transitively closes over, returning entry's callable EntryPoint
// (spec.md §4.3, §6.3). A given Engine supports exactly one Compile call:
// the code buffer's W^X flip at Finalize is one-way, matching spec.md
// §8.4's one-program-per-run demo fixtures and cmd/qjsc's one-shot
// compile/run flow — an embedder wanting to compile a second, independent
// program constructs a second Engine.
func (e *Engine) Compile(entry *ir.Function) (CompiledFunction, error) {
	if e.compiledOnce {
		return CompiledFunction{}, fmt.Errorf("engine: Compile already called on this Engine; construct a new Engine per program")
	}
	e.compiledOnce = true

	entryIdx := e.registerFunction(entry)

	offsets := make([]int, len(e.functions))
	compiled := make([]*isel.CompiledFunction, len(e.functions))
	for i, fn := range e.functions {
		cf, err := isel.Compile(fn, e.registerFunction)
		if err != nil {
			return CompiledFunction{}, err
		}
		off, err := e.codeBuf.Write(cf.Code)
		if err != nil {
			return CompiledFunction{}, fmt.Errorf("engine: install %s: %w", fn.Name, err)
		}
		offsets[i] = off
		compiled[i] = cf
		e.retained[i] = cf.Retained
	}

	if err := e.codeBuf.Finalize(); err != nil {
		return CompiledFunction{}, err
	}

	for i := range e.functions {
		e.entryPoints[i] = asm.MakeEntryPoint(e.codeBuf.EntryPointAt(offsets[i]))
		if e.showCode {
			fmt.Fprintf(e.codeOut, "; %s\n", compiled[i].Name)
			for _, line := range compiled[i].Disassembler() {
				fmt.Fprintln(e.codeOut, "  "+line)
			}
		}
	}

	return CompiledFunction{
		EntryPoint: e.entryPoints[entryIdx],
		Disasm:     disasmLines(e.showCode, compiled[entryIdx]),
	}, nil
}

func disasmLines(showCode bool, cf *isel.CompiledFunction) []string {
	if !showCode || cf == nil {
		return nil
	}
	return cf.Disassembler()
}
