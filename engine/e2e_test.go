package engine_test

import (
	"testing"

	"github.com/cwbudde/qjscore/builtins"
	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/internal/fixtures"
	"github.com/cwbudde/qjscore/ir"
)

// callFixture wraps fn in a zero-argument top-level program that invokes
// it once with constArgs and returns the result, the shape every demo
// taking formal parameters needs since engine.Run always calls its entry
// with no arguments (spec.md §8.4).
func callFixture(fn *ir.Function, constArgs ...int32) *ir.Function {
	args := make([]ir.Expr, len(constArgs))
	for i, n := range constArgs {
		args[i] = ir.Const{Kind: ir.ConstInt, Int: n}
	}
	entry := &ir.BasicBlock{Statements: []ir.Stmt{
		ir.Ret{Value: ir.Call{Base: ir.Closure{Function: fn}, Args: args}},
	}}
	return &ir.Function{Name: "wrapper", Blocks: []*ir.BasicBlock{entry}}
}

func TestIntegerAddFastPathAndOverflow(t *testing.T) {
	e := engine.New()
	result, err := e.Run(callFixture(fixtures.IntegerAdd(), 2, 3))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.IsInteger() || result.ToInt32() != 5 {
		t.Fatalf("2+3 = %v, want Integer 5", result)
	}

	overflow := engine.New()
	result, err = overflow.Run(callFixture(fixtures.IntegerAdd(), 2147483647, 1))
	if err != nil {
		t.Fatalf("Run (overflow): %v", err)
	}
	if result.IsInteger() {
		t.Fatalf("INT32_MAX+1 = %v, want a Number fallback, not Integer", result)
	}
	if !result.IsNumber() || result.ToDouble() != 2147483648 {
		t.Fatalf("INT32_MAX+1 = %v, want Number 2147483648", result)
	}
}

func TestPrototypeLookupThroughNewInstance(t *testing.T) {
	e := engine.New()
	fixtures.InstallPrototypeConstructor(e)
	result, err := e.Run(fixtures.PrototypeLookup())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.IsInteger() || result.ToInt32() != 10 {
		t.Fatalf("new C().x = %v, want Integer 10", result)
	}
}

func TestTryCatchRecoversAndClearsException(t *testing.T) {
	e := engine.New()
	result, err := e.Run(fixtures.TryCatch())
	if err != nil {
		t.Fatalf("Run: %v (exception should have been caught, not propagated)", err)
	}
	if !result.IsInteger() || result.ToInt32() != 42 {
		t.Fatalf("caught value = %v, want Integer 42", result)
	}
}

func TestArgumentsAliasesFormal(t *testing.T) {
	e := engine.New()
	result, err := e.Run(callFixture(fixtures.ArgumentsAlias(), 1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.IsInteger() || result.ToInt32() != 5 {
		t.Fatalf("a(1) = %v, want Integer 5 (arguments[0]=5 aliases x)", result)
	}
}

func TestEnumerateAfterDeleteThenReinsertReordersKeys(t *testing.T) {
	e := engine.New()
	builtins.InstallObjectConstructor(e)
	result, err := e.Run(fixtures.EnumerateAfterDeleteAndReinsert())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.IsString() {
		t.Fatalf("enumJoin() = %v, want a String", result)
	}
	if got := e.String(result.StringHandle()).Go(); got != "ba" {
		t.Fatalf("enumJoin() = %q, want %q (\"a\" was deleted then reinserted, so it enumerates after \"b\")", got, "ba")
	}
}

// TestClosureCapturesLexicalScope calls mk() once, then the returned
// counter closure twice, checking the second call observes the first
// call's mutation of the captured "x" — the point of scenario 5.
func TestClosureCapturesLexicalScope(t *testing.T) {
	counter := ir.Temp(0)
	entry := &ir.BasicBlock{Statements: []ir.Stmt{
		ir.Move{Target: ir.TempRef{Temp: counter}, Source: ir.Call{Base: ir.Closure{Function: fixtures.Counter()}}},
		ir.Exp{Expr: ir.Call{Base: ir.TempRef{Temp: counter}}},
		ir.Ret{Value: ir.Call{Base: ir.TempRef{Temp: counter}}},
	}}
	top := &ir.Function{Name: "top", LocalCount: 1, TempCount: 1, Blocks: []*ir.BasicBlock{entry}}

	e := engine.New()
	result, err := e.Run(top)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.IsInteger() || result.ToInt32() != 2 {
		t.Fatalf("second counter() call = %v, want Integer 2", result)
	}
}
