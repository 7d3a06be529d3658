package runtime

import (
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/value"
)

// InternString implements the helper StringLit lowering calls: interns a
// compile-time-constant Go string embedded as an immediate address in the
// generated code (spec.md §4.4's literal operands).
func InternString(ctx *context.Context, s *string) value.Value {
	return resolverOf(ctx).InternValue(*s)
}

// MakeClosure implements the helper Closure lowering calls: asks the
// engine to build a FunctionObject over the compiled function registered
// at functionIndex, capturing ctx as its lexical scope (spec.md §3.7).
func MakeClosure(ctx *context.Context, functionIndex int32) value.Value {
	return resolverOf(ctx).MakeClosure(ctx, functionIndex)
}
