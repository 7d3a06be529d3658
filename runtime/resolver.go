package runtime

import (
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// Resolver is the subset of engine.Engine every helper that dereferences a
// String/Object handle needs (spec.md §3.1's "payload is an opaque handle
// into the owning engine's table"). Declared here rather than imported from
// package engine to avoid runtime<->engine import cycle (engine constructs
// Contexts that runtime operates on); *engine.Engine implements it.
type Resolver interface {
	Object(handle uint32) object.Object
	String(handle uint32) *value.String
	InternValue(s string) value.Value
	InternObject(o object.Object) value.Value

	// MakeClosure builds a FunctionObject capturing ctx as its lexical
	// scope for the compiled function registered at functionIndex
	// (spec.md §3.7's closure creation). The engine owns the function
	// table isel's Closure lowering indexes into; runtime only forwards
	// the request so that package isel never needs to import engine.
	MakeClosure(ctx *context.Context, functionIndex int32) value.Value

	// UnwindStack returns the engine-owned handler-frame stack
	// create_exception_handler/delete_exception_handler operate on. Handler
	// frames outlive any single Context, so the stack lives on the engine
	// rather than the Context itself.
	UnwindStack() *context.UnwindStack
}

// resolverOf extracts the Resolver a Context's Engine back-pointer must
// satisfy. Panics only reflect a genuine construction bug (a Context built
// with a non-Resolver Engine), never a user-reachable script condition.
func resolverOf(ctx *context.Context) Resolver {
	return ctx.Engine.(Resolver)
}
