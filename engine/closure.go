package engine

import (
	"fmt"

	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/runtime"
	"github.com/cwbudde/qjscore/value"
)

// MakeClosure implements runtime.Resolver: builds a FunctionObject over
// functionIndex's compiled entry point, capturing ctx as the lexical
// scope nested Name lookups walk outward through (spec.md §3.7's closure
// creation).
func (e *Engine) MakeClosure(ctx *context.Context, functionIndex int32) value.Value {
	fn := e.functions[functionIndex]
	var fo *object.FunctionObject
	invoke := e.invokerFor(functionIndex, ctx, &fo)
	fo = object.NewFunctionObject(e.Proto.Function, value.NewString(fn.Name), invoke, nil)
	fo.CapturedScope = ctx
	fo.NeedsActivation = fn.NeedsActivation
	fo.FormalParameterList = make([]string, fn.FormalParameterCount)
	// construct()'s newInstanceFor (runtime/call.go) allocates `new`
	// instances with this as their prototype link — a fresh, empty object
	// rather than e.Proto.Object itself, matching spec.md §3.7's "a new
	// object whose prototype is this.prototype" (every function gets its
	// own distinct prototype object, not a shared one).
	fo.ExpectedPrototype = object.NewPlainObject(e.Proto.Object)
	return e.InternObject(fo)
}

// invokerFor builds the object.Invoker a compiled script function's
// FunctionObject calls through. Allocating the callee Context is the call
// prologue of spec.md §4.4.6 ABI variant 1 — done here in Go, since
// object.Invoker's signature carries no Context the caller could pass
// down, rather than emitted as part of the generated code itself. selfRef
// is filled in by MakeClosure right after NewFunctionObject returns, so
// that a NeedsActivation call can install the live "callee" binding
// spec.md §8.4 scenario 6's `arguments.callee` contract needs — by the
// time invoke is actually called, selfRef is always populated.
func (e *Engine) invokerFor(functionIndex int32, capturedScope *context.Context, selfRef **object.FunctionObject) object.Invoker {
	return func(args []value.Value, this value.Value) (value.Value, error) {
		fn := e.functions[functionIndex]
		ep := e.entryPoints[functionIndex]
		if ep == nil {
			return value.Undefined(), fmt.Errorf("engine: function %q has no compiled entry point", fn.Name)
		}
		calleeCtx := context.New(e, nil, capturedScope, fn.TempCount, nil, args, nil)
		calleeCtx.ThisObject = e.objectForThis(this)
		if fn.NeedsActivation {
			e.bindArguments(calleeCtx, *selfRef)
		}
		result := ep(calleeCtx)
		if calleeCtx.HasUncaughtException != 0 {
			return value.Undefined(), &runtime.ThrownError{Value: calleeCtx.ExceptionValue}
		}
		return result, nil
	}
}

// bindArguments materializes the callee's activation and installs its
// "arguments" object (spec.md §3.7/§8.4 scenario 6: "arguments object
// aliases formals"), with "callee" pointing back at the invoked function.
func (e *Engine) bindArguments(ctx *context.Context, fo *object.FunctionObject) {
	argsObj := object.NewArgumentsObject(e.Proto.Object, ctx, fo)
	calleeName := value.NewString("callee")
	if fo != nil {
		argsObj.SetProperty(calleeName, e.InternObject(fo))
	}
	ctx.EnsureActivation(e.Proto.Object, nil).SetProperty(value.NewString("arguments"), e.InternObject(argsObj))
}

func (e *Engine) objectForThis(v value.Value) object.Object {
	if !v.IsObject() {
		return nil
	}
	return e.Object(v.ObjectHandle())
}

// Run compiles entry and invokes it once with no arguments and the global
// object as `this`, the shape cmd/qjsc's `demo` subcommand and spec.md
// §8.4's end-to-end scenarios both need: a single top-level function, no
// caller-supplied activation record.
func (e *Engine) Run(entry *ir.Function) (value.Value, error) {
	cf, err := e.Compile(entry)
	if err != nil {
		return value.Undefined(), err
	}
	rootCtx := context.New(e, nil, nil, entry.TempCount, nil, nil, nil)
	rootCtx.ThisObject = e.GlobalObject()
	result := cf.EntryPoint(rootCtx)
	if rootCtx.HasUncaughtException != 0 {
		return value.Undefined(), &runtime.ThrownError{Value: rootCtx.ExceptionValue}
	}
	return result, nil
}
