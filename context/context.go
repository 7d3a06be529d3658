// Package context implements the execution context / activation record of
// spec.md §3.8: the struct generated code addresses through fixed byte
// offsets, and the Go-side bookkeeping (scope links, with-chain, exception
// state) layered around it.
package context

import (
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// EngineRef is the opaque back-pointer to the owning engine. Declared as an
// empty interface here, satisfied by *engine.Engine, so that context does
// not import engine (engine imports context to drive calls) — the same
// interface-to-avoid-circular-import trick documented in package proptable for
// the teacher's IClassInfo pattern.
type EngineRef interface{}

// Layout records the byte offsets the instruction selector bakes into
// emitted code for Context's ABI-significant fields (spec.md §3.8: "these
// offsets are part of the ABI contract between the instruction selector
// and the runtime helpers"). Computed once, when package isel initializes
// its layout variable, via ComputeLayout so the struct definition and the offset table can never
// drift apart (spec.md §6.2).
type Layout struct {
	LocalsPtr      uintptr
	ArgumentsPtr   uintptr
	ResultOffset   uintptr
	HasExceptionOffset uintptr
	ExceptionValueOffset uintptr
}

// Context is the activation record of spec.md §3.8. Locals, Arguments,
// Result, HasUncaughtException and ExceptionValue are ABI-significant:
// generated code loads and stores them at fixed offsets via a context
// register. Every other field is Go-side bookkeeping only.
type Context struct {
	// ABI-significant fields (spec.md §3.8); order matches Layout.
	Locals               []value.Value
	Arguments            []value.Value
	Result               value.Value
	HasUncaughtException uint32
	ExceptionValue       value.Value

	Engine     EngineRef
	Parent     *Context // dynamic caller
	Outer      *Context // lexical enclosing scope
	ThisObject object.Object
	Activation *object.ActivationObject

	// WithChain is the stack of `with`-statement scope objects pushed by
	// push_with/popped by pop_with (spec.md §4.4.7, SPEC_FULL.md §11).
	WithChain []object.Object

	localNames map[string]int
	argNames   map[string]int
}

// New creates a context for a call with slotCount Temp slots — every Temp
// the selector addresses through ctx.Locals, named local or spill slot
// alike (isel's package doc), so callers must pass the function's
// TempCount here, not its LocalCount. localNames/formalNames are used to
// resolve named-local lookups for ActivationObject — spec.md §3.5's
// "searches the activation's named locals/formals first" — and only ever
// index the named-local sub-range [0, LocalCount) of Locals.
func New(engine EngineRef, parent, outer *Context, slotCount int, localNames []string, args []value.Value, formalNames []string) *Context {
	ctx := &Context{
		Locals:    make([]value.Value, slotCount),
		Arguments: args,
		Result:    value.Undefined(),
		Engine:    engine,
		Parent:    parent,
		Outer:     outer,
	}
	for i := range ctx.Locals {
		ctx.Locals[i] = value.Undefined()
	}
	if len(localNames) > 0 {
		ctx.localNames = make(map[string]int, len(localNames))
		for i, n := range localNames {
			ctx.localNames[n] = i
		}
	}
	if len(formalNames) > 0 {
		ctx.argNames = make(map[string]int, len(formalNames))
		for i, n := range formalNames {
			ctx.argNames[n] = i
		}
	}
	return ctx
}

// Dispose releases a context's reference to its frame. Mirrors
// `__qmljs_dispose_context` (spec.md §3.8): in Go, the garbage collector
// reclaims the backing arrays once the context itself becomes unreachable,
// so Dispose only needs to break reference cycles (WithChain, Activation)
// that could otherwise keep an oversized frame alive past its call.
func (c *Context) Dispose() {
	c.WithChain = nil
	c.Activation = nil
	c.Outer = nil
	c.Parent = nil
}

// GetLocal implements object.LocalAccessor for ActivationObject: resolves a
// named local or formal to its live slot. A formal wins over a local of the
// same name, so the name and the arguments object share one slot.
func (c *Context) GetLocal(name string) (value.Value, bool) {
	if i, ok := c.argNames[name]; ok {
		return c.GetArgument(i), true
	}
	if i, ok := c.localNames[name]; ok {
		return c.Locals[i], true
	}
	return value.Undefined(), false
}

// SetLocal implements object.LocalAccessor, with GetLocal's lookup order.
func (c *Context) SetLocal(name string, v value.Value) bool {
	if i, ok := c.argNames[name]; ok {
		c.SetArgument(i, v)
		return true
	}
	if i, ok := c.localNames[name]; ok {
		c.Locals[i] = v
		return true
	}
	return false
}

// GetArgument implements object.ArgumentAccessor.
func (c *Context) GetArgument(i int) value.Value {
	if i < 0 || i >= len(c.Arguments) {
		return value.Undefined()
	}
	return c.Arguments[i]
}

// SetArgument implements object.ArgumentAccessor.
func (c *Context) SetArgument(i int, v value.Value) {
	if i < 0 || i >= len(c.Arguments) {
		return
	}
	c.Arguments[i] = v
}

// ArgumentCount implements object.ArgumentAccessor.
func (c *Context) ArgumentCount() int { return len(c.Arguments) }

// EnsureActivation materializes c.Activation on first use (spec.md §3.8:
// "materialized lazily when needsActivation"), backing it by c itself via
// the LocalAccessor/ArgumentAccessor methods above.
func (c *Context) EnsureActivation(prototype object.Object, names []string) *object.ActivationObject {
	if c.Activation == nil {
		c.Activation = object.NewActivationObject(prototype, c, names)
	}
	return c.Activation
}

// PushWith pushes a `with`-statement scope object (SPEC_FULL.md §11,
// grounded on qmljs_objects.h's WithContext): subsequent unqualified name
// lookups check obj before falling through to the activation/outer scope.
func (c *Context) PushWith(obj object.Object) {
	c.WithChain = append(c.WithChain, obj)
}

// PopWith pops the innermost `with` scope object. No-op if the chain is
// empty (a compile-time invariant violation, not a runtime one, since
// push_with/pop_with are always emitted in matched pairs by the selector).
func (c *Context) PopWith() {
	if n := len(c.WithChain); n > 0 {
		c.WithChain = c.WithChain[:n-1]
	}
}

// CurrentWith returns the innermost active `with` scope object, or nil.
func (c *Context) CurrentWith() object.Object {
	if n := len(c.WithChain); n > 0 {
		return c.WithChain[n-1]
	}
	return nil
}

// Throw sets the exception state exactly as spec.md §3.9 describes:
// "the helper sets ctx.hasUncaughtException = true, stores the thrown
// Value". Transfer of control back to the nearest handler is then the
// generated code's job (the exception-check-and-branch sequence of
// spec.md §4.4.8), not this method's.
func (c *Context) Throw(v value.Value) {
	c.HasUncaughtException = 1
	c.ExceptionValue = v
}

// ClearException resets exception state, used by the clear_exception
// helper (runtime.ClearException) once control reaches the handler block.
func (c *Context) ClearException() {
	c.HasUncaughtException = 0
	c.ExceptionValue = value.Undefined()
}
