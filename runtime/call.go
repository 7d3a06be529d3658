package runtime

import (
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// ThrownError wraps a thrown Value as a Go error so FunctionObject.Invoker
// (native functions) and the call helpers below share one vocabulary for
// "this call raised a JS exception" without exceptions ever becoming Go
// panics (spec.md §7: exceptions propagate only through ctx's exception
// fields, observable from generated code at fixed offsets).
type ThrownError struct {
	Value value.Value
}

func (e *ThrownError) Error() string { return "uncaught script exception" }

// dispatch calls fn, translating a *ThrownError into ctx's exception state
// (the Go-level equivalent of builtin_throw, spec.md §3.9) and writing the
// successful result through result (nil means "discarded", matching
// spec.md §4.4.6's "result_or_null").
func dispatch(ctx *context.Context, result *value.Value, fn func() (value.Value, error)) {
	v, err := fn()
	if err != nil {
		if te, ok := err.(*ThrownError); ok {
			ctx.Throw(te.Value)
		} else {
			ctx.Throw(value.Undefined())
		}
		return
	}
	if result != nil {
		*result = v
	}
}

func functionOf(ctx *context.Context, v value.Value) *object.FunctionObject {
	o := objectOf(ctx, v)
	if o == nil {
		return nil
	}
	f, _ := o.(*object.FunctionObject)
	return f
}

// CallValue implements `__qmljs_call_value`: Call with a Temp callee
// (spec.md §4.4.6 ABI variant 2 — argv is already a contiguous,
// caller-marshaled Value slice by the time it reaches here).
func CallValue(ctx *context.Context, result *value.Value, callee value.Value, this value.Value, argv []value.Value) {
	f := functionOf(ctx, callee)
	if f == nil {
		ctx.Throw(value.Undefined()) // TypeError: not a function
		return
	}
	dispatch(ctx, result, func() (value.Value, error) { return f.Call(argv, this) })
}

// CallProperty implements `__qmljs_call_property`: Call with a Member
// callee (method call — base.name(argv...)).
func CallProperty(ctx *context.Context, result *value.Value, base value.Value, name *value.String, argv []value.Value) {
	o := objectOf(ctx, base)
	if o == nil {
		ctx.Throw(value.Undefined())
		return
	}
	f, _ := func() (*object.FunctionObject, bool) {
		v := o.GetProperty(name)
		fo := functionOf(ctx, v)
		return fo, fo != nil
	}()
	if f == nil {
		ctx.Throw(value.Undefined())
		return
	}
	dispatch(ctx, result, func() (value.Value, error) { return f.Call(argv, base) })
}

// CallActivationProperty implements `__qmljs_call_activation_property`:
// Call with a Name callee, resolved through the scope chain exactly as
// GetActivationProperty does.
func CallActivationProperty(ctx *context.Context, result *value.Value, name *value.String, argv []value.Value) {
	v, ok := lookupActivation(ctx, name)
	if !ok {
		ctx.Throw(value.Undefined()) // ReferenceError: name is not defined
		return
	}
	f := functionOf(ctx, v)
	if f == nil {
		ctx.Throw(value.Undefined())
		return
	}
	this := value.Undefined()
	if ctx.ThisObject != nil {
		this = resolverOf(ctx).InternObject(ctx.ThisObject)
	}
	dispatch(ctx, result, func() (value.Value, error) { return f.Call(argv, this) })
}

// ConstructValue implements `__qmljs_construct_value`: `new` with a Temp
// callee. Allocates the new instance's prototype link from the function's
// own "prototype" property before invoking Construct (spec.md §3.7).
func ConstructValue(ctx *context.Context, result *value.Value, callee value.Value, argv []value.Value) {
	f := functionOf(ctx, callee)
	if f == nil {
		ctx.Throw(value.Undefined())
		return
	}
	instance := newInstanceFor(ctx, f)
	dispatch(ctx, result, func() (value.Value, error) { return f.Construct(argv, instance) })
}

// ConstructProperty implements `__qmljs_construct_property`: `new` with a
// Member callee.
func ConstructProperty(ctx *context.Context, result *value.Value, base value.Value, name *value.String, argv []value.Value) {
	o := objectOf(ctx, base)
	if o == nil {
		ctx.Throw(value.Undefined())
		return
	}
	f := functionOf(ctx, o.GetProperty(name))
	if f == nil {
		ctx.Throw(value.Undefined())
		return
	}
	instance := newInstanceFor(ctx, f)
	dispatch(ctx, result, func() (value.Value, error) { return f.Construct(argv, instance) })
}

// ConstructActivationProperty implements
// `__qmljs_construct_activation_property`: `new` with a Name callee.
func ConstructActivationProperty(ctx *context.Context, result *value.Value, name *value.String, argv []value.Value) {
	v, ok := lookupActivation(ctx, name)
	if !ok {
		ctx.Throw(value.Undefined())
		return
	}
	f := functionOf(ctx, v)
	if f == nil {
		ctx.Throw(value.Undefined())
		return
	}
	instance := newInstanceFor(ctx, f)
	dispatch(ctx, result, func() (value.Value, error) { return f.Construct(argv, instance) })
}

func newInstanceFor(ctx *context.Context, f *object.FunctionObject) value.Value {
	res := resolverOf(ctx)
	inst := object.NewPlainObject(f.ExpectedPrototype)
	return res.InternObject(inst)
}
