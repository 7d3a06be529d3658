package object

import (
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// Scope is the lexical enclosing context a closure captures (spec.md
// §3.7). It is declared as an empty interface here, satisfied by
// *context.Context, to avoid object importing context while context
// imports object for Object/ActivationObject fields — the same
// interface-to-avoid-circular-import trick used throughout this package.
type Scope interface{}

// Invoker is the shape every FunctionObject call eventually reduces to:
// marshal this+args, run the body (native Go code or JIT-compiled
// machine code via a fresh Context), return the result or an error
// carrying a thrown Value. Supplied by the engine/runtime layer at
// construction time so package object never needs to know how a call
// frame is actually built (spec.md §4.4.6).
type Invoker func(args []value.Value, this value.Value) (value.Value, error)

// Constructor mirrors Invoker for `new` invocations, receiving the
// freshly allocated instance as `this` (spec.md §3.7 construct()).
type Constructor func(args []value.Value, newInstance value.Value) (value.Value, error)

// FunctionObject is the function variant of spec.md §3.7. invoke (and,
// for a constructible function, construct) is supplied by the engine at
// construction time: for a native function it runs Go code directly, for
// a compiled script function it closes over the function's asm.EntryPoint
// and CapturedScope, allocating a fresh Context per call (spec.md §4.4.6).
type FunctionObject struct {
	Base

	Name                 *value.String
	FormalParameterList  []string
	VarList              []string
	NeedsActivation      bool
	CapturedScope        Scope
	IsNative             bool
	ExpectedPrototype    Object // the `prototype` own-property's initial value, used by construct()

	invoke      Invoker
	construct   Constructor
	hasInstance func(candidate Object) bool
}

// NewFunctionObject creates a function object. invoke is required;
// construct and hasInstance may be nil (hasInstance then falls back to
// the default: compare v's prototype chain against ExpectedPrototype).
func NewFunctionObject(prototype Object, name *value.String, invoke Invoker, construct Constructor) *FunctionObject {
	b := NewBase(KindFunction, prototype, value.NewString("Function"))
	return &FunctionObject{Base: b, Name: name, invoke: invoke, construct: construct}
}

// Call invokes the function with the given this/args (proptable.Accessible,
// and the general call contract of spec.md §3.7).
func (f *FunctionObject) Call(args []value.Value, this value.Value) (value.Value, error) {
	if f.invoke == nil {
		return value.Undefined(), nil
	}
	return f.invoke(args, this)
}

// Construct implements spec.md §3.7's construct(ctx): executes the body
// with newInstance as `this`. Callers are responsible for allocating
// newInstance with its prototype set to f's "prototype" own property
// before calling Construct (spec.md §3.7: "creating a new object whose
// prototype is this.prototype").
func (f *FunctionObject) Construct(args []value.Value, newInstance value.Value) (value.Value, error) {
	if f.construct != nil {
		return f.construct(args, newInstance)
	}
	return f.Call(args, newInstance)
}

// SetHasInstance installs a custom `instanceof` predicate.
func (f *FunctionObject) SetHasInstance(fn func(candidate Object) bool) { f.hasInstance = fn }

// HasInstance implements ECMAScript `instanceof` (spec.md §3.7,
// SPEC_FULL.md §11 supplemented feature). obj is the candidate's own
// Object, resolved by the caller from its Value handle.
func (f *FunctionObject) HasInstance(obj Object) bool {
	if f.hasInstance != nil {
		return f.hasInstance(obj)
	}
	if f.ExpectedPrototype == nil {
		return false
	}
	for cur := obj.Base().Prototype; cur != nil; cur = cur.Base().Prototype {
		if cur == f.ExpectedPrototype {
			return true
		}
	}
	return false
}

func (f *FunctionObject) GetProperty(name *value.String) value.Value {
	if name.Go() == "length" {
		return value.FromInt32(int32(len(f.FormalParameterList)))
	}
	if name.Go() == "name" {
		return DefaultGetProperty(f, name) // own "name" data property, installed by engine at construction
	}
	return DefaultGetProperty(f, name)
}
func (f *FunctionObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(f, name)
}
func (f *FunctionObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(f, name)
}
func (f *FunctionObject) SetProperty(name *value.String, v value.Value) {
	DefaultSetProperty(f, name, v)
}
func (f *FunctionObject) CanSetProperty(name *value.String) bool { return DefaultCanSetProperty(f, name) }
func (f *FunctionObject) HasProperty(name *value.String) bool    { return DefaultHasProperty(f, name) }
func (f *FunctionObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(f, name) }
func (f *FunctionObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(f, name, desc)
}
