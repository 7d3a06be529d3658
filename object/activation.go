package object

import (
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// funcAccessible adapts a plain Go func to proptable.Accessible, the
// vocabulary accessor descriptors (ActivationObject's named locals,
// ArgumentsObject's live argument slots) are expressed in.
type funcAccessible func(args []value.Value, this value.Value) (value.Value, error)

func (f funcAccessible) Call(args []value.Value, this value.Value) (value.Value, error) {
	return f(args, this)
}

// LocalAccessor reads and writes one named local/formal slot of the
// Context an ActivationObject exposes. *context.Context implements this
// without object importing context (avoids the import cycle context has
// back into object for ThisObject/Activation fields).
type LocalAccessor interface {
	GetLocal(name string) (value.Value, bool)
	SetLocal(name string, v value.Value) bool
}

// ActivationObject exposes a function's named locals and formals as
// object properties (spec.md §3.5, Glossary). Rather than overriding
// GetPropertyDescriptor specially, every named local is pre-registered in
// the member table as an Accessor descriptor proxying to the backing
// Context — so the ordinary prototype-chain lookup in object.go already
// implements "searches the activation's named locals/formals first,
// falling back to the table" for free: extra properties (e.g. those
// installed by the `declare_vars` builtin for names with no local slot)
// simply live in the same table as ordinary Data descriptors.
type ActivationObject struct {
	Base
	accessor LocalAccessor
}

// NewActivationObject creates an activation object aliasing names to the
// live slots accessor exposes.
func NewActivationObject(prototype Object, accessor LocalAccessor, names []string) *ActivationObject {
	b := NewBase(KindActivation, prototype, value.NewString("Activation"))
	a := &ActivationObject{Base: b, accessor: accessor}
	members := a.EnsureMembers()
	for _, n := range names {
		name := n
		d := members.Insert(value.NewString(name))
		d.Kind = proptable.KindAccessor
		d.Enumerable = proptable.TriSet
		d.Configurable = proptable.TriUnset
		d.Get = funcAccessible(func(args []value.Value, this value.Value) (value.Value, error) {
			v, _ := accessor.GetLocal(name)
			return v, nil
		})
		d.Set = funcAccessible(func(args []value.Value, this value.Value) (value.Value, error) {
			if len(args) > 0 {
				accessor.SetLocal(name, args[0])
			}
			return value.Undefined(), nil
		})
	}
	return a
}

func (a *ActivationObject) GetProperty(name *value.String) value.Value { return DefaultGetProperty(a, name) }
func (a *ActivationObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(a, name)
}
func (a *ActivationObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(a, name)
}
func (a *ActivationObject) SetProperty(name *value.String, v value.Value) {
	DefaultSetProperty(a, name, v)
}
func (a *ActivationObject) CanSetProperty(name *value.String) bool { return DefaultCanSetProperty(a, name) }
func (a *ActivationObject) HasProperty(name *value.String) bool    { return DefaultHasProperty(a, name) }
func (a *ActivationObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(a, name) }
func (a *ActivationObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(a, name, desc)
}
