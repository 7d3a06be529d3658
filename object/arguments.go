package object

import (
	"strconv"

	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// ArgumentAccessor reads and writes one live argument slot of the backing
// Context (spec.md §3.7 "arguments object aliases formals", §8.4 scenario
// 6). *context.Context implements this.
type ArgumentAccessor interface {
	GetArgument(i int) value.Value
	SetArgument(i int, v value.Value)
	ArgumentCount() int
}

// ArgumentsObject is the array-like object of spec.md §4.2 whose indexed
// properties within [0, argumentCount) alias the live argument slots of
// its owning Context.
type ArgumentsObject struct {
	Base
	accessor ArgumentAccessor
}

func NewArgumentsObject(prototype Object, accessor ArgumentAccessor, callee *FunctionObject) *ArgumentsObject {
	b := NewBase(KindArguments, prototype, value.NewString("Arguments"))
	a := &ArgumentsObject{Base: b, accessor: accessor}
	if callee != nil {
		d := a.EnsureMembers().Insert(value.NewString("callee"))
		d.Kind = proptable.KindData
		d.Value = value.Undefined() // engine installs the real Function-tagged handle at construction
		d.Enumerable = proptable.TriUnset
		d.Writable = proptable.TriSet
		d.Configurable = proptable.TriSet
	}
	return a
}

func argIndex(name *value.String) (int, bool) {
	s := name.Go()
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (a *ArgumentsObject) GetProperty(name *value.String) value.Value {
	if name.Go() == "length" {
		return value.FromInt32(int32(a.accessor.ArgumentCount()))
	}
	if i, ok := argIndex(name); ok && i < a.accessor.ArgumentCount() {
		return a.accessor.GetArgument(i)
	}
	return DefaultGetProperty(a, name)
}

func (a *ArgumentsObject) SetProperty(name *value.String, v value.Value) {
	if i, ok := argIndex(name); ok && i < a.accessor.ArgumentCount() {
		a.accessor.SetArgument(i, v)
		return
	}
	DefaultSetProperty(a, name, v)
}

func (a *ArgumentsObject) HasProperty(name *value.String) bool {
	if name.Go() == "length" {
		return true
	}
	if i, ok := argIndex(name); ok && i < a.accessor.ArgumentCount() {
		return true
	}
	return DefaultHasProperty(a, name)
}

func (a *ArgumentsObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(a, name)
}
func (a *ArgumentsObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	if i, ok := argIndex(name); ok && i < a.accessor.ArgumentCount() {
		return &proptable.Descriptor{
			Kind: proptable.KindAccessor,
			Get: funcAccessible(func(args []value.Value, this value.Value) (value.Value, error) {
				return a.accessor.GetArgument(i), nil
			}),
			Set: funcAccessible(func(args []value.Value, this value.Value) (value.Value, error) {
				if len(args) > 0 {
					a.accessor.SetArgument(i, args[0])
				}
				return value.Undefined(), nil
			}),
			Enumerable:   proptable.TriSet,
			Writable:     proptable.TriSet,
			Configurable: proptable.TriSet,
		}
	}
	return DefaultGetPropertyDescriptor(a, name)
}
func (a *ArgumentsObject) CanSetProperty(name *value.String) bool { return true }
func (a *ArgumentsObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(a, name) }
func (a *ArgumentsObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(a, name, desc)
}
