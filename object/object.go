// Package object implements the prototype-chained object model (spec.md
// §3.5, §4.2) and its variants: arrays, functions, activation/arguments
// objects and the for-in iterator.
package object

import (
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// Kind discriminates the concrete variant of an Object, the "tagged
// variant with a discriminator field" strategy of Design Notes §9.1 row 1
// (the source's deep virtual hierarchy, re-architected for Go).
type Kind int

const (
	KindPlain Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindArray
	KindRegExp
	KindError
	KindFunction
	KindActivation
	KindArguments
	KindForEachIterator
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "Object"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindDate:
		return "Date"
	case KindArray:
		return "Array"
	case KindRegExp:
		return "RegExp"
	case KindError:
		return "Error"
	case KindFunction:
		return "Function"
	case KindActivation:
		return "Activation"
	case KindArguments:
		return "Arguments"
	case KindForEachIterator:
		return "ForEachIterator"
	default:
		return "Unknown"
	}
}

// Object is the polymorphic hook set every variant exposes (spec.md
// §4.2). Concrete types embed *Base and get the default (plain-object)
// implementations via the Default* helpers below, overriding only the
// hooks their contract changes.
type Object interface {
	Base() *Base

	GetProperty(name *value.String) value.Value
	GetOwnProperty(name *value.String) *proptable.Descriptor
	GetPropertyDescriptor(name *value.String) *proptable.Descriptor
	SetProperty(name *value.String, v value.Value)
	CanSetProperty(name *value.String) bool
	HasProperty(name *value.String) bool
	DeleteProperty(name *value.String) bool
	DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool
}

// Base is the common record embedded by every Object variant (spec.md §3.5).
type Base struct {
	Kind       Kind
	Prototype  Object // nil at the end of the chain
	Klass      *value.String
	Members    *proptable.Table // lazily allocated
	Extensible bool
}

// Base satisfies part of the Object interface so embedders inherit it.
func (b *Base) Base() *Base { return b }

// EnsureMembers lazily allocates the property table (spec.md §3.5:
// "members (PropertyTable*, lazily allocated)").
func (b *Base) EnsureMembers() *proptable.Table {
	if b.Members == nil {
		b.Members = proptable.New()
	}
	return b.Members
}

// NewBase constructs a Base with the given prototype and class tag,
// extensible by default.
func NewBase(kind Kind, prototype Object, klass *value.String) Base {
	return Base{Kind: kind, Prototype: prototype, Klass: klass, Extensible: true}
}

// --- Default (plain-object) behavior, shared by every variant unless overridden ---

// DefaultGetOwnProperty restricts lookup to o's own table (spec.md §3.5).
func DefaultGetOwnProperty(o Object, name *value.String) *proptable.Descriptor {
	b := o.Base()
	if b.Members == nil {
		return nil
	}
	return b.Members.Find(name)
}

// DefaultGetPropertyDescriptor walks the prototype chain, returning the
// first descriptor found (spec.md §3.5). The chain is assumed acyclic
// (spec.md invariant); callers that build prototype links are responsible
// for preserving that invariant.
func DefaultGetPropertyDescriptor(o Object, name *value.String) *proptable.Descriptor {
	for cur := o; cur != nil; cur = cur.Base().Prototype {
		if d := cur.GetOwnProperty(name); d != nil {
			return d
		}
	}
	return nil
}

// DefaultHasProperty reports whether GetPropertyDescriptor finds name
// anywhere on the chain (spec.md §8.1 testable property).
func DefaultHasProperty(o Object, name *value.String) bool {
	return o.GetPropertyDescriptor(name) != nil
}

// DefaultGetProperty resolves name to a Value: Data descriptors return
// their stored Value, Accessor descriptors call Get (or return undefined
// if Get is nil), and a missing property is undefined.
func DefaultGetProperty(o Object, name *value.String) value.Value {
	d := o.GetPropertyDescriptor(name)
	if d == nil {
		return value.Undefined()
	}
	switch d.Kind {
	case proptable.KindData:
		return d.Value
	case proptable.KindAccessor:
		if d.Get == nil {
			return value.Undefined()
		}
		v, err := d.Get.Call(nil, value.FromObjectHandle(0))
		if err != nil {
			return value.Undefined()
		}
		return v
	default:
		return value.Undefined()
	}
}

// DefaultCanSetProperty reports whether a set of name would succeed: it
// fails only if a non-writable same-named Data property exists anywhere
// on the chain, or an Accessor property exists with no setter (spec.md
// §3.5, permissive non-strict-mode behavior per DESIGN.md Open Question 1).
func DefaultCanSetProperty(o Object, name *value.String) bool {
	d := o.GetPropertyDescriptor(name)
	if d == nil {
		return o.Base().Extensible
	}
	switch d.Kind {
	case proptable.KindData:
		return d.Writable != proptable.TriUnset
	case proptable.KindAccessor:
		return d.Set != nil
	default:
		return true
	}
}

// DefaultSetProperty implements spec.md §3.5's setProperty contract:
// writes are silently ignored when a non-writable same-named property
// exists anywhere on the chain; otherwise the property is created or
// updated on o's own table (never on an ancestor), and an accessor
// setter is invoked if present.
func DefaultSetProperty(o Object, name *value.String, v value.Value) {
	existing := o.GetPropertyDescriptor(name)
	if existing != nil {
		switch existing.Kind {
		case proptable.KindAccessor:
			if existing.Set != nil {
				existing.Set.Call([]value.Value{v}, value.FromObjectHandle(0))
			}
			return
		case proptable.KindData:
			if existing.Writable == proptable.TriUnset {
				return // silently ignored, spec.md §3.5
			}
		}
	}
	if !o.Base().Extensible && o.GetOwnProperty(name) == nil {
		return // extensible == false: new properties cannot be created
	}
	own := o.Base().EnsureMembers().Insert(name)
	own.Kind = proptable.KindData
	own.Value = v
	if own.Writable == proptable.TriUnspecified {
		own.Writable = proptable.TriSet
	}
	if own.Enumerable == proptable.TriUnspecified {
		own.Enumerable = proptable.TriSet
	}
	if own.Configurable == proptable.TriUnspecified {
		own.Configurable = proptable.TriSet
	}
}

// DefaultDeleteProperty removes name from o's own table, matching
// proptable.Table.Remove's "always true" contract.
func DefaultDeleteProperty(o Object, name *value.String) bool {
	if o.Base().Members == nil {
		return true
	}
	return o.Base().Members.Remove(name)
}

// DefaultDefineOwnProperty installs desc (or merges non-Unspecified
// fields of desc into an existing own descriptor) directly, bypassing
// writability checks — the explicit-definition path of Object.defineProperty.
func DefaultDefineOwnProperty(o Object, name *value.String, desc *proptable.Descriptor) bool {
	own := o.Base().EnsureMembers().Insert(name)
	*own = *desc
	return true
}

// IsEnumerable reports whether d should be visited by for-in (spec.md
// §4.4.9): explicit TriSet, or TriUnspecified treated as enumerable by
// default (matching ECMAScript's default-true for internally created
// data properties).
func IsEnumerable(d *proptable.Descriptor) bool {
	return d.Enumerable != proptable.TriUnset
}

// PrototypeChainContains reports whether candidate appears anywhere in
// o's own prototype chain, the acyclicity check a prototype-assignment
// helper should run before linking (spec.md §3.5 invariant).
func PrototypeChainContains(o, candidate Object) bool {
	for cur := o; cur != nil; cur = cur.Base().Prototype {
		if cur == candidate {
			return true
		}
	}
	return false
}
