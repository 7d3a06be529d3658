package object

import (
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// PlainObject is an ordinary object with no special property overrides —
// the behavior every Default* helper in object.go implements.
type PlainObject struct{ Base }

// NewPlainObject creates a plain object with the given prototype.
func NewPlainObject(prototype Object) *PlainObject {
	b := NewBase(KindPlain, prototype, value.NewString("Object"))
	return &PlainObject{Base: b}
}

func (o *PlainObject) GetProperty(name *value.String) value.Value { return DefaultGetProperty(o, name) }
func (o *PlainObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *PlainObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *PlainObject) SetProperty(name *value.String, v value.Value) {
	DefaultSetProperty(o, name, v)
}
func (o *PlainObject) CanSetProperty(name *value.String) bool { return DefaultCanSetProperty(o, name) }
func (o *PlainObject) HasProperty(name *value.String) bool    { return DefaultHasProperty(o, name) }
func (o *PlainObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(o, name) }
func (o *PlainObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}

// wrapper holds a boxed primitive (Boolean/Number/String wrapper objects,
// spec.md §3.5 "Behavior is polymorphic across variants").
type wrapper struct {
	Base
	Primitive value.Value
}

// BooleanObject is the Boolean wrapper object.
type BooleanObject struct{ wrapper }

func NewBooleanObject(prototype Object, v value.Value) *BooleanObject {
	return &BooleanObject{wrapper{Base: NewBase(KindBoolean, prototype, value.NewString("Boolean")), Primitive: v}}
}

func (o *BooleanObject) GetProperty(name *value.String) value.Value { return DefaultGetProperty(o, name) }
func (o *BooleanObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *BooleanObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *BooleanObject) SetProperty(name *value.String, v value.Value) {
	DefaultSetProperty(o, name, v)
}
func (o *BooleanObject) CanSetProperty(name *value.String) bool { return DefaultCanSetProperty(o, name) }
func (o *BooleanObject) HasProperty(name *value.String) bool    { return DefaultHasProperty(o, name) }
func (o *BooleanObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(o, name) }
func (o *BooleanObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}

// NumberObject is the Number wrapper object.
type NumberObject struct{ wrapper }

func NewNumberObject(prototype Object, v value.Value) *NumberObject {
	return &NumberObject{wrapper{Base: NewBase(KindNumber, prototype, value.NewString("Number")), Primitive: v}}
}

func (o *NumberObject) GetProperty(name *value.String) value.Value { return DefaultGetProperty(o, name) }
func (o *NumberObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *NumberObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *NumberObject) SetProperty(name *value.String, v value.Value) { DefaultSetProperty(o, name, v) }
func (o *NumberObject) CanSetProperty(name *value.String) bool       { return DefaultCanSetProperty(o, name) }
func (o *NumberObject) HasProperty(name *value.String) bool          { return DefaultHasProperty(o, name) }
func (o *NumberObject) DeleteProperty(name *value.String) bool       { return DefaultDeleteProperty(o, name) }
func (o *NumberObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}

// StringObject is the String wrapper object. GetProperty synthesizes only
// "length"; indexed names ("0", "1", ...) are not mapped to characters and
// go through the default table lookup like any other name.
type StringObject struct {
	wrapper
	Value *value.String
}

func NewStringObject(prototype Object, s *value.String) *StringObject {
	return &StringObject{wrapper: wrapper{Base: NewBase(KindString, prototype, value.NewString("String"))}, Value: s}
}

func (o *StringObject) GetProperty(name *value.String) value.Value {
	if name.Go() == "length" {
		return value.FromInt32(int32(o.Value.Len()))
	}
	return DefaultGetProperty(o, name)
}
func (o *StringObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *StringObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *StringObject) SetProperty(name *value.String, v value.Value) { DefaultSetProperty(o, name, v) }
func (o *StringObject) CanSetProperty(name *value.String) bool       { return DefaultCanSetProperty(o, name) }
func (o *StringObject) HasProperty(name *value.String) bool          { return DefaultHasProperty(o, name) }
func (o *StringObject) DeleteProperty(name *value.String) bool       { return DefaultDeleteProperty(o, name) }
func (o *StringObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}

// DateObject wraps a time value as milliseconds since epoch, matching
// ECMAScript's internal [[DateValue]].
type DateObject struct {
	wrapper
	MillisSinceEpoch float64
}

func NewDateObject(prototype Object, millis float64) *DateObject {
	return &DateObject{wrapper: wrapper{Base: NewBase(KindDate, prototype, value.NewString("Date"))}, MillisSinceEpoch: millis}
}

func (o *DateObject) GetProperty(name *value.String) value.Value { return DefaultGetProperty(o, name) }
func (o *DateObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *DateObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *DateObject) SetProperty(name *value.String, v value.Value) { DefaultSetProperty(o, name, v) }
func (o *DateObject) CanSetProperty(name *value.String) bool       { return DefaultCanSetProperty(o, name) }
func (o *DateObject) HasProperty(name *value.String) bool          { return DefaultHasProperty(o, name) }
func (o *DateObject) DeleteProperty(name *value.String) bool       { return DefaultDeleteProperty(o, name) }
func (o *DateObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}

// ErrorObject wraps TypeError/ReferenceError/SyntaxError/RangeError and
// user-thrown Error instances (spec.md §7). Name and Message are plain Go
// strings; the engine that constructs an ErrorObject is responsible for
// also installing "name"/"message" as ordinary own Data properties
// (via SetProperty) so GetProperty needs no special case here — unlike
// RegExpObject, ECMAScript Error objects carry no synthetic accessors.
type ErrorObject struct {
	Base
	Name    string
	Message string
}

func NewErrorObject(prototype Object, name, message string) *ErrorObject {
	b := NewBase(KindError, prototype, value.NewString("Error"))
	return &ErrorObject{Base: b, Name: name, Message: message}
}

func (o *ErrorObject) GetProperty(name *value.String) value.Value { return DefaultGetProperty(o, name) }
func (o *ErrorObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *ErrorObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *ErrorObject) SetProperty(name *value.String, v value.Value) { DefaultSetProperty(o, name, v) }
func (o *ErrorObject) CanSetProperty(name *value.String) bool       { return DefaultCanSetProperty(o, name) }
func (o *ErrorObject) HasProperty(name *value.String) bool          { return DefaultHasProperty(o, name) }
func (o *ErrorObject) DeleteProperty(name *value.String) bool       { return DefaultDeleteProperty(o, name) }
func (o *ErrorObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}
