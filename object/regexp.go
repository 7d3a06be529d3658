package object

import (
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// StringInterner mints a Value wrapping a Go string as an interned
// engine-owned String. Object variants whose synthetic properties need
// to produce String-tagged Values (RegExpObject.source, for instance)
// hold a reference to one rather than importing package engine directly
// — the same interface-to-avoid-circular-import trick proptable.Accessible
// uses for getters/setters.
type StringInterner interface {
	InternValue(s string) value.Value
}

// RegExpObject wraps a compiled regular expression. Several properties
// are synthesized rather than stored in the member table (spec.md §4.2).
type RegExpObject struct {
	Base
	Pattern    string
	Global     bool
	IgnoreCase bool
	Multiline  bool
	LastIndex  int32
	Intern     StringInterner
}

func NewRegExpObject(prototype Object, intern StringInterner, pattern string, global, ignoreCase, multiline bool) *RegExpObject {
	b := NewBase(KindRegExp, prototype, value.NewString("RegExp"))
	return &RegExpObject{
		Base: b, Pattern: pattern, Global: global, IgnoreCase: ignoreCase,
		Multiline: multiline, Intern: intern,
	}
}

func (o *RegExpObject) GetProperty(name *value.String) value.Value {
	switch name.Go() {
	case "source":
		if o.Intern != nil {
			return o.Intern.InternValue(o.Pattern)
		}
		return value.Undefined()
	case "global":
		return value.FromBool(o.Global)
	case "ignoreCase":
		return value.FromBool(o.IgnoreCase)
	case "multiline":
		return value.FromBool(o.Multiline)
	case "lastIndex":
		return value.FromInt32(o.LastIndex)
	}
	return DefaultGetProperty(o, name)
}

func (o *RegExpObject) SetProperty(name *value.String, v value.Value) {
	if name.Go() == "lastIndex" {
		o.LastIndex = v.ToInt32()
		return
	}
	DefaultSetProperty(o, name, v)
}

func (o *RegExpObject) GetOwnProperty(name *value.String) *proptable.Descriptor {
	return DefaultGetOwnProperty(o, name)
}
func (o *RegExpObject) GetPropertyDescriptor(name *value.String) *proptable.Descriptor {
	return DefaultGetPropertyDescriptor(o, name)
}
func (o *RegExpObject) CanSetProperty(name *value.String) bool {
	if name.Go() == "lastIndex" {
		return true
	}
	return DefaultCanSetProperty(o, name)
}
func (o *RegExpObject) HasProperty(name *value.String) bool {
	switch name.Go() {
	case "source", "global", "ignoreCase", "multiline", "lastIndex":
		return true
	}
	return DefaultHasProperty(o, name)
}
func (o *RegExpObject) DeleteProperty(name *value.String) bool { return DefaultDeleteProperty(o, name) }
func (o *RegExpObject) DefineOwnProperty(name *value.String, desc *proptable.Descriptor) bool {
	return DefaultDefineOwnProperty(o, name, desc)
}
