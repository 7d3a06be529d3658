package builtins

import (
	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// thisString resolves `this` to the *value.String it wraps: a String-tagged
// primitive Value resolves through the engine's string table directly, a
// StringObject (the `new String(...)` wrapper) through its boxed Value
// field — both are valid `this` bindings for a String.prototype method
// called either as "abc".toString() or (new String("abc")).valueOf().
func thisString(e *engine.Engine, this value.Value) *value.String {
	if this.IsString() {
		return e.String(this.StringHandle())
	}
	if this.IsObject() {
		if so, ok := e.Object(this.ObjectHandle()).(*object.StringObject); ok {
			return so.Value
		}
	}
	return value.NewString("")
}

// InstallStringPrototype registers String.prototype.toString/valueOf/
// toLocaleUpperCase/toLocaleLowerCase (SPEC_FULL.md §6.7; the latter two
// are the home for the golang.org/x/text/cases wiring already implemented
// on *value.String).
func InstallStringPrototype(e *engine.Engine) {
	install := func(name string, fn object.Invoker) {
		e.Proto.String.SetProperty(value.NewString(name), e.InternObject(nativeFunction(e, name, 0, fn)))
	}

	install("toString", func(args []value.Value, this value.Value) (value.Value, error) {
		return e.InternValue(thisString(e, this).Go()), nil
	})
	install("valueOf", func(args []value.Value, this value.Value) (value.Value, error) {
		return e.InternValue(thisString(e, this).Go()), nil
	})
	install("toLocaleUpperCase", func(args []value.Value, this value.Value) (value.Value, error) {
		return e.InternValue(thisString(e, this).ToLocaleUpperCase().Go()), nil
	})
	install("toLocaleLowerCase", func(args []value.Value, this value.Value) (value.Value, error) {
		return e.InternValue(thisString(e, this).ToLocaleLowerCase().Go()), nil
	})
}
