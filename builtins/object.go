package builtins

import (
	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// InstallObjectConstructor registers the global "Object" constructor
// (SPEC_FULL.md §5.4). Its invoke is a no-op: runtime.ConstructValue's
// newInstanceFor (runtime/call.go) already allocates `new Object()`'s
// instance as a PlainObject over fo.ExpectedPrototype before Construct
// ever runs, which for a native constructor falls back to Call — so the
// constructor body has nothing left to do. Called directly (no `new`),
// it returns that same fresh empty object, matching ECMAScript 5 §15.2.1.
func InstallObjectConstructor(e *engine.Engine) {
	ctor := nativeFunction(e, "Object", 1, func(args []value.Value, this value.Value) (value.Value, error) {
		if this.IsObject() {
			return this, nil
		}
		return e.InternObject(object.NewPlainObject(e.Proto.Object)), nil
	})
	ctor.ExpectedPrototype = object.NewPlainObject(e.Proto.Object)
	e.GlobalObject().SetProperty(value.NewString("Object"), e.InternObject(ctor))
}
