package fixtures

import (
	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// InstallPrototypeConstructor registers a global native "C" constructor
// whose instances resolve `.x` through the prototype chain rather than an
// own property (spec.md §8.4 scenario 3). newInstanceFor
// (runtime/call.go) already allocates `new C()`'s instance as a
// PlainObject over fo.ExpectedPrototype before Construct ever runs, and a
// native constructor with no Constructor func falls back to Call — so
// the invoke body below never needs to touch `this` at all; setting
// ExpectedPrototype to an object carrying "x" is the entire fixture.
func InstallPrototypeConstructor(e *engine.Engine) {
	proto := object.NewPlainObject(e.Proto.Object)
	proto.SetProperty(value.NewString("x"), value.FromInt32(10))

	ctor := object.NewFunctionObject(e.Proto.Function, value.NewString("C"),
		func(args []value.Value, this value.Value) (value.Value, error) {
			return value.Undefined(), nil
		}, nil)
	ctor.IsNative = true
	ctor.ExpectedPrototype = proto
	e.GlobalObject().SetProperty(value.NewString("C"), e.InternObject(ctor))
}

// PrototypeLookup builds `function g() { var c = new C(); return c.x; }`.
// Call InstallPrototypeConstructor on the Engine before Run-ing this.
func PrototypeLookup() *ir.Function {
	c := ir.Temp(0)
	entry := block("entry",
		ir.Move{Target: ir.TempRef{Temp: c}, Source: ir.New{Base: ir.Name{Ident: "C"}}},
		ir.Ret{Value: ir.Member{Base: ir.TempRef{Temp: c}, Name: "x"}},
	)
	return &ir.Function{
		Name:       "g",
		LocalCount: 1,
		TempCount:  1,
		Blocks:     wireBlocks(entry),
	}
}
