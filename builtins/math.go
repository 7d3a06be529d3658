// Package builtins installs the small set of native functions whose
// calling contract (arity, this-coercion, NaN propagation) the CORE must
// get right without reimplementing a full numeric or string library
// (SPEC_FULL.md §6.7). Grounded on the teacher's internal/interp/builtins
// package-per-concern layout and on original_source/qv4mathobject.h/.cpp's
// exported method list.
package builtins

import (
	"math"

	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// toNumber mirrors runtime's (unexported) ToNumber restricted to the tags
// the CORE represents; builtins cannot reach runtime's unexported helper,
// so it is reproduced here rather than widening runtime's surface just
// for this package's sake.
func toNumber(v value.Value) float64 {
	switch v.Tag() {
	case value.TagNumber:
		return v.ToDouble()
	case value.TagInteger:
		return float64(v.ToInt32())
	case value.TagBoolean:
		if v.ToBool() {
			return 1
		}
		return 0
	case value.TagNull:
		return 0
	default:
		return math.NaN()
	}
}

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined()
}

func numericResult(d float64) value.Value {
	if i := int32(d); float64(i) == d {
		return value.FromInt32(i)
	}
	return value.FromDouble(d)
}

func nativeFunction(e *engine.Engine, name string, arity int32, fn object.Invoker) *object.FunctionObject {
	fo := object.NewFunctionObject(e.Proto.Function, value.NewString(name), fn, nil)
	fo.IsNative = true
	fo.FormalParameterList = make([]string, arity)
	return fo
}

// InstallMath registers Math.floor/abs/max/min/pow on the global object
// (SPEC_FULL.md §6.7). Math itself is a plain object, not a constructor
// (ECMAScript 5 §15.8).
func InstallMath(e *engine.Engine) {
	mathObj := object.NewPlainObject(e.Proto.Object)

	install := func(name string, arity int32, fn object.Invoker) {
		mathObj.SetProperty(value.NewString(name), e.InternObject(nativeFunction(e, name, arity, fn)))
	}

	install("floor", 1, func(args []value.Value, this value.Value) (value.Value, error) {
		return numericResult(math.Floor(toNumber(arg(args, 0)))), nil
	})
	install("abs", 1, func(args []value.Value, this value.Value) (value.Value, error) {
		return numericResult(math.Abs(toNumber(arg(args, 0)))), nil
	})
	install("max", 2, func(args []value.Value, this value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.FromDouble(math.Inf(-1)), nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n := toNumber(a)
			if math.IsNaN(n) {
				return value.FromDouble(math.NaN()), nil
			}
			if n > best {
				best = n
			}
		}
		return numericResult(best), nil
	})
	install("min", 2, func(args []value.Value, this value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.FromDouble(math.Inf(1)), nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n := toNumber(a)
			if math.IsNaN(n) {
				return value.FromDouble(math.NaN()), nil
			}
			if n < best {
				best = n
			}
		}
		return numericResult(best), nil
	})
	install("pow", 2, func(args []value.Value, this value.Value) (value.Value, error) {
		return numericResult(math.Pow(toNumber(arg(args, 0)), toNumber(arg(args, 1)))), nil
	})

	e.GlobalObject().SetProperty(value.NewString("Math"), e.InternObject(mathObj))
}
