package runtime

import (
	"unsafe"

	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/value"
)

// argvFrom reinterprets the contiguous argv stack area ABI variant 2
// marshals arguments into (spec.md §4.4.6) as a Go slice, without a copy.
// The generated code owns that memory only for the duration of the call,
// which is exactly the lifetime unsafe.Slice needs here.
func argvFrom(ptr *value.Value, argc int32) []value.Value {
	if argc == 0 {
		return nil
	}
	return unsafe.Slice(ptr, int(argc))
}

// The Raw variants below are the actual symbols generated code calls
// through CallAbsolute: every argument is a pointer or a single 64-bit
// Value, so each fits within System V AMD64's six integer argument
// registers without needing a struct-by-value marshaling scheme.

// CallValueRaw is the JIT entry point for CallValue.
func CallValueRaw(ctx *context.Context, result *value.Value, callee, this value.Value, argvPtr *value.Value, argc int32) {
	CallValue(ctx, result, callee, this, argvFrom(argvPtr, argc))
}

// CallPropertyRaw is the JIT entry point for CallProperty.
func CallPropertyRaw(ctx *context.Context, result *value.Value, base value.Value, name *value.String, argvPtr *value.Value, argc int32) {
	CallProperty(ctx, result, base, name, argvFrom(argvPtr, argc))
}

// CallActivationPropertyRaw is the JIT entry point for
// CallActivationProperty.
func CallActivationPropertyRaw(ctx *context.Context, result *value.Value, name *value.String, argvPtr *value.Value, argc int32) {
	CallActivationProperty(ctx, result, name, argvFrom(argvPtr, argc))
}

// ConstructValueRaw is the JIT entry point for ConstructValue.
func ConstructValueRaw(ctx *context.Context, result *value.Value, callee value.Value, argvPtr *value.Value, argc int32) {
	ConstructValue(ctx, result, callee, argvFrom(argvPtr, argc))
}

// ConstructPropertyRaw is the JIT entry point for ConstructProperty.
func ConstructPropertyRaw(ctx *context.Context, result *value.Value, base value.Value, name *value.String, argvPtr *value.Value, argc int32) {
	ConstructProperty(ctx, result, base, name, argvFrom(argvPtr, argc))
}

// ConstructActivationPropertyRaw is the JIT entry point for
// ConstructActivationProperty.
func ConstructActivationPropertyRaw(ctx *context.Context, result *value.Value, name *value.String, argvPtr *value.Value, argc int32) {
	ConstructActivationProperty(ctx, result, name, argvFrom(argvPtr, argc))
}
