package isel

import (
	"reflect"

	"github.com/cwbudde/qjscore/runtime"
)

// helperAddr resolves a Go function value's entry address, the same way
// other_examples/64f2f987_launix-de-memcp__scm-jit_amd64.go.go obtains
// callable addresses for Go-side fallback logic — reflect.Value.Pointer
// on a func value returns its code entry PC, which CallAbsolute then
// treats as an ordinary call target.
func helperAddr(fn interface{}) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// helperAddrs resolves every runtime helper's address exactly once, rather
// than re-reflecting at each call site. Every entry is called through
// call_helper.go's callHelper: the target-writing helpers take a leading
// *Value out-param, the rest return a value.Value directly.
var helperAddrs = struct {
	add, sub, mul, div, mod       uintptr
	and, or, xor, shl, shr, ushr  uintptr
	neg, compl, not               uintptr
	lt, le, gt, ge                uintptr
	eq, neq, strictEq, strictNeq  uintptr
	getProperty, setProperty      uintptr
	getElement, setElement        uintptr
	getActivationProperty         uintptr
	setActivationProperty         uintptr
	getThisObject                 uintptr
	callValue, callProperty       uintptr
	callActivation                uintptr
	constructValue                uintptr
	constructProperty              uintptr
	constructActivation            uintptr
	typeofValue                   uintptr
	deleteMember, deleteSubscript uintptr
	deleteName                    uintptr
	builtinThrow                  uintptr
	createExceptionHandler        uintptr
	deleteExceptionHandler        uintptr
	getException                  uintptr
	clearException                uintptr
	foreachIteratorObject         uintptr
	foreachNextPropertyName       uintptr
	pushWith, popWith             uintptr
	declareVars                   uintptr
	internString                  uintptr
	makeClosure                   uintptr
	toBoolean                     uintptr
}{
	add: helperAddr(runtime.Add), sub: helperAddr(runtime.Sub), mul: helperAddr(runtime.Mul),
	div: helperAddr(runtime.Div), mod: helperAddr(runtime.Mod),
	and: helperAddr(runtime.And), or: helperAddr(runtime.Or), xor: helperAddr(runtime.Xor),
	shl: helperAddr(runtime.Shl), shr: helperAddr(runtime.Shr), ushr: helperAddr(runtime.Ushr),
	neg: helperAddr(runtime.Neg), compl: helperAddr(runtime.Compl), not: helperAddr(runtime.Not),

	lt: helperAddr(runtime.Lt), le: helperAddr(runtime.Le), gt: helperAddr(runtime.Gt), ge: helperAddr(runtime.Ge),
	eq: helperAddr(runtime.Eq), neq: helperAddr(runtime.Neq),
	strictEq: helperAddr(runtime.StrictEq), strictNeq: helperAddr(runtime.StrictNeq),

	getProperty: helperAddr(runtime.GetProperty), setProperty: helperAddr(runtime.SetProperty),
	getElement: helperAddr(runtime.GetElement), setElement: helperAddr(runtime.SetElement),
	getActivationProperty: helperAddr(runtime.GetActivationProperty),
	setActivationProperty: helperAddr(runtime.SetActivationProperty),
	getThisObject:         helperAddr(runtime.GetThisObject),

	callValue:      helperAddr(runtime.CallValueRaw),
	callProperty:   helperAddr(runtime.CallPropertyRaw),
	callActivation: helperAddr(runtime.CallActivationPropertyRaw),

	constructValue:      helperAddr(runtime.ConstructValueRaw),
	constructProperty:   helperAddr(runtime.ConstructPropertyRaw),
	constructActivation: helperAddr(runtime.ConstructActivationPropertyRaw),

	typeofValue:     helperAddr(runtime.TypeofValue),
	deleteMember:    helperAddr(runtime.DeleteMemberValue),
	deleteSubscript: helperAddr(runtime.DeleteSubscriptValue),
	deleteName:      helperAddr(runtime.DeleteNameValue),
	builtinThrow:    helperAddr(runtime.BuiltinThrow),

	createExceptionHandler: helperAddr(runtime.CreateExceptionHandlerRaw),
	deleteExceptionHandler: helperAddr(runtime.DeleteExceptionHandlerRaw),
	getException:           helperAddr(runtime.GetException),
	clearException:         helperAddr(runtime.ClearException),

	foreachIteratorObject:   helperAddr(runtime.ForeachIteratorObjectRaw),
	foreachNextPropertyName: helperAddr(runtime.ForeachNextPropertyName),

	pushWith: helperAddr(runtime.PushWith), popWith: helperAddr(runtime.PopWith),

	declareVars: helperAddr(runtime.DeclareVarsRaw),

	internString: helperAddr(runtime.InternString),
	makeClosure:  helperAddr(runtime.MakeClosure),

	toBoolean: helperAddr(runtime.ToBoolean),
}
