package runtime

import (
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// Typeof implements `__qmljs_builtin_typeof(arg, ctx)` (spec.md §4.4.7).
func Typeof(ctx *context.Context, v value.Value) *value.String {
	switch v.Tag() {
	case value.TagUndefined:
		return value.NewString("undefined")
	case value.TagNull:
		return value.NewString("object") // ECMAScript's famous typeof null == "object"
	case value.TagBoolean:
		return value.NewString("boolean")
	case value.TagInteger, value.TagNumber:
		return value.NewString("number")
	case value.TagString:
		return value.NewString("string")
	case value.TagObject:
		if o := objectOf(ctx, v); o != nil {
			if _, ok := o.(*object.FunctionObject); ok {
				return value.NewString("function")
			}
		}
		return value.NewString("object")
	default:
		return value.NewString("undefined")
	}
}

// TypeofValue wraps Typeof's result as an interned String-tagged Value,
// the form JIT-generated code (which only ever handles Value words, never
// a bare *value.String) can store into a Temp directly.
func TypeofValue(ctx *context.Context, v value.Value) value.Value {
	return resolverOf(ctx).InternValue(Typeof(ctx, v).Go())
}

// DeleteMember implements `__qmljs_delete_member` (delete with a Member
// target, spec.md §4.4.7).
func DeleteMember(ctx *context.Context, base value.Value, name *value.String) bool {
	o := objectOf(ctx, base)
	if o == nil {
		return true
	}
	return o.DeleteProperty(name)
}

// DeleteSubscript implements `__qmljs_delete_subscript` (delete with a
// Subscript target).
func DeleteSubscript(ctx *context.Context, base, index value.Value) bool {
	o := objectOf(ctx, base)
	if o == nil {
		return true
	}
	if arr, ok := o.(*object.ArrayObject); ok && index.IsInteger() {
		arr.Assign(int(index.ToInt32()), value.Undefined())
		return true
	}
	return o.DeleteProperty(subscriptName(ctx, index))
}

// DeleteName implements `__qmljs_delete_name` (delete with a Name target),
// searching the scope chain exactly as GetActivationProperty. Per spec.md
// §4.4.7, a Temp target (no named binding at all) instead lowers to a
// literal `false` at the selector level and never reaches this helper.
func DeleteName(ctx *context.Context, name *value.String) bool {
	for c := ctx; c != nil; c = c.Outer {
		if c.Activation != nil {
			return c.Activation.DeleteProperty(name)
		}
	}
	return true
}

// DeleteMemberValue, DeleteSubscriptValue and DeleteNameValue wrap the
// bool-returning delete helpers above as Value results, the form
// JIT-generated code stores into a Temp directly.
func DeleteMemberValue(ctx *context.Context, base value.Value, name *value.String) value.Value {
	return value.FromBool(DeleteMember(ctx, base, name))
}

func DeleteSubscriptValue(ctx *context.Context, base, index value.Value) value.Value {
	return value.FromBool(DeleteSubscript(ctx, base, index))
}

func DeleteNameValue(ctx *context.Context, name *value.String) value.Value {
	return value.FromBool(DeleteName(ctx, name))
}

// BuiltinThrow implements `builtin_throw(arg, ctx)` (spec.md §4.4.7, §3.9).
func BuiltinThrow(ctx *context.Context, v value.Value) {
	ctx.Throw(v)
}

// CreateExceptionHandler implements `create_exception_handler`: installs a
// handler frame on the engine's unwind stack naming the IR block subsequent
// throws should resume at (SPEC_FULL.md §5.6 — the Go substitute for
// `setjmp`, since control transfer happens via the ordinary
// exception-check-and-branch sequence of §4.4.8, not a host-level jump).
func CreateExceptionHandler(ctx *context.Context, stack *context.UnwindStack, resumeBlock int) {
	stack.Push(ctx, resumeBlock)
}

// DeleteExceptionHandler implements `delete_exception_handler`: pops the
// top unwind frame.
func DeleteExceptionHandler(stack *context.UnwindStack) {
	stack.Pop()
}

// CreateExceptionHandlerRaw resolves the engine's UnwindStack and installs
// a handler frame naming resumeBlock, the two-argument (beyond ctx) shape
// JIT-generated code calls (the stack pointer itself is a Go-side detail
// the selector has no compile-time address for).
func CreateExceptionHandlerRaw(ctx *context.Context, resumeBlock int32) {
	CreateExceptionHandler(ctx, resolverOf(ctx).UnwindStack(), int(resumeBlock))
}

// DeleteExceptionHandlerRaw is DeleteExceptionHandler's JIT-callable form.
func DeleteExceptionHandlerRaw(ctx *context.Context) {
	DeleteExceptionHandler(resolverOf(ctx).UnwindStack())
}

// GetException implements `get_exception`: reads ctx.exceptionValue. It
// does not itself clear the exception state — a handler block that reads
// the thrown value and then falls through to ordinary control flow must
// still call ClearException, or the stale HasUncaughtException would
// make the function's eventual Ret look like an unwind past its own
// catch (SPEC_FULL.md §4.4.7).
func GetException(ctx *context.Context) value.Value {
	return ctx.ExceptionValue
}

// ClearException implements `clear_exception`: resets ctx's exception
// state once a handler block has taken control, the explicit analogue of
// a host try/catch's implicit "catch clears the pending exception"
// (ctx.ClearException's doc comment anticipates exactly this caller).
func ClearException(ctx *context.Context) {
	ctx.ClearException()
}

// ForeachIteratorObject implements `foreach_iterator_object`: allocates a
// ForEachIteratorObject over obj (spec.md §4.4.7, §4.4.9).
func ForeachIteratorObject(ctx *context.Context, prototype object.Object, obj value.Value) value.Value {
	res := resolverOf(ctx)
	o := objectOf(ctx, obj)
	it := object.NewForEachIteratorObject(prototype, o)
	return res.InternObject(it)
}

// ForeachIteratorObjectRaw is ForeachIteratorObject's JIT-callable form.
// Iterator objects are never script-visible through their prototype chain
// (only NextPropertyName matters), so no activation-prototype lookup is
// needed here, same as DeclareVarsRaw's nil activationPrototype below.
func ForeachIteratorObjectRaw(ctx *context.Context, obj value.Value) value.Value {
	return ForeachIteratorObject(ctx, nil, obj)
}

// ForeachNextPropertyName implements `foreach_next_property_name`:
// advances the iterator, returning null at exhaustion (spec.md §4.4.9).
func ForeachNextPropertyName(ctx *context.Context, iterator value.Value) value.Value {
	res := resolverOf(ctx)
	o := objectOf(ctx, iterator)
	it, ok := o.(*object.ForEachIteratorObject)
	if !ok {
		return value.Null()
	}
	name := it.NextPropertyName()
	if name == nil {
		return value.Null()
	}
	return res.InternValue(name.Go())
}

// PushWith implements `push_with`: pushes obj as the innermost `with`
// scope (spec.md §4.4.7, §11).
func PushWith(ctx *context.Context, obj value.Value) {
	if o := objectOf(ctx, obj); o != nil {
		ctx.PushWith(o)
	}
}

// PopWith implements `pop_with`: pops the innermost `with` scope.
func PopWith(ctx *context.Context) {
	ctx.PopWith()
}

// DeclareVars implements `declare_vars`: declares each listed name in the
// current activation, materializing it if needed (spec.md §4.4.7).
// deletable mirrors the distinction between `var` bindings (non-deletable)
// and the implicit bindings `eval` can create (deletable) — out of CORE
// scope here since eval is not modeled, but the flag is threaded through
// for forward compatibility with the builtin table's declared contract.
func DeclareVars(ctx *context.Context, activationPrototype object.Object, names []string, deletable []bool) {
	// The activation, if not already materialized by the function prologue
	// with its compile-time-known local/formal names, is created empty
	// here: declare_vars-introduced names have no backing Locals slot, so
	// they become ordinary Data properties on the activation's member
	// table below rather than Accessor descriptors aliasing a slot.
	act := ctx.EnsureActivation(activationPrototype, nil)
	for i, n := range names {
		key := value.NewString(n)
		if act.Base().Members != nil && act.Base().Members.Find(key) != nil {
			continue
		}
		act.SetProperty(key, value.Undefined())
		if i < len(deletable) {
			if d := act.Base().Members.Find(key); d != nil {
				if deletable[i] {
					d.Configurable = proptable.TriSet
				} else {
					d.Configurable = proptable.TriUnset
				}
			}
		}
	}
}

// DeclareVarsRaw is the JIT entry point for DeclareVars: names and
// deletable are compile-time-constant slices the selector allocates once
// and embeds the address of as an immediate (the same literal-pointer-
// patching technique used for interned string/closure literals), since
// neither can be recomputed from a Value at the call site.
func DeclareVarsRaw(ctx *context.Context, namesPtr *[]string, deletablePtr *[]bool) {
	DeclareVars(ctx, nil, *namesPtr, *deletablePtr)
}

// NewContext implements `__qmljs_new_context` (call prologue, ABI variant
// 1, spec.md §4.4.6): allocates a fresh callee Context linked to parent.
// slotCount must be the callee function's TempCount, not its LocalCount —
// see context.New.
func NewContext(engine context.EngineRef, parent *context.Context, outer *context.Context, slotCount int, localNames []string, args []value.Value, formalNames []string) *context.Context {
	return context.New(engine, parent, outer, slotCount, localNames, args, formalNames)
}

// DisposeContext implements `__qmljs_dispose_context` (call epilogue).
func DisposeContext(ctx *context.Context) {
	ctx.Dispose()
}
