// Package runtime implements the helper function family of spec.md §6.4:
// the ECMAScript-coercion-performing operations the instruction selector
// calls for every Binop/Unop (it emits no inline fast path, see package
// isel), plus every helper the builtin-call table of §4.4.7 dispatches to.
// Each function's doc comment names its ABI symbol (the spec's `__qmljs_`
// prefix) since exported Go identifiers cannot start with an underscore;
// package isel's helperAddrs table holds each function's entry address
// for the selector to call.
package runtime

import (
	"math"

	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/value"
)

// toNumber implements ECMAScript ToNumber for the subset of tags the CORE
// represents (spec.md §3.1): Number is identity, Boolean/Integer convert
// directly, Undefined is NaN, Null is +0. String/Object ToNumber/ToPrimitive
// are out of CORE scope (spec.md §1 Non-goals) and report NaN.
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

// ToBoolean implements ECMAScript 5 §9.2 ToBoolean over the CORE tag
// subset. Its result is a plain 0/1 word, not a tagged Value: a packed
// Value's raw bit pattern is never a valid truthiness test on its own
// (TagNull/TagBoolean/TagInteger all pack to a nonzero word even when the
// value itself is falsy, since their tag alone occupies the high 32
// bits), so `isel`'s CJump lowering calls through this helper rather than
// testing Cond's evaluated register directly.
func ToBoolean(ctx *context.Context, v value.Value) uint64 {
	switch v.Tag() {
	case value.TagUndefined, value.TagNull:
		return 0
	case value.TagBoolean, value.TagInteger:
		if v.ToBool() {
			return 1
		}
		return 0
	case value.TagString:
		if resolverOf(ctx).String(v.StringHandle()).Len() > 0 {
			return 1
		}
		return 0
	case value.TagObject:
		return 1
	default: // TagNumber
		d := v.ToDouble()
		if d == 0 || math.IsNaN(d) {
			return 0
		}
		return 1
	}
}

// Add implements `__qmljs_add`: full ECMAScript `+`, restricted to the
// Number/Integer/Boolean/Undefined/Null tags the CORE models (string
// concatenation is an out-of-CORE ToPrimitive concern, spec.md §1).
func Add(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = numericResult(toNumber(left) + toNumber(right))
}

// Sub implements `__qmljs_sub`.
func Sub(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = numericResult(toNumber(left) - toNumber(right))
}

// Mul implements `__qmljs_mul`.
func Mul(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = numericResult(toNumber(left) * toNumber(right))
}

// Div implements `__qmljs_div`.
func Div(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = numericResult(toNumber(left) / toNumber(right))
}

// Mod implements `__qmljs_mod` (ECMAScript `%` is a floating remainder,
// not a truncating integer remainder).
func Mod(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = numericResult(math.Mod(toNumber(left), toNumber(right)))
}

// numericResult packs a float64 as an Integer Value when it round-trips
// exactly (so an Integer result that fits in int32 stays Integer-tagged),
// otherwise as a Number Value.
func numericResult(d float64) value.Value {
	if i := int32(d); float64(i) == d {
		return value.FromInt32(i)
	}
	return value.FromDouble(d)
}

// And implements `__qmljs_and` (bitwise, ToInt32 on both operands).
func And(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromInt32(value.ToInt32(toNumber(left)) & value.ToInt32(toNumber(right)))
}

// Or implements `__qmljs_or`.
func Or(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromInt32(value.ToInt32(toNumber(left)) | value.ToInt32(toNumber(right)))
}

// Xor implements `__qmljs_xor`.
func Xor(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromInt32(value.ToInt32(toNumber(left)) ^ value.ToInt32(toNumber(right)))
}

// shiftMask masks a shift amount to 5 bits per spec.md §4.4.5 ("shift
// amounts mask the right operand to 5 bits (31)").
func shiftMask(right value.Value) uint32 {
	return uint32(value.ToInt32(toNumber(right))) & 0x1f
}

// Shl implements `__qmljs_shl`.
func Shl(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromInt32(value.ToInt32(toNumber(left)) << shiftMask(right))
}

// Shr implements `__qmljs_shr` (arithmetic right shift, sign-extending).
func Shr(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromInt32(value.ToInt32(toNumber(left)) >> shiftMask(right))
}

// Ushr implements `__qmljs_ushr` (logical right shift, zero-extending;
// result reinterpreted as a signed Integer payload per the tagged layout).
func Ushr(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromInt32(int32(value.ToUint32(toNumber(left)) >> shiftMask(right)))
}

// Neg implements unary minus (`uminus`, spec.md §4.4.4).
func Neg(ctx *context.Context, target *value.Value, v value.Value) {
	*target = numericResult(-toNumber(v))
}

// Compl implements bitwise complement (`compl`).
func Compl(ctx *context.Context, target *value.Value, v value.Value) {
	*target = value.FromInt32(^value.ToInt32(toNumber(v)))
}

// Not implements logical not (`not`). Goes through ToBoolean rather than
// Value.ToBool: the latter only inspects v's low 32 bits, which is a
// correct truthiness test for Null/Boolean/Integer but not for String
// (payload is a table handle, unrelated to the string's length) or
// Number (a NaN-boxed double's low bits don't track its zero-ness).
func Not(ctx *context.Context, target *value.Value, v value.Value) {
	*target = value.FromBool(ToBoolean(ctx, v) == 0)
}
