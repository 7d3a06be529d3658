package runtime

import (
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/value"
)

// stringOf resolves a String-tagged Value's backing *value.String.
func stringOf(ctx *context.Context, v value.Value) *value.String {
	return resolverOf(ctx).String(v.StringHandle())
}

// relational implements the shared shape of Lt/Le/Gt/Ge: string operands
// compare by UTF-16 code unit order, everything else falls back to
// toNumber (NaN on either side makes every relational comparison false,
// matching ECMAScript's Abstract Relational Comparison).
func relational(ctx *context.Context, left, right value.Value, cmp func(a, b float64) bool, strCmp func(a, b int) bool) bool {
	if left.IsString() && right.IsString() {
		return strCmp(compareUnits(stringOf(ctx, left), stringOf(ctx, right)), 0)
	}
	a, b := toNumber(left), toNumber(right)
	if a != a || b != b { // either NaN
		return false
	}
	return cmp(a, b)
}

func compareUnits(a, b *value.String) int {
	au, bu := a.Units(), b.Units()
	for i := 0; i < len(au) && i < len(bu); i++ {
		if au[i] != bu[i] {
			if au[i] < bu[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(au) < len(bu):
		return -1
	case len(au) > len(bu):
		return 1
	default:
		return 0
	}
}

// Lt implements `__qmljs_lt`; the selector calls it for every `<`, since
// no inline compare is emitted for spec.md §4.4.5's InlineCompares.
func Lt(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(relational(ctx, left, right, func(a, b float64) bool { return a < b }, func(c, _ int) bool { return c < 0 }))
}

// Le implements `__qmljs_le`.
func Le(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(relational(ctx, left, right, func(a, b float64) bool { return a <= b }, func(c, _ int) bool { return c <= 0 }))
}

// Gt implements `__qmljs_gt`.
func Gt(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(relational(ctx, left, right, func(a, b float64) bool { return a > b }, func(c, _ int) bool { return c > 0 }))
}

// Ge implements `__qmljs_ge`.
func Ge(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(relational(ctx, left, right, func(a, b float64) bool { return a >= b }, func(c, _ int) bool { return c >= 0 }))
}

// StrictEquals implements ECMAScript `===`: same tag family required, no
// coercion. Integer and Number are treated as one family (both are
// "Number" at the script level; only the JIT's internal boxing splits
// them), so 1 === 1.0 holds even when one side is Integer-tagged and the
// other Number-tagged.
func StrictEquals(ctx *context.Context, left, right value.Value) bool {
	leftNum, rightNum := left.Tag() == value.TagInteger || left.Tag() == value.TagNumber,
		right.Tag() == value.TagInteger || right.Tag() == value.TagNumber
	if leftNum && rightNum {
		return toNumber(left) == toNumber(right)
	}
	if left.Tag() != right.Tag() {
		return false
	}
	switch left.Tag() {
	case value.TagUndefined, value.TagNull:
		return true
	case value.TagBoolean:
		return left.ToBool() == right.ToBool()
	case value.TagString:
		return stringOf(ctx, left).Equal(stringOf(ctx, right))
	case value.TagObject:
		return left.ObjectHandle() == right.ObjectHandle()
	default:
		return false
	}
}

// Equals implements ECMAScript `==`'s Abstract Equality Comparison,
// restricted to the CORE tag subset (spec.md §1): Null and Undefined
// compare equal to each other and nothing else; every other cross-tag
// pair falls back to numeric coercion, so `1 == true` holds while
// `0 == null` does not.
func Equals(ctx *context.Context, left, right value.Value) bool {
	if (left.Tag() == value.TagUndefined || left.Tag() == value.TagNull) &&
		(right.Tag() == value.TagUndefined || right.Tag() == value.TagNull) {
		return true
	}
	if left.Tag() == value.TagUndefined || left.Tag() == value.TagNull ||
		right.Tag() == value.TagUndefined || right.Tag() == value.TagNull {
		return false
	}
	if left.Tag() == value.TagString && right.Tag() == value.TagString {
		return stringOf(ctx, left).Equal(stringOf(ctx, right))
	}
	if left.Tag() == value.TagObject || right.Tag() == value.TagObject {
		return StrictEquals(ctx, left, right)
	}
	return toNumber(left) == toNumber(right)
}

// Eq implements `__qmljs_eq`.
func Eq(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(Equals(ctx, left, right))
}

// Neq implements `__qmljs_neq`.
func Neq(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(!Equals(ctx, left, right))
}

// StrictEq implements `__qmljs_strict_eq`.
func StrictEq(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(StrictEquals(ctx, left, right))
}

// StrictNeq implements `__qmljs_strict_neq`.
func StrictNeq(ctx *context.Context, target *value.Value, left, right value.Value) {
	*target = value.FromBool(!StrictEquals(ctx, left, right))
}
