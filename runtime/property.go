package runtime

import (
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// GetProperty implements `__qmljs_get_property`: Temp <- Member lowering
// (spec.md §4.4.4).
func GetProperty(ctx *context.Context, target *value.Value, base value.Value, name *value.String) {
	o := objectOf(ctx, base)
	if o == nil {
		*target = value.Undefined()
		return
	}
	*target = o.GetProperty(name)
}

// SetProperty implements `__qmljs_set_property[_typed]`: Member <- ...
// lowering (spec.md §4.4.4).
func SetProperty(ctx *context.Context, base value.Value, name *value.String, v value.Value) {
	if o := objectOf(ctx, base); o != nil {
		o.SetProperty(name, v)
	}
}

// GetElement implements `__qmljs_get_element`: Temp <- Subscript lowering.
// Subscript index is itself a Value (commonly Integer-tagged); non-array
// objects fall back to the string-keyed property lookup via the engine's
// number-to-string conversion.
func GetElement(ctx *context.Context, target *value.Value, base, index value.Value) {
	o := objectOf(ctx, base)
	if o == nil {
		*target = value.Undefined()
		return
	}
	if arr, ok := o.(*object.ArrayObject); ok && index.IsInteger() {
		*target = arr.At(int(index.ToInt32()))
		return
	}
	*target = o.GetProperty(subscriptName(ctx, index))
}

// SetElement implements `__qmljs_set_element[_number]`: Subscript <- ...
// lowering.
func SetElement(ctx *context.Context, base, index, v value.Value) {
	o := objectOf(ctx, base)
	if o == nil {
		return
	}
	if arr, ok := o.(*object.ArrayObject); ok && index.IsInteger() {
		arr.Assign(int(index.ToInt32()), v)
		return
	}
	o.SetProperty(subscriptName(ctx, index), v)
}

// GetActivationProperty implements `__qmljs_get_activation_property`: Temp
// <- Name lowering, resolving name through the scope chain — innermost
// `with` object first (spec.md §11 supplement), then the current
// activation's locals/formals, then outward through Outer contexts, and
// finally the global object.
func GetActivationProperty(ctx *context.Context, target *value.Value, name *value.String) {
	if v, ok := lookupActivation(ctx, name); ok {
		*target = v
		return
	}
	*target = value.Undefined()
}

// SetActivationProperty implements `__qmljs_set_activation_property[_typed]`
// / `copy_activation_property`: Name <- ... lowering, following the same
// scope-chain search order as GetActivationProperty but writing to the
// first scope that already owns name, or to the outermost context's
// activation if none does (spec.md §3.8, §11).
func SetActivationProperty(ctx *context.Context, name *value.String, v value.Value) {
	for _, w := range reverseWithChain(ctx) {
		if w.HasProperty(name) {
			w.SetProperty(name, v)
			return
		}
	}
	var outermost *context.Context
	for c := ctx; c != nil; c = c.Outer {
		outermost = c
		if c.SetLocal(name.Go(), v) {
			return
		}
		if c.Activation != nil && c.Activation.Base().Members != nil && c.Activation.Base().Members.Find(name) != nil {
			c.Activation.SetProperty(name, v)
			return
		}
	}
	// name is bound nowhere on the scope chain: declare it on the
	// outermost activation, matching non-strict-mode implicit-global
	// assignment (DESIGN.md Open Question 1).
	outermost.EnsureActivation(nil, nil).SetProperty(name, v)
}

// GetThisObject implements the `name == "this"` special case of
// spec.md §4.4.4's Move/Name-source row.
func GetThisObject(ctx *context.Context, target *value.Value) {
	res := resolverOf(ctx)
	if ctx.ThisObject == nil {
		*target = value.Undefined()
		return
	}
	*target = res.InternObject(ctx.ThisObject)
}

// lookupActivation walks with-chain, activation/locals, then outer scopes.
func lookupActivation(ctx *context.Context, name *value.String) (value.Value, bool) {
	for _, w := range reverseWithChain(ctx) {
		if w.HasProperty(name) {
			return w.GetProperty(name), true
		}
	}
	for c := ctx; c != nil; c = c.Outer {
		if v, ok := c.GetLocal(name.Go()); ok {
			return v, true
		}
		if c.Activation != nil {
			if d := c.Activation.Base().Members; d != nil {
				if desc := d.Find(name); desc != nil {
					return c.Activation.GetProperty(name), true
				}
			}
		}
	}
	return value.Undefined(), false
}

func reverseWithChain(ctx *context.Context) []object.Object {
	n := len(ctx.WithChain)
	out := make([]object.Object, n)
	for i := 0; i < n; i++ {
		out[i] = ctx.WithChain[n-1-i]
	}
	return out
}

func objectOf(ctx *context.Context, v value.Value) object.Object {
	if !v.IsObject() {
		return nil
	}
	return resolverOf(ctx).Object(v.ObjectHandle())
}

func subscriptName(ctx *context.Context, index value.Value) *value.String {
	if index.IsString() {
		return resolverOf(ctx).String(index.StringHandle())
	}
	return value.NewString(value.NumberToString(toNumber(index)))
}
