package runtime

import (
	"testing"

	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/proptable"
	"github.com/cwbudde/qjscore/value"
)

// fakeEngine is a minimal Resolver backing handles with plain slices, just
// enough to exercise the helpers that dereference Value handles.
type fakeEngine struct {
	objects []object.Object
	strings []*value.String
	unwind  context.UnwindStack
}

func (e *fakeEngine) Object(h uint32) object.Object { return e.objects[h] }
func (e *fakeEngine) String(h uint32) *value.String { return e.strings[h] }
func (e *fakeEngine) InternValue(s string) value.Value {
	e.strings = append(e.strings, value.NewString(s))
	return value.FromStringHandle(uint32(len(e.strings) - 1))
}
func (e *fakeEngine) InternObject(o object.Object) value.Value {
	e.objects = append(e.objects, o)
	return value.FromObjectHandle(uint32(len(e.objects) - 1))
}
func (e *fakeEngine) MakeClosure(ctx *context.Context, functionIndex int32) value.Value {
	return value.Undefined()
}
func (e *fakeEngine) UnwindStack() *context.UnwindStack { return &e.unwind }

func newTestContext() (*context.Context, *fakeEngine) {
	eng := &fakeEngine{}
	ctx := context.New(eng, nil, nil, 0, nil, nil, nil)
	return ctx, eng
}

func TestAddIntegerFastPathEquivalence(t *testing.T) {
	ctx, _ := newTestContext()
	var target value.Value
	Add(ctx, &target, value.FromInt32(2), value.FromInt32(3))
	if !target.IsInteger() || target.ToInt32() != 5 {
		t.Fatalf("Add(2,3) = %v, want Integer 5", target)
	}
}

func TestShlMasksShiftAmount(t *testing.T) {
	ctx, _ := newTestContext()
	var target value.Value
	Shl(ctx, &target, value.FromInt32(1), value.FromInt32(33)) // 33 & 0x1f == 1
	if target.ToInt32() != 2 {
		t.Fatalf("Shl(1, 33) = %v, want 2 (shift masked to 1)", target)
	}
}

func TestToBooleanFalsyValuesAreNotConfusedWithUndefined(t *testing.T) {
	ctx, eng := newTestContext()
	plain := object.NewPlainObject(nil)
	objHandle := eng.InternObject(plain)
	emptyStr := eng.InternValue("")
	nonEmptyStr := eng.InternValue("x")

	cases := []struct {
		name string
		v    value.Value
		want uint64
	}{
		{"undefined", value.Undefined(), 0},
		{"null", value.Null(), 0},
		{"false", value.FromBool(false), 0},
		{"true", value.FromBool(true), 1},
		{"integer zero", value.FromInt32(0), 0},
		{"integer nonzero", value.FromInt32(1), 1},
		{"number zero", value.FromDouble(0), 0},
		{"number nonzero", value.FromDouble(1.5), 1},
		{"empty string", emptyStr, 0},
		{"non-empty string", nonEmptyStr, 1},
		{"object", objHandle, 1},
	}
	for _, c := range cases {
		if got := ToBoolean(ctx, c.v); got != c.want {
			t.Errorf("ToBoolean(%s) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestNotUsesToBooleanNotRawBits(t *testing.T) {
	ctx, _ := newTestContext()
	var target value.Value
	Not(ctx, &target, value.FromInt32(0))
	if !target.IsBoolean() || target.ToBool() != true {
		t.Fatalf("Not(0) = %v, want true", target)
	}
	Not(ctx, &target, value.FromInt32(5))
	if target.ToBool() != false {
		t.Fatalf("Not(5) = %v, want false", target)
	}
}

func TestGetSetPropertyRoundTrip(t *testing.T) {
	ctx, eng := newTestContext()
	plain := object.NewPlainObject(nil)
	handle := eng.InternObject(plain)

	SetProperty(ctx, handle, value.NewString("x"), value.FromInt32(9))
	var got value.Value
	GetProperty(ctx, &got, handle, value.NewString("x"))
	if got.ToInt32() != 9 {
		t.Fatalf("GetProperty after SetProperty = %v, want 9", got)
	}
}

func TestGetSetElementOnArray(t *testing.T) {
	ctx, eng := newTestContext()
	arr := object.NewArrayObject(nil)
	handle := eng.InternObject(arr)

	SetElement(ctx, handle, value.FromInt32(0), value.FromInt32(100))
	var got value.Value
	GetElement(ctx, &got, handle, value.FromInt32(0))
	if got.ToInt32() != 100 {
		t.Fatalf("GetElement after SetElement = %v, want 100", got)
	}
}

func TestTypeofTags(t *testing.T) {
	ctx, eng := newTestContext()
	fn := object.NewFunctionObject(nil, value.NewString("f"), func(args []value.Value, this value.Value) (value.Value, error) {
		return value.Undefined(), nil
	}, nil)
	handle := eng.InternObject(fn)

	cases := []struct {
		v    value.Value
		want string
	}{
		{value.Undefined(), "undefined"},
		{value.Null(), "object"},
		{value.FromBool(true), "boolean"},
		{value.FromInt32(1), "number"},
		{handle, "function"},
	}
	for _, c := range cases {
		if got := Typeof(ctx, c.v).Go(); got != c.want {
			t.Errorf("Typeof(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestBuiltinThrowSetsExceptionState(t *testing.T) {
	ctx, _ := newTestContext()
	BuiltinThrow(ctx, value.FromInt32(42))
	if ctx.HasUncaughtException != 1 {
		t.Fatalf("BuiltinThrow should set HasUncaughtException")
	}
	if GetException(ctx).ToInt32() != 42 {
		t.Fatalf("GetException = %v, want 42", GetException(ctx))
	}
}

func TestForeachIterationSkipsNonEnumerableAndShadowed(t *testing.T) {
	ctx, eng := newTestContext()
	proto := object.NewPlainObject(nil)
	proto.SetProperty(value.NewString("a"), value.FromInt32(1))
	proto.SetProperty(value.NewString("b"), value.FromInt32(2))

	obj := object.NewPlainObject(proto)
	obj.SetProperty(value.NewString("a"), value.FromInt32(10)) // shadows proto's "a"
	// non-enumerable own property, must not be yielded
	obj.DefineOwnProperty(value.NewString("hidden"), &proptable.Descriptor{Kind: proptable.KindData, Value: value.FromInt32(3), Enumerable: proptable.TriUnset})
	objHandle := eng.InternObject(obj)

	itHandle := ForeachIteratorObject(ctx, nil, objHandle)

	var names []string
	for {
		n := ForeachNextPropertyName(ctx, itHandle)
		if n.IsNull() {
			break
		}
		names = append(names, eng.String(n.StringHandle()).Go())
	}

	if len(names) != 2 {
		t.Fatalf("expected 2 distinct names (a shadowed once), got %v", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Fatalf("expected a and b, got %v", names)
	}
}

func TestDeclareVarsInstallsDefaultUndefined(t *testing.T) {
	ctx, _ := newTestContext()
	proto := object.NewPlainObject(nil)
	DeclareVars(ctx, proto, []string{"x"}, nil)
	if ctx.Activation == nil {
		t.Fatalf("DeclareVars should materialize the activation")
	}
	v := ctx.Activation.GetProperty(value.NewString("x"))
	if !v.IsUndefined() {
		t.Fatalf("freshly declared var should be undefined, got %v", v)
	}
}
