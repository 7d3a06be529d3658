package context

import (
	"testing"

	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

func TestArgumentAliasing(t *testing.T) {
	ctx := New(nil, nil, nil, 2, []string{"x", "y"}, []value.Value{value.FromInt32(5)}, []string{"x"})
	act := ctx.EnsureActivation(nil, []string{"x", "y"})

	args := object.NewArgumentsObject(nil, ctx, nil)
	args.SetProperty(value.NewString("0"), value.FromInt32(42))

	v, ok := ctx.GetLocal("x")
	if !ok || v.ToInt32() != 42 {
		t.Fatalf("expected aliasing to update formal x to 42, got %v ok=%v", v, ok)
	}

	got := act.GetProperty(value.NewString("x"))
	if got.ToInt32() != 42 {
		t.Fatalf("activation lookup of x = %v, want 42", got)
	}
}

func TestThrowAndClearException(t *testing.T) {
	ctx := New(nil, nil, nil, 0, nil, nil, nil)
	if ctx.HasUncaughtException != 0 {
		t.Fatalf("fresh context should have no exception")
	}
	ctx.Throw(value.FromInt32(7))
	if ctx.HasUncaughtException != 1 {
		t.Fatalf("Throw should set HasUncaughtException")
	}
	if ctx.ExceptionValue.ToInt32() != 7 {
		t.Fatalf("ExceptionValue = %v, want 7", ctx.ExceptionValue)
	}
	ctx.ClearException()
	if ctx.HasUncaughtException != 0 {
		t.Fatalf("ClearException should reset HasUncaughtException")
	}
}

func TestWithChain(t *testing.T) {
	ctx := New(nil, nil, nil, 0, nil, nil, nil)
	if ctx.CurrentWith() != nil {
		t.Fatalf("empty with-chain should report nil")
	}
	obj := object.NewPlainObject(nil)
	ctx.PushWith(obj)
	if ctx.CurrentWith() != object.Object(obj) {
		t.Fatalf("CurrentWith should return pushed object")
	}
	ctx.PopWith()
	if ctx.CurrentWith() != nil {
		t.Fatalf("with-chain should be empty after pop")
	}
	ctx.PopWith() // no-op on empty chain
}

func TestUnwindStack(t *testing.T) {
	s := NewUnwindStack()
	if _, ok := s.Top(); ok {
		t.Fatalf("empty stack should report no top frame")
	}
	c1 := New(nil, nil, nil, 0, nil, nil, nil)
	c2 := New(nil, nil, nil, 0, nil, nil, nil)
	s.Push(c1, 3)
	s.Push(c2, 7)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	s.UnwindTo(c1)
	top, ok := s.Top()
	if !ok || top.Ctx != c1 || top.ResumeBlock != 3 {
		t.Fatalf("UnwindTo(c1) left wrong top frame: %+v", top)
	}
}
