package value

import (
	"math"
	"testing"
)

func TestRoundTripInt32(t *testing.T) {
	cases := []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 42}
	for _, i := range cases {
		v := FromInt32(i)
		if !v.IsInteger() {
			t.Fatalf("FromInt32(%d).IsInteger() = false", i)
		}
		if got := v.ToInt32(); got != i {
			t.Errorf("FromInt32(%d).ToInt32() = %d", i, got)
		}
	}
}

func TestRoundTripDouble(t *testing.T) {
	cases := []float64{0, 1.5, -1.5, math.Inf(1), math.Inf(-1), 2147483648.0}
	for _, d := range cases {
		v := FromDouble(d)
		if !v.IsNumber() {
			t.Fatalf("FromDouble(%v).IsNumber() = false", d)
		}
		if got := v.ToDouble(); got != d {
			t.Errorf("FromDouble(%v).ToDouble() = %v", d, got)
		}
	}
}

func TestRoundTripNaNStaysNaN(t *testing.T) {
	v := FromDouble(math.NaN())
	if !v.IsNumber() {
		t.Fatalf("NaN value lost its Number tag")
	}
	if !math.IsNaN(v.ToDouble()) {
		t.Errorf("NaN did not round-trip as NaN")
	}
}

func TestUndefinedNullBoolean(t *testing.T) {
	if !Undefined().IsUndefined() {
		t.Error("Undefined() not IsUndefined()")
	}
	if !Null().IsNull() {
		t.Error("Null() not IsNull()")
	}
	if !FromBool(true).ToBool() {
		t.Error("FromBool(true).ToBool() = false")
	}
	if FromBool(false).ToBool() {
		t.Error("FromBool(false).ToBool() = true")
	}
}

func TestTryIntegerConversion(t *testing.T) {
	v := TryIntegerConversion(FromDouble(3.0))
	if !v.IsInteger() || v.ToInt32() != 3 {
		t.Errorf("TryIntegerConversion(3.0) = %v, want Integer(3)", v)
	}
	v2 := TryIntegerConversion(FromDouble(3.5))
	if !v2.IsNumber() {
		t.Errorf("TryIntegerConversion(3.5) should remain Number")
	}
	v3 := TryIntegerConversion(FromInt32(7))
	if !v3.IsInteger() || v3.ToInt32() != 7 {
		t.Errorf("TryIntegerConversion on an Integer should be a no-op")
	}
}

func TestIsIntegerPair(t *testing.T) {
	if !IsIntegerPair(FromInt32(1), FromInt32(2)) {
		t.Error("two integers should be an integer pair")
	}
	if IsIntegerPair(FromInt32(1), FromDouble(2)) {
		t.Error("integer+number should not be an integer pair")
	}
}

func TestOverflowProducesDouble(t *testing.T) {
	// spec.md §8.4 scenario 1: 0x7fffffff + 1 overflows int32 and the
	// fast path must fall back to double arithmetic.
	a := int64(math.MaxInt32)
	b := int64(1)
	sum := a + b
	if sum == int64(int32(sum)) {
		t.Fatal("test setup error: sum must not fit in int32")
	}
	v := FromDouble(float64(sum))
	if !v.IsNumber() || v.ToDouble() != 2147483648.0 {
		t.Errorf("overflow fallback value = %v, want 2147483648.0", v)
	}
}
