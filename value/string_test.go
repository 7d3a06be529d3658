package value

import "testing"

func TestStringEqualityPointerAndText(t *testing.T) {
	a := NewString("hello")
	b := NewString("hello")
	c := NewString("world")

	if !a.Equal(a) {
		t.Error("a should equal itself (pointer equality)")
	}
	if !a.Equal(b) {
		t.Error("a and b hold equal text and should be equal")
	}
	if a.Equal(c) {
		t.Error("a and c hold different text and should not be equal")
	}
}

func TestStringHashStable(t *testing.T) {
	s := NewString("the quick brown fox")
	h1 := s.Hash()
	h2 := s.Hash()
	if h1 != h2 {
		t.Errorf("Hash() not stable across calls: %d != %d", h1, h2)
	}
	if h1 == 0 {
		t.Error("Hash() must never be the uncomputed sentinel 0")
	}
}

func TestStringGoRoundTrip(t *testing.T) {
	src := "héllo, 世界"
	s := NewString(src)
	if got := s.Go(); got != src {
		t.Errorf("Go() = %q, want %q", got, src)
	}
}

func TestStringLen(t *testing.T) {
	// "𝌆" is outside the BMP and takes two UTF-16 code units, matching
	// ECMAScript's UTF-16 .length semantics.
	s := NewString("a𝌆b")
	if got := s.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}

func TestToLocaleCase(t *testing.T) {
	s := NewString("Straße")
	if got := s.ToLocaleUpperCase().Go(); got == "" {
		t.Error("ToLocaleUpperCase produced empty string")
	}
	if got := NewString("HELLO").ToLocaleLowerCase().Go(); got != "hello" {
		t.Errorf("ToLocaleLowerCase() = %q, want %q", got, "hello")
	}
}
