package value

import (
	"hash/maphash"
	"unicode/utf16"
)

// stringHashSeed is process-global so that two Strings built from equal
// text in the same process always hash identically. maphash.MakeSeed picks
// it at random once per process, so hashes differ between runs; String.Hash
// is only cached and compared within one process.
var stringHashSeed = maphash.MakeSeed()

// String is immutable UTF-16 text with a lazily computed, non-zero
// sentinel cached hash (spec.md §3.2).
type String struct {
	units []uint16
	hash  uint64 // 0 means "not yet computed"
}

// NewString builds a String from a Go (UTF-8) source string.
func NewString(s string) *String {
	return &String{units: utf16.Encode([]rune(s))}
}

// NewStringFromUTF16 builds a String from raw UTF-16 code units.
func NewStringFromUTF16(units []uint16) *String {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return &String{units: cp}
}

// Units returns the string's UTF-16 code units. The returned slice must
// not be mutated.
func (s *String) Units() []uint16 { return s.units }

// Len returns the number of UTF-16 code units (the ECMAScript `.length`).
func (s *String) Len() int { return len(s.units) }

// Go renders the string as a Go (UTF-8) string.
func (s *String) Go() string { return string(utf16.Decode(s.units)) }

func (s *String) String() string { return s.Go() }

// Hash returns the cached hash, computing it on first use. The sentinel
// value 0 is reserved to mean "uncomputed", so a text that genuinely
// hashes to 0 is nudged to 1 — harmless since Hash is only ever used for
// bucket placement and a pre-comparison fast-reject, never as an identity.
func (s *String) Hash() uint64 {
	if s.hash != 0 {
		return s.hash
	}
	var h maphash.Hash
	h.SetSeed(stringHashSeed)
	for _, u := range s.units {
		h.WriteByte(byte(u))
		h.WriteByte(byte(u >> 8))
	}
	sum := h.Sum64()
	if sum == 0 {
		sum = 1
	}
	s.hash = sum
	return sum
}

// Equal implements spec.md §3.2 equality: pointer-equal is always equal;
// otherwise two Strings are equal iff their hashes and text both match.
func (s *String) Equal(other *String) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.Hash() != other.Hash() {
		return false
	}
	if len(s.units) != len(other.units) {
		return false
	}
	for i, u := range s.units {
		if other.units[i] != u {
			return false
		}
	}
	return true
}
