package value

import (
	"math"
	"strconv"
)

// ToInt32 implements the ECMAScript ToInt32 abstract operation's wraparound
// behavior (§11 of SPEC_FULL.md, pulled from the original qv4mathobject.cpp
// helper bodies, which spec.md's Value component requires but does not
// spell out the edge cases for).
func ToInt32(d float64) int32 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d == 0 {
		return 0
	}
	d = math.Trunc(d)
	const twoPow32 = 4294967296.0
	m := math.Mod(d, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	u := uint32(m)
	return int32(u)
}

// ToUint32 implements the ECMAScript ToUint32 abstract operation.
func ToUint32(d float64) uint32 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d == 0 {
		return 0
	}
	d = math.Trunc(d)
	const twoPow32 = 4294967296.0
	m := math.Mod(d, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	return uint32(m)
}

// NumberToString formats a double per ECMAScript's Number::toString
// conventions as closely as Go's shortest round-trip formatter allows:
// NaN, Infinity and -0 get their special spellings, integral values below
// 1e21 print in plain decimal, everything else uses the shortest decimal
// that round-trips.
func NumberToString(d float64) string {
	switch {
	case math.IsNaN(d):
		return "NaN"
	case math.IsInf(d, 1):
		return "Infinity"
	case math.IsInf(d, -1):
		return "-Infinity"
	case d == 0:
		if math.Signbit(d) {
			return "0" // ECMAScript prints -0 as "0" when converted ToString
		}
		return "0"
	}
	if d == math.Trunc(d) && math.Abs(d) < 1e21 {
		return strconv.FormatFloat(d, 'f', -1, 64)
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}
