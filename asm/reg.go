// Package asm is the direct x86-64 byte emitter of spec.md §4.5: no
// macro-assembler layer, raw encodings written straight into a growable
// code buffer, patched by rewriting the recorded displacement/immediate
// field of an already-emitted instruction (Design Notes §9.2's "pick one
// emitter style" resolved in favor of the direct emitter, matching
// other_examples/64f2f987_launix-de-memcp__scm-jit_amd64.go.go and
// other_examples/d3df6e54_tinyrange-rtg__std-compiler-backend_x64.go.go).
package asm

// Reg is a general-purpose x86-64 register. Values double as the 4-bit
// ModRM/SIB register field (low 3 bits) plus the REX.B/R/X extension bit
// (bit 3) — lowBits() and needsREXExtension() below split them back apart. Naming and the
// register-file layout are grounded on
// other_examples/68aec2c5_ajroetker-goat__amd64_parser.go.go's amd64
// register tables.
type Reg uint8

const (
	RAX Reg = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

// lowBits returns the 3-bit ModRM/SIB register field.
func (r Reg) lowBits() byte { return byte(r) & 0x7 }

// needsREXExtension reports whether encoding r requires the REX.B/R/X bit.
func (r Reg) needsREXExtension() bool { return r >= R8 }

// XMM is an SSE register, used only for the double load/store fast path
// (spec.md §4.5 "double load/store (for the number fast path)").
type XMM uint8

const (
	XMM0 XMM = iota
	XMM1
	XMM2
	XMM3
	XMM4
	XMM5
	XMM6
	XMM7
)

func (x XMM) lowBits() byte { return byte(x) & 0x7 }

// FrameRegister is the register the instruction selector addresses
// Context/frame-relative loads and stores through (spec.md §4.4.2's
// "FrameRegister"). RBP is the natural choice: it is preserved across the
// prologue/epilogue macros below and never reallocated by the selector.
const FrameRegister = RBP

// ContextRegister holds the *context.Context pointer for the duration of a
// compiled function (spec.md §3.8 "through fixed byte offsets ... relative
// to a context register"). R12 is callee-saved and outside the set the
// integer fast path allocates from.
const ContextRegister = R12
