package asm

import "fmt"

// RelocKind distinguishes the patch CodeBuffer.Finalize must perform for a
// pending relocation (spec.md §4.5's "patched by rewriting the recorded
// displacement/immediate field").
type RelocKind int

const (
	// RelocAbs64 is a full 64-bit absolute address immediate (used for
	// runtime helper addresses and Go-function CallAbsolute targets).
	RelocAbs64 RelocKind = iota
	// RelocRel32 is a 32-bit PC-relative displacement for an unconditional
	// or conditional jump to a Label within the same buffer.
	RelocRel32
	// RelocRel32Call is the same as RelocRel32 but for a CALL instruction.
	RelocRel32Call
)

// Label names a not-yet-placed instruction offset within an Assembler's
// buffer (spec.md §4.4.2's basic-block boundaries). Bind fixes it to the
// assembler's current write position; Link then resolves every Jump taken
// against it before the code is handed to the code buffer.
type Label struct {
	id int
}

// Jump is a previously-emitted branch instruction awaiting Link to patch
// its displacement once its target Label is bound.
type Jump struct {
	siteOffset int   // offset of the instruction's displacement field
	target     Label
	kind       RelocKind
}

// Assembler accumulates one function's machine code into an in-memory
// buffer using the direct encoding style of other_examples/d3df6e54_tinyrange-rtg__std-compiler-backend_x64.go.go:
// labelOffsets indexed by label id (-1 meaning "not yet bound"), and a
// pending list of (site, target) fixups patched by Link once every label
// used has been bound. Nothing here talks to the OS; CodeBuffer owns the
// executable mapping the finished bytes are copied into.
type Assembler struct {
	code         []byte
	labelOffsets []int // -1 until Bind
	pending      []Jump
}

// NewAssembler returns an empty Assembler ready to emit one function.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Len returns the number of bytes emitted so far — the offset the next
// instruction will be written at.
func (a *Assembler) Len() int { return len(a.code) }

// Bytes returns the assembled code. Only valid after Link has resolved
// every pending fixup.
func (a *Assembler) Bytes() []byte { return a.code }

func (a *Assembler) emit(b ...byte) { a.code = append(a.code, b...) }

func (a *Assembler) emit32(v int32) {
	a.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (a *Assembler) emit64(v int64) {
	a.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// NewLabel allocates an unbound label.
func (a *Assembler) NewLabel() Label {
	a.labelOffsets = append(a.labelOffsets, -1)
	return Label{id: len(a.labelOffsets) - 1}
}

// Bind fixes l to the assembler's current write position — the start of
// the basic block the selector is about to emit (spec.md §4.4.2).
func (a *Assembler) Bind(l Label) {
	a.labelOffsets[l.id] = len(a.code)
}

// rex builds a REX prefix byte. w selects the 64-bit operand size; r/x/b
// are the extension bits for the ModRM.reg, SIB.index and ModRM.rm/SIB.base
// fields respectively (Intel SDM vol 2A §2.2.1).
func rex(w bool, r, x, b bool) byte {
	v := byte(0x40)
	if w {
		v |= 0x08
	}
	if r {
		v |= 0x04
	}
	if x {
		v |= 0x02
	}
	if b {
		v |= 0x01
	}
	return v
}

func modrm(mod, reg, rm byte) byte {
	return (mod << 6) | ((reg & 0x7) << 3) | (rm & 0x7)
}

// MovRegReg emits `mov dst, src` (64-bit GPR to GPR).
func (a *Assembler) MovRegReg(dst, src Reg) {
	a.emit(rex(true, src.needsREXExtension(), false, dst.needsREXExtension()))
	a.emit(0x89)
	a.emit(modrm(3, src.lowBits(), dst.lowBits()))
}

// MovRegImm64 emits `mov dst, imm64` (REX.W + B8+rd io).
func (a *Assembler) MovRegImm64(dst Reg, imm int64) {
	a.emit(rex(true, false, false, dst.needsREXExtension()))
	a.emit(0xB8 + dst.lowBits())
	a.emit64(imm)
}

// MovRegImm32 emits `mov dst, imm32` sign-extended into a 64-bit register
// (REX.W + C7 /0 id).
func (a *Assembler) MovRegImm32(dst Reg, imm int32) {
	a.emit(rex(true, false, false, dst.needsREXExtension()))
	a.emit(0xC7)
	a.emit(modrm(3, 0, dst.lowBits()))
	a.emit32(imm)
}

// MovRegMem emits `mov dst, [base+disp32]` — a Context-relative load
// (spec.md §3.8's fixed-offset ABI contract).
func (a *Assembler) MovRegMem(dst, base Reg, disp int32) {
	a.emit(rex(true, dst.needsREXExtension(), false, base.needsREXExtension()))
	a.emit(0x8B)
	a.emitMemOperand(dst, base, disp)
}

// MovReg32Mem emits the 32-bit form of MovRegMem (no REX.W), for fields
// narrower than a full Value word such as Context.HasUncaughtException.
func (a *Assembler) MovReg32Mem(dst, base Reg, disp int32) {
	if dst.needsREXExtension() || base.needsREXExtension() {
		a.emit(rex(false, dst.needsREXExtension(), false, base.needsREXExtension()))
	}
	a.emit(0x8B)
	a.emitMemOperand(dst, base, disp)
}

// MovMemReg emits `mov [base+disp32], src` — a Context-relative store.
func (a *Assembler) MovMemReg(base Reg, disp int32, src Reg) {
	a.emit(rex(true, src.needsREXExtension(), false, base.needsREXExtension()))
	a.emit(0x89)
	a.emitMemOperand(src, base, disp)
}

// emitMemOperand writes the ModRM(+SIB if base is RSP/R12)+disp32 bytes
// for a [base+disp32] operand addressed by regField.
func (a *Assembler) emitMemOperand(regField, base Reg, disp int32) {
	a.emit(modrm(2, regField.lowBits(), base.lowBits()))
	if base.lowBits() == RSP.lowBits() {
		a.emit(0x24) // SIB: scale=0, index=none, base=RSP/R12
	}
	a.emit32(disp)
}

// Push emits `push r`.
func (a *Assembler) Push(r Reg) {
	if r.needsREXExtension() {
		a.emit(rex(false, false, false, true))
	}
	a.emit(0x50 + r.lowBits())
}

// Pop emits `pop r`.
func (a *Assembler) Pop(r Reg) {
	if r.needsREXExtension() {
		a.emit(rex(false, false, false, true))
	}
	a.emit(0x58 + r.lowBits())
}

// SubRegImm32 emits `sub dst, imm32`.
func (a *Assembler) SubRegImm32(dst Reg, imm int32) {
	a.emit(rex(true, false, false, dst.needsREXExtension()))
	a.emit(0x81)
	a.emit(modrm(3, 5, dst.lowBits()))
	a.emit32(imm)
}

// AddRegImm32 emits `add dst, imm32`.
func (a *Assembler) AddRegImm32(dst Reg, imm int32) {
	a.emit(rex(true, false, false, dst.needsREXExtension()))
	a.emit(0x81)
	a.emit(modrm(3, 0, dst.lowBits()))
	a.emit32(imm)
}

// AddRegReg emits `add dst, src` (32-bit, the integer fast path's register
// width — spec.md §4.4.5's Integer-tagged overflow-trapping add).
func (a *Assembler) AddRegReg(dst, src Reg) {
	if dst.needsREXExtension() || src.needsREXExtension() {
		a.emit(rex(false, src.needsREXExtension(), false, dst.needsREXExtension()))
	}
	a.emit(0x01)
	a.emit(modrm(3, src.lowBits(), dst.lowBits()))
}

// SubRegReg emits `sub dst, src` (32-bit).
func (a *Assembler) SubRegReg(dst, src Reg) {
	if dst.needsREXExtension() || src.needsREXExtension() {
		a.emit(rex(false, src.needsREXExtension(), false, dst.needsREXExtension()))
	}
	a.emit(0x29)
	a.emit(modrm(3, src.lowBits(), dst.lowBits()))
}

// IMulRegReg emits `imul dst, src` (32-bit, two-operand form, 0F AF /r).
func (a *Assembler) IMulRegReg(dst, src Reg) {
	if dst.needsREXExtension() || src.needsREXExtension() {
		a.emit(rex(false, dst.needsREXExtension(), false, src.needsREXExtension()))
	}
	a.emit(0x0F, 0xAF)
	a.emit(modrm(3, dst.lowBits(), src.lowBits()))
}

// jccOverflow, the condition-code nibble for `jo` (jump if OF=1), used by
// the overflow-trapping integer ops below.
const jccOverflow = 0x0

// jumpRel32 emits a near jump/call opcode followed by a placeholder
// 32-bit displacement, recording a pending fixup against target.
func (a *Assembler) jumpRel32(opcode []byte, target Label, kind RelocKind) Jump {
	a.emit(opcode...)
	site := len(a.code)
	a.emit32(0) // placeholder, patched by Link
	j := Jump{siteOffset: site, target: target, kind: kind}
	a.pending = append(a.pending, j)
	return j
}

// Jmp emits an unconditional near jump to l.
func (a *Assembler) Jmp(l Label) Jump {
	return a.jumpRel32([]byte{0xE9}, l, RelocRel32)
}

// JumpIfOverflow emits `jo rel32`, branching to l when the preceding
// arithmetic op set OF=1 (spec.md §4.4.5's overflow-trapping fast path:
// fall through to the generic helper instead of wrapping on overflow).
func (a *Assembler) JumpIfOverflow(l Label) Jump {
	return a.jumpRel32([]byte{0x0F, 0x80 + jccOverflow}, l, RelocRel32)
}

// JumpIfZero emits `jz rel32` (spec.md §4.4.8's exception-check branch:
// `test hasUncaughtException, hasUncaughtException; jnz handler`, here the
// jz/jnz pair built from the same primitive by the caller's choice of
// condition).
func (a *Assembler) JumpIfZero(l Label) Jump {
	return a.jumpRel32([]byte{0x0F, 0x84}, l, RelocRel32)
}

// JumpIfNotZero emits `jnz rel32`.
func (a *Assembler) JumpIfNotZero(l Label) Jump {
	return a.jumpRel32([]byte{0x0F, 0x85}, l, RelocRel32)
}

// TestRegReg emits `test a, a` (32-bit), the usual zero-check idiom this
// assembler uses ahead of JumpIfZero/JumpIfNotZero.
func (a *Assembler) TestRegReg(r Reg) {
	if r.needsREXExtension() {
		a.emit(rex(false, r.needsREXExtension(), false, r.needsREXExtension()))
	}
	a.emit(0x85)
	a.emit(modrm(3, r.lowBits(), r.lowBits()))
}

// CallAbsolute emits a call to a fixed Go-function address: load the
// address into a scratch register (RAX — never used to hold a live Value
// across a helper call boundary by the selector) then `call rax`. Go
// functions are not guaranteed to sit within rel32 of generated code, so
// this avoids RelocRel32Call's range limits entirely (spec.md §4.4.6's
// runtime-helper calls).
func (a *Assembler) CallAbsolute(target uintptr) {
	a.MovRegImm64(RAX, int64(target))
	a.emit(0xFF)
	a.emit(modrm(3, 2, RAX.lowBits()))
}

// MovsdLoad emits `movsd xmm, [base+disp32]` (F2 0F 10 /r) — the double
// fast path's load (spec.md §4.4.5 "double load/store").
func (a *Assembler) MovsdLoad(dst XMM, base Reg, disp int32) {
	a.emit(0xF2)
	if base.needsREXExtension() {
		a.emit(rex(false, false, false, true))
	}
	a.emit(0x0F, 0x10)
	a.emit(modrm(2, dst.lowBits(), base.lowBits()))
	if base.lowBits() == RSP.lowBits() {
		a.emit(0x24)
	}
	a.emit32(disp)
}

// MovsdStore emits `movsd [base+disp32], xmm` (F2 0F 11 /r).
func (a *Assembler) MovsdStore(base Reg, disp int32, src XMM) {
	a.emit(0xF2)
	if base.needsREXExtension() {
		a.emit(rex(false, false, false, true))
	}
	a.emit(0x0F, 0x11)
	a.emit(modrm(2, src.lowBits(), base.lowBits()))
	if base.lowBits() == RSP.lowBits() {
		a.emit(0x24)
	}
	a.emit32(disp)
}

// Ret emits `ret`.
func (a *Assembler) Ret() { a.emit(0xC3) }

// Prologue emits the standard frame-setup sequence every compiled
// function begins with (spec.md §4.4.1): save the caller's frame pointer,
// establish this frame's, reserve frameSize bytes of spill space, and
// move the incoming Context pointer argument (RDI, per the platform's
// first-integer-argument register) into ContextRegister for the duration
// of the function.
func (a *Assembler) Prologue(frameSize int32) {
	a.Push(FrameRegister)
	a.MovRegReg(FrameRegister, RSP)
	if frameSize > 0 {
		a.SubRegImm32(RSP, frameSize)
	}
	a.Push(ContextRegister)
	a.MovRegReg(ContextRegister, RDI)
}

// Epilogue emits the matching frame teardown and returns. frameSize must
// equal the value Prologue was called with.
func (a *Assembler) Epilogue(frameSize int32) {
	a.Pop(ContextRegister)
	if frameSize > 0 {
		a.AddRegImm32(RSP, frameSize)
	}
	a.Pop(FrameRegister)
	a.Ret()
}

// Link resolves every pending Jump against its Label's bound offset,
// patching the rel32 placeholder in place (spec.md §10: "after Link, no
// placeholder displacement bytes remain unresolved"). It is an error to
// Link while any label a Jump targets is still unbound.
func (a *Assembler) Link() error {
	for _, j := range a.pending {
		off := a.labelOffsets[j.target.id]
		if off < 0 {
			return fmt.Errorf("asm: Link: label %d used but never bound", j.target.id)
		}
		disp := int32(off - (j.siteOffset + 4))
		a.code[j.siteOffset] = byte(disp)
		a.code[j.siteOffset+1] = byte(disp >> 8)
		a.code[j.siteOffset+2] = byte(disp >> 16)
		a.code[j.siteOffset+3] = byte(disp >> 24)
	}
	a.pending = nil
	return nil
}
