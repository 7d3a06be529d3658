package isel

import (
	"fmt"
)

// regNames mirrors asm.Reg's iota order (Reg's numeric value already IS
// the x86 register number 0-15, so this is a direct index, not a lookup
// table keyed by some other encoding).
var regNames = [...]string{
	"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

func regName(n byte) string {
	if int(n) < len(regNames) {
		return regNames[n]
	}
	return fmt.Sprintf("r%d", n)
}

func le32(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

func le64(b []byte) int64 {
	lo := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	hi := uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24
	return int64(uint64(hi)<<32 | uint64(lo))
}

func decodeModrm(b byte) (mod, reg, rm byte) {
	return b >> 6 & 3, b >> 3 & 7, b & 7
}

// decodeMem consumes a [base+disp32] memory operand (mod=2 is the only
// form this assembler ever emits — see asm.Assembler.emitMemOperand) plus
// the SIB byte emitMemOperand adds whenever base's low 3 bits are 4 (RSP
// or, for this selector, ContextRegister/R12), returning the formatted
// operand text and the position just past it.
func decodeMem(code []byte, pos int, baseBits byte, baseExt bool) (string, int) {
	full := baseBits
	if baseExt {
		full |= 8
	}
	if baseBits == 4 {
		pos++ // SIB byte, always 0x24 (scale=0, index=none) for this emitter
	}
	disp := le32(code[pos : pos+4])
	pos += 4
	return fmt.Sprintf("[%s%+d]", regName(full), disp), pos
}

// instruction decodes a single instruction at code[pos] and returns the
// offset just past it along with its disassembled text. It understands
// exactly the encodings package asm emits (asm.go's Mov*/Push/Pop/Add*/
// Sub*/IMul*/Jump*/Test*/CallAbsolute/Movsd*/Ret/Prologue/Epilogue) — this
// is not a general x86-64 decoder.
func instruction(code []byte, pos int) (next int, text string) {
	start := pos

	if code[pos] == 0xF2 { // movsd (F2 [REX] 0F 10/11 /r)
		pos++
		ext := false
		if code[pos]&0xF0 == 0x40 {
			ext = code[pos]&0x01 != 0
			pos++
		}
		pos++ // 0x0F
		op2 := code[pos]
		pos++ // 0x10 or 0x11
		modrmByte := code[pos]
		pos++
		_, reg, rm := decodeModrm(modrmByte)
		mem, newPos := decodeMem(code, pos, rm, ext)
		pos = newPos
		if op2 == 0x10 {
			return pos, fmt.Sprintf("movsd xmm%d, %s", reg, mem)
		}
		return pos, fmt.Sprintf("movsd %s, xmm%d", mem, reg)
	}

	rexByte := byte(0)
	if code[pos]&0xF0 == 0x40 {
		rexByte = code[pos]
		pos++
	}
	w := rexByte&0x08 != 0
	rBit := rexByte&0x04 != 0
	bBit := rexByte&0x01 != 0

	op := code[pos]
	pos++

	switch op {
	case 0x0F:
		op2 := code[pos]
		pos++
		switch op2 {
		case 0xAF:
			modrmByte := code[pos]
			pos++
			_, reg, rm := decodeModrm(modrmByte)
			dst, src := reg, rm
			if rBit {
				dst |= 8
			}
			if bBit {
				src |= 8
			}
			return pos, fmt.Sprintf("imul %s, %s", regName(dst), regName(src))
		case 0x80, 0x84, 0x85:
			disp := le32(code[pos : pos+4])
			pos += 4
			target := pos + int(disp)
			mnemonic := map[byte]string{0x80: "jo", 0x84: "jz", 0x85: "jnz"}[op2]
			return pos, fmt.Sprintf("%s 0x%x", mnemonic, target)
		}
		return pos, fmt.Sprintf("; unknown 0F %02x", op2)

	case 0x89, 0x8B:
		modrmByte := code[pos]
		pos++
		mod, reg, rm := decodeModrm(modrmByte)
		regFull := reg
		if rBit {
			regFull |= 8
		}
		rmFull := rm
		if bBit {
			rmFull |= 8
		}
		if mod == 3 {
			if op == 0x89 {
				return pos, fmt.Sprintf("mov %s, %s", regName(rmFull), regName(regFull))
			}
			return pos, fmt.Sprintf("mov %s, %s", regName(regFull), regName(rmFull))
		}
		mem, newPos := decodeMem(code, pos, rm, bBit)
		pos = newPos
		suffix := ""
		if !w {
			suffix = "32"
		}
		if op == 0x89 {
			return pos, fmt.Sprintf("mov%s %s, %s", suffix, mem, regName(regFull))
		}
		return pos, fmt.Sprintf("mov%s %s, %s", suffix, regName(regFull), mem)

	case 0xC7:
		modrmByte := code[pos]
		pos++
		_, _, rm := decodeModrm(modrmByte)
		dst := rm
		if bBit {
			dst |= 8
		}
		imm := le32(code[pos : pos+4])
		pos += 4
		return pos, fmt.Sprintf("mov %s, 0x%x", regName(dst), imm)

	case 0x81:
		modrmByte := code[pos]
		pos++
		_, reg, rm := decodeModrm(modrmByte)
		dst := rm
		if bBit {
			dst |= 8
		}
		imm := le32(code[pos : pos+4])
		pos += 4
		mnemonic := "add"
		if reg == 5 {
			mnemonic = "sub"
		}
		return pos, fmt.Sprintf("%s %s, 0x%x", mnemonic, regName(dst), imm)

	case 0x01, 0x29:
		modrmByte := code[pos]
		pos++
		_, reg, rm := decodeModrm(modrmByte)
		src, dst := reg, rm
		if rBit {
			src |= 8
		}
		if bBit {
			dst |= 8
		}
		mnemonic := "add"
		if op == 0x29 {
			mnemonic = "sub"
		}
		return pos, fmt.Sprintf("%s %s, %s", mnemonic, regName(dst), regName(src))

	case 0x85:
		modrmByte := code[pos]
		pos++
		_, _, rm := decodeModrm(modrmByte)
		r := rm
		if bBit {
			r |= 8
		}
		return pos, fmt.Sprintf("test %s, %s", regName(r), regName(r))

	case 0xE9:
		disp := le32(code[pos : pos+4])
		pos += 4
		target := pos + int(disp)
		return pos, fmt.Sprintf("jmp 0x%x", target)

	case 0xFF:
		modrmByte := code[pos]
		pos++
		_, _, rm := decodeModrm(modrmByte)
		dst := rm
		if bBit {
			dst |= 8
		}
		return pos, fmt.Sprintf("call %s", regName(dst))

	case 0xC3:
		return pos, "ret"
	}

	if op >= 0x50 && op <= 0x57 {
		r := op - 0x50
		if bBit {
			r |= 8
		}
		return pos, fmt.Sprintf("push %s", regName(r))
	}
	if op >= 0x58 && op <= 0x5F {
		r := op - 0x58
		if bBit {
			r |= 8
		}
		return pos, fmt.Sprintf("pop %s", regName(r))
	}
	if op >= 0xB8 && op <= 0xBF {
		r := op - 0xB8
		if bBit {
			r |= 8
		}
		imm := le64(code[pos : pos+8])
		pos += 8
		return pos, fmt.Sprintf("mov %s, 0x%x", regName(r), imm)
	}

	return pos, fmt.Sprintf("; unknown opcode 0x%02x at %d", op, start)
}

// disassemble decodes the whole buffer into one instrBoundary per
// instruction, in emission order — the table Disassembler walks. Grounded
// on internal/bytecode/disasm.go's per-instruction-header printing, but
// driven by a decoder instead of a chunked opcode switch over fixed-width
// words, since asm emits variable-length x86-64 bytes rather than 32-bit
// bytecode cells.
func disassemble(code []byte) []instrBoundary {
	var out []instrBoundary
	pos := 0
	for pos < len(code) {
		offset := pos
		next, text := instruction(code, pos)
		if next <= pos { // decoding failure guard: never spin
			break
		}
		out = append(out, instrBoundary{offset: offset, text: text})
		pos = next
	}
	return out
}

// Disassembler renders a CompiledFunction's machine code as one text line
// per instruction, each prefixed with its byte offset — useful under
// SHOW_CODE (spec.md §6.5) to inspect what the selector actually emitted.
func (cf *CompiledFunction) Disassembler() []string {
	lines := make([]string, 0, len(cf.boundaries))
	for _, b := range cf.boundaries {
		lines = append(lines, fmt.Sprintf("%04x: %s", b.offset, b.text))
	}
	return lines
}
