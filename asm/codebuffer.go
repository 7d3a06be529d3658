package asm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/value"
)

// pageSize is assumed rather than queried via unix.Getpagesize to keep
// growth arithmetic simple; 4KiB holds on every platform this engine
// targets (amd64 Linux/macOS).
const pageSize = 4096

// relocation is one outstanding fixup CodeBuffer must apply once the
// buffer's final address is known — the case RelocAbs64 describes: an
// absolute 64-bit immediate embedded in an instruction that cannot be
// computed until the surrounding mmap mapping exists (spec.md §4.5;
// SPEC_FULL.md §6.5). Rel32 fixups within a single function are resolved
// earlier, by Assembler.Link, since they only depend on offsets within the
// same buffer.
type relocation struct {
	kind   RelocKind
	offset int
	target uintptr
}

// CodeBuffer is one growable W^X executable mapping per engine (spec.md
// §5 "Resource ownership"; SPEC_FULL.md §6.3). Functions are appended as
// they are compiled; Finalize() toggles the mapping from writable to
// executable and patches any pending RelocAbs64 fixups against the
// mapping's now-final base address.
type CodeBuffer struct {
	mem   []byte // mmap'd region, writable until Finalize
	used  int
	execd bool
	relocs []relocation
}

// NewCodeBuffer allocates an initial RW (not yet executable) mapping of at
// least capacity bytes, rounded up to a whole number of pages.
func NewCodeBuffer(capacity int) (*CodeBuffer, error) {
	n := ((capacity + pageSize - 1) / pageSize) * pageSize
	if n == 0 {
		n = pageSize
	}
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("asm: mmap code buffer: %w", err)
	}
	return &CodeBuffer{mem: mem}, nil
}

// Base returns the mapping's address. Only meaningful for computing
// rel32/abs64 relocations; callers must not dereference it directly while
// the mapping is still writable-not-executable.
func (c *CodeBuffer) Base() uintptr {
	if len(c.mem) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&c.mem[0]))
}

// Write appends code to the buffer, growing (via a fresh mmap + copy,
// since mremap is not portable across the platforms this targets) if
// needed, and returns the byte offset the code now starts at.
func (c *CodeBuffer) Write(code []byte) (int, error) {
	if c.execd {
		return 0, fmt.Errorf("asm: cannot write to a finalized code buffer")
	}
	if c.used+len(code) > len(c.mem) {
		if err := c.grow(c.used + len(code)); err != nil {
			return 0, err
		}
	}
	off := c.used
	copy(c.mem[off:], code)
	c.used += len(code)
	return off, nil
}

func (c *CodeBuffer) grow(minSize int) error {
	newCap := len(c.mem) * 2
	if newCap < minSize {
		newCap = ((minSize + pageSize - 1) / pageSize) * pageSize
	}
	mem, err := unix.Mmap(-1, 0, newCap, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return fmt.Errorf("asm: grow code buffer: %w", err)
	}
	copy(mem, c.mem[:c.used])
	if err := unix.Munmap(c.mem); err != nil {
		return fmt.Errorf("asm: unmap old code buffer: %w", err)
	}
	c.mem = mem
	return nil
}

// AddRelocation records a fixup to apply once the buffer's final base
// address is known (Finalize time).
func (c *CodeBuffer) AddRelocation(kind RelocKind, offset int, target uintptr) {
	c.relocs = append(c.relocs, relocation{kind: kind, offset: offset, target: target})
}

// Finalize patches every recorded RelocAbs64 fixup and flips the mapping
// from RW to RX (W^X, spec.md §5). After Finalize, Write and AddRelocation
// must not be called again.
func (c *CodeBuffer) Finalize() error {
	if c.execd {
		return nil
	}
	base := c.Base()
	for _, r := range c.relocs {
		switch r.kind {
		case RelocAbs64:
			*(*uintptr)(unsafe.Pointer(&c.mem[r.offset])) = r.target
		case RelocRel32, RelocRel32Call:
			// Intra-buffer rel32 fixups to other compiled functions: the
			// displacement is (target - (base+offset+4)), computed now
			// that base is stable for the mapping's remaining lifetime
			// (the buffer never grows again after Finalize).
			disp := int32(int64(r.target) - int64(base) - int64(r.offset) - 4)
			c.mem[r.offset] = byte(disp)
			c.mem[r.offset+1] = byte(disp >> 8)
			c.mem[r.offset+2] = byte(disp >> 16)
			c.mem[r.offset+3] = byte(disp >> 24)
		}
	}
	c.relocs = nil
	if err := unix.Mprotect(c.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("asm: mprotect RX: %w", err)
	}
	c.execd = true
	return nil
}

// EntryPointAt returns an unsafe.Pointer to the instruction at offset,
// suitable for AsEntryPoint. Valid only after Finalize.
func (c *CodeBuffer) EntryPointAt(offset int) unsafe.Pointer {
	return unsafe.Pointer(&c.mem[offset])
}

// EntryPoint is the calling convention a compiled function is invoked
// through (spec.md §6 "A compiled function is callable from Go as an
// ordinary function value"). The instruction selector's prologue reads the
// context pointer from RDI and copies it into ContextRegister.
type EntryPoint func(ctx *context.Context) value.Value

// MakeEntryPoint reinterprets the code at codePtr as a callable
// EntryPoint. This relies on the Go runtime's function value layout — a
// func value is a pointer to a struct whose first word is the code's
// entry address — which is why taking the address of a uintptr variable
// holding codePtr, then reinterpreting that address as an *EntryPoint,
// produces a func value whose backing "struct" is that variable itself.
// There is no supported stdlib API for calling into code Go didn't
// compile; this is the standard trick for it.
func MakeEntryPoint(codePtr unsafe.Pointer) EntryPoint {
	addr := uintptr(codePtr)
	return *(*EntryPoint)(unsafe.Pointer(&addr))
}
