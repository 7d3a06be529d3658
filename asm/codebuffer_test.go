package asm

import "testing"

func TestCodeBufferWriteAndFinalize(t *testing.T) {
	buf, err := NewCodeBuffer(pageSize)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	a := NewAssembler()
	a.MovRegImm32(RAX, 7)
	a.Ret()
	if err := a.Link(); err != nil {
		t.Fatalf("Link: %v", err)
	}
	off, err := buf.Write(a.Bytes())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if off != 0 {
		t.Fatalf("first Write should land at offset 0, got %d", off)
	}
	if err := buf.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if _, err := buf.Write([]byte{0x90}); err == nil {
		t.Fatalf("Write after Finalize should fail")
	}
}

func TestCodeBufferGrows(t *testing.T) {
	buf, err := NewCodeBuffer(pageSize)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	big := make([]byte, pageSize*3)
	for i := range big {
		big[i] = 0x90
	}
	off, err := buf.Write(big)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if off != 0 {
		t.Fatalf("offset = %d, want 0", off)
	}
}

func TestRelocAbs64Patched(t *testing.T) {
	buf, err := NewCodeBuffer(pageSize)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	placeholder := make([]byte, 8)
	off, err := buf.Write(placeholder)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	const want uintptr = 0x1122334455667788
	buf.AddRelocation(RelocAbs64, off, want)
	if err := buf.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	got := *(*uintptr)(buf.EntryPointAt(off))
	if got != want {
		t.Fatalf("patched abs64 = %#x, want %#x", got, want)
	}
}

func TestMakeEntryPointCalls(t *testing.T) {
	buf, err := NewCodeBuffer(pageSize)
	if err != nil {
		t.Fatalf("NewCodeBuffer: %v", err)
	}
	a := NewAssembler()
	// A degenerate function body: just `ret` immediately with whatever is
	// in RAX on entry (the test only checks that invocation doesn't crash
	// and MakeEntryPoint produces a callable value of the right shape).
	a.Ret()
	if err := a.Link(); err != nil {
		t.Fatalf("Link: %v", err)
	}
	off, err := buf.Write(a.Bytes())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := buf.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	fn := MakeEntryPoint(buf.EntryPointAt(off))
	if fn == nil {
		t.Fatalf("MakeEntryPoint returned nil")
	}
}
