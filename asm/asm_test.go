package asm

import "testing"

func TestLinkResolvesForwardJump(t *testing.T) {
	a := NewAssembler()
	target := a.NewLabel()
	j := a.Jmp(target)
	a.Bind(target)
	a.Ret()

	if err := a.Link(); err != nil {
		t.Fatalf("Link: %v", err)
	}
	code := a.Bytes()
	disp := int32(code[j.siteOffset]) | int32(code[j.siteOffset+1])<<8 |
		int32(code[j.siteOffset+2])<<16 | int32(code[j.siteOffset+3])<<24
	want := int32(len(code) - 1 - (j.siteOffset + 4))
	if disp != want {
		t.Fatalf("displacement = %d, want %d", disp, want)
	}
}

func TestLinkFailsOnUnboundLabel(t *testing.T) {
	a := NewAssembler()
	target := a.NewLabel()
	a.Jmp(target)
	if err := a.Link(); err == nil {
		t.Fatalf("expected Link to fail on an unbound label")
	}
}

func TestPrologueEpilogueBalanced(t *testing.T) {
	a := NewAssembler()
	a.Prologue(32)
	a.Epilogue(32)
	if err := a.Link(); err != nil {
		t.Fatalf("Link: %v", err)
	}
	code := a.Bytes()
	if len(code) == 0 || code[len(code)-1] != 0xC3 {
		t.Fatalf("expected function to end with ret (0xC3), got %v", code)
	}
}

func TestOverflowTrapBranchesToFallback(t *testing.T) {
	a := NewAssembler()
	fallback := a.NewLabel()
	a.AddRegReg(RAX, RCX)
	j := a.JumpIfOverflow(fallback)
	a.Ret()
	a.Bind(fallback)
	a.Ret()

	if err := a.Link(); err != nil {
		t.Fatalf("Link: %v", err)
	}
	code := a.Bytes()
	disp := int32(code[j.siteOffset]) | int32(code[j.siteOffset+1])<<8 |
		int32(code[j.siteOffset+2])<<16 | int32(code[j.siteOffset+3])<<24
	wantOff := len(code) - 1
	gotOff := j.siteOffset + 4 + int(disp)
	if gotOff != wantOff {
		t.Fatalf("overflow branch target offset = %d, want %d", gotOff, wantOff)
	}
}
