package isel

import "github.com/cwbudde/qjscore/asm"

// argRegs lists the System V AMD64 integer argument registers in order.
// Every runtime helper takes *context.Context first, so callHelper always
// reserves argRegs[0] for it and places the caller-supplied args after.
var argRegs = [...]asm.Reg{asm.RDI, asm.RSI, asm.RDX, asm.RCX, asm.R8, asm.R9}

// callHelper calls the Go function at addr with ctx as its first argument
// followed by args, leaving the result (if any) in RAX. Callers are
// responsible for keeping args clear of argRegs slots they haven't been
// moved into yet; every call site in this package reaches args through
// operand-staging slots or otherwise non-conflicting registers, so no
// shuffle is needed.
func (s *selector) callHelper(addr uintptr, args ...asm.Reg) {
	s.asm.MovRegReg(asm.RDI, asm.ContextRegister)
	for i, r := range args {
		dst := argRegs[i+1]
		if dst != r {
			s.asm.MovRegReg(dst, r)
		}
	}
	s.asm.CallAbsolute(addr)
}
