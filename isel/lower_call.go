package isel

import (
	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/internal/diag"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/value"
)

// marshalArgs evaluates each argument in turn, storing it directly into
// the outgoing-argument marshaling area (spec.md §4.4.6 ABI variant 2)
// rather than an operand-staging slot: the Raw helpers read this area as
// a contiguous Value array via unsafe.Slice.
func (s *selector) marshalArgs(args []ir.Expr) {
	for i, a := range args {
		s.evalExprToReg(regAcc, a)
		s.asm.MovMemReg(asm.FrameRegister, s.argOutSlotOffset(i), regAcc)
	}
}

// argvAddr loads the address of the outgoing-argument area's first slot.
func (s *selector) argvAddr(dst asm.Reg) {
	s.asm.MovRegReg(dst, asm.FrameRegister)
	s.asm.AddRegImm32(dst, s.argOutSlotOffset(0))
}

// lowerCall lowers a Call expression, dispatching on Base's shape per
// spec.md §4.4.6: a Name with a Builtin tag goes to the builtin table, a
// plain Name calls a scope-resolved identifier, a Member calls a method,
// anything else calls by value with `this` left undefined.
func (s *selector) lowerCall(dst asm.Reg, n ir.Call) {
	if name, ok := n.Base.(ir.Name); ok && name.Builtin != ir.BuiltinNone {
		s.lowerBuiltinCall(dst, name.Builtin, n.Args)
		// builtin_throw is the only builtin that can raise; checking
		// unconditionally here is cheap and keeps this call site uniform
		// with the method/value/activation call paths below.
		s.emitExceptionCheck()
		return
	}
	switch base := n.Base.(type) {
	case ir.Name:
		s.marshalArgs(n.Args)
		s.scratchAddr(asm.RSI)
		s.loadNameLiteral(asm.RDX, base.Ident)
		s.argvAddr(asm.RCX)
		s.asm.MovRegImm32(asm.R8, int32(len(n.Args)))
		s.callHelper(helperAddrs.callActivation, asm.RSI, asm.RDX, asm.RCX, asm.R8)
	case ir.Member:
		s.evalToSlot(0, base.Base)
		s.marshalArgs(n.Args)
		s.scratchAddr(asm.RSI)
		s.loadSlot(asm.RDX, 0)
		s.loadNameLiteral(asm.RCX, base.Name)
		s.argvAddr(asm.R8)
		s.asm.MovRegImm32(asm.R9, int32(len(n.Args)))
		s.callHelper(helperAddrs.callProperty, asm.RSI, asm.RDX, asm.RCX, asm.R8, asm.R9)
	default:
		s.evalToSlot(0, n.Base)
		s.marshalArgs(n.Args)
		s.scratchAddr(asm.RSI)
		s.loadSlot(asm.RDX, 0)
		s.asm.MovRegImm64(asm.RCX, int64(value.Undefined()))
		s.argvAddr(asm.R8)
		s.asm.MovRegImm32(asm.R9, int32(len(n.Args)))
		s.callHelper(helperAddrs.callValue, asm.RSI, asm.RDX, asm.RCX, asm.R8, asm.R9)
	}
	s.emitExceptionCheck()
	s.loadScratch(dst)
}

// lowerNew lowers a New expression the same way as lowerCall but through
// the construct* helper family (no `this` argument).
func (s *selector) lowerNew(dst asm.Reg, n ir.New) {
	switch base := n.Base.(type) {
	case ir.Name:
		s.marshalArgs(n.Args)
		s.scratchAddr(asm.RSI)
		s.loadNameLiteral(asm.RDX, base.Ident)
		s.argvAddr(asm.RCX)
		s.asm.MovRegImm32(asm.R8, int32(len(n.Args)))
		s.callHelper(helperAddrs.constructActivation, asm.RSI, asm.RDX, asm.RCX, asm.R8)
	case ir.Member:
		s.evalToSlot(0, base.Base)
		s.marshalArgs(n.Args)
		s.scratchAddr(asm.RSI)
		s.loadSlot(asm.RDX, 0)
		s.loadNameLiteral(asm.RCX, base.Name)
		s.argvAddr(asm.R8)
		s.asm.MovRegImm32(asm.R9, int32(len(n.Args)))
		s.callHelper(helperAddrs.constructProperty, asm.RSI, asm.RDX, asm.RCX, asm.R8, asm.R9)
	default:
		s.evalToSlot(0, n.Base)
		s.marshalArgs(n.Args)
		s.scratchAddr(asm.RSI)
		s.loadSlot(asm.RDX, 0)
		s.argvAddr(asm.RCX)
		s.asm.MovRegImm32(asm.R8, int32(len(n.Args)))
		s.callHelper(helperAddrs.constructValue, asm.RSI, asm.RDX, asm.RCX, asm.R8)
	}
	s.emitExceptionCheck()
	s.loadScratch(dst)
}

// lowerClosure lowers a Closure expression via the function-table index
// s.functionIndex resolves (supplied by the engine's compile-time pre-pass
// over a program's nested functions; see Compile).
func (s *selector) lowerClosure(dst asm.Reg, n ir.Closure) {
	if s.functionIndex == nil {
		s.fail("%s", diag.ClosureLoweringRequiresResolver())
		return
	}
	idx := s.functionIndex(n.Function)
	s.asm.MovRegImm32(asm.RSI, idx)
	s.callHelper(helperAddrs.makeClosure, asm.RSI)
	if dst != asm.RAX {
		s.asm.MovRegReg(dst, asm.RAX)
	}
}
