package isel

import (
	"fmt"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/internal/diag"
	"github.com/cwbudde/qjscore/ir"
)

// Register conventions used throughout lower_*.go: RAX is the primary
// value accumulator (also where a helper's *value.Value return, if any,
// naturally lands per System V), RBX is the scratch pointer register used
// to address a Temp's backing slice element, RCX holds a binop's right-
// hand operand. None of these are live across a CallAbsolute, so no
// caller-saved spilling is needed around helper calls.
const (
	regAcc = asm.RAX
	regPtr = asm.RBX
	regRHS = asm.RCX
)

func (s *selector) lowerBlock(b *ir.BasicBlock) {
	for _, st := range b.Statements {
		s.lowerStmt(st)
	}
}

func (s *selector) lowerStmt(st ir.Stmt) {
	switch n := st.(type) {
	case ir.Move:
		s.lowerMove(n)
	case ir.Exp:
		s.evalExprDiscard(n.Expr)
	case ir.Jump:
		s.lowerJump(n)
	case ir.CJump:
		s.lowerCJump(n)
	case ir.Ret:
		s.lowerRet(n)
	case ir.Enter:
		s.lowerEnter(n)
	case ir.Leave:
		s.lowerLeave(n)
	default:
		s.fail("%s", diag.UnsupportedStatement(fmt.Sprintf("%T", st)))
	}
}

func (s *selector) lowerJump(n ir.Jump) {
	s.asm.Jmp(s.labelFor(n.Target))
}

// lowerCJump lowers a conditional branch. A tagged Value's raw bit
// pattern is never itself a valid truthiness test (TagNull/TagBoolean/
// TagInteger all pack to a nonzero word even for a falsy value, since the
// tag alone occupies the packed word's high bits), so Cond's evaluated
// Value is run through runtime.ToBoolean, which returns a clean 0/1 word
// TestRegReg can branch on directly.
func (s *selector) lowerCJump(n ir.CJump) {
	s.evalExprToReg(regAcc, n.Cond)
	s.callHelper(helperAddrs.toBoolean, regAcc)
	s.asm.TestRegReg(asm.RAX)
	s.asm.JumpIfNotZero(s.labelFor(n.True))
	s.asm.Jmp(s.labelFor(n.False))
}

func (s *selector) lowerRet(n ir.Ret) {
	s.evalExprToReg(regAcc, n.Value)
	s.storeToResult(regAcc)
	s.emitEpilogue()
}

// lowerEnter installs an exception handler frame naming n.HandlersBlock as
// the resume point (spec.md §3.9, §4.4.8). The actual unwind-stack push
// happens via the runtime helper create_exception_handler lowers to; Enter
// only needs to redirect this selector's own "where do thrown exceptions
// inside this scope branch to" bookkeeping.
func (s *selector) lowerEnter(n ir.Enter) {
	s.handlersLabel = s.labelFor(n.HandlersBlock)
	s.haveHandlers = true
	s.emitBuiltinCreateExceptionHandler(n.HandlersBlock)
}

func (s *selector) lowerLeave(ir.Leave) {
	s.emitBuiltinDeleteExceptionHandler()
}

func (s *selector) labelFor(b *ir.BasicBlock) asm.Label {
	l, ok := s.blockLabels[b]
	if !ok {
		s.fail("%s", diag.UnknownJumpTarget(b.Name))
		return asm.Label{}
	}
	return l
}

// addrOfTemp loads the address of t's backing Value slot into dst: the
// data pointer of ctx.Arguments (negative Temp) or ctx.Locals (otherwise),
// offset by the Temp's slice index (spec.md §4.4.2, §3.8's offset table).
func (s *selector) addrOfTemp(dst asm.Reg, t ir.Temp) {
	if t.IsArgument() {
		s.asm.MovRegMem(dst, asm.ContextRegister, int32(layout.ArgumentsPtr))
		s.asm.AddRegImm32(dst, int32(t.ArgumentIndex())*wordSize)
		return
	}
	s.asm.MovRegMem(dst, asm.ContextRegister, int32(layout.LocalsPtr))
	s.asm.AddRegImm32(dst, int32(t)*wordSize)
}

func (s *selector) loadTemp(dst asm.Reg, t ir.Temp) {
	s.addrOfTemp(dst, t)
	s.asm.MovRegMem(dst, dst, 0)
}

func (s *selector) storeTemp(t ir.Temp, src asm.Reg) {
	s.addrOfTemp(regPtr, t)
	s.asm.MovMemReg(regPtr, 0, src)
}

func (s *selector) storeToResult(src asm.Reg) {
	s.asm.MovMemReg(asm.ContextRegister, int32(layout.ResultOffset), src)
}

// evalToSlot evaluates e and immediately spills the result to operand
// slot i, freeing every register before the next sub-expression runs its
// own, potentially call-clobbering, evaluation (see numOperandSlots).
func (s *selector) evalToSlot(i int, e ir.Expr) {
	s.evalExprToReg(regAcc, e)
	s.asm.MovMemReg(asm.FrameRegister, s.operandSlotOffset(i), regAcc)
}

func (s *selector) loadSlot(dst asm.Reg, i int) {
	s.asm.MovRegMem(dst, asm.FrameRegister, s.operandSlotOffset(i))
}

func (s *selector) loadScratch(dst asm.Reg) {
	s.asm.MovRegMem(dst, asm.FrameRegister, s.scratchOffset)
}

func (s *selector) scratchAddr(dst asm.Reg) {
	s.asm.MovRegReg(dst, asm.FrameRegister)
	s.asm.AddRegImm32(dst, s.scratchOffset)
}

// emitExceptionCheck emits the standard post-helper-call sequence of
// spec.md §4.4.8: load ctx.HasUncaughtException, branch to the active
// handler block if nonzero, else to the function's uncaught-exception
// epilogue (which simply re-enters the epilogue — an uncaught exception
// still returns to the caller, who observes it via the same ctx fields,
// one frame up, per spec.md §3.9).
func (s *selector) emitExceptionCheck() {
	s.asm.MovReg32Mem(asm.RDX, asm.ContextRegister, int32(layout.HasExceptionOffset))
	s.asm.TestRegReg(asm.RDX)
	if s.haveHandlers {
		s.asm.JumpIfNotZero(s.handlersLabel)
		return
	}
	uncaught := s.asm.NewLabel()
	s.asm.JumpIfZero(uncaught)
	s.emitEpilogue()
	s.asm.Bind(uncaught)
}
