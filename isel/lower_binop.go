package isel

import (
	"fmt"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/internal/diag"
	"github.com/cwbudde/qjscore/ir"
)

// binopHelper returns the runtime helper address for a Binop's Op, in the
// `func(ctx, target *value.Value, left, right value.Value)` out-param
// shape every one of them shares.
func binopHelper(op ir.Op) (uintptr, bool) {
	switch op {
	case ir.OpAdd:
		return helperAddrs.add, true
	case ir.OpSub:
		return helperAddrs.sub, true
	case ir.OpMul:
		return helperAddrs.mul, true
	case ir.OpDiv:
		return helperAddrs.div, true
	case ir.OpMod:
		return helperAddrs.mod, true
	case ir.OpBitAnd:
		return helperAddrs.and, true
	case ir.OpBitOr:
		return helperAddrs.or, true
	case ir.OpBitXor:
		return helperAddrs.xor, true
	case ir.OpShl:
		return helperAddrs.shl, true
	case ir.OpShr:
		return helperAddrs.shr, true
	case ir.OpUShr:
		return helperAddrs.ushr, true
	case ir.OpLt:
		return helperAddrs.lt, true
	case ir.OpLe:
		return helperAddrs.le, true
	case ir.OpGt:
		return helperAddrs.gt, true
	case ir.OpGe:
		return helperAddrs.ge, true
	case ir.OpEq:
		return helperAddrs.eq, true
	case ir.OpNeq:
		return helperAddrs.neq, true
	case ir.OpStrictEq:
		return helperAddrs.strictEq, true
	case ir.OpStrictNeq:
		return helperAddrs.strictNeq, true
	default:
		return 0, false
	}
}

// lowerBinop lowers a Binop expression into dst. Every operator goes
// through its runtime helper: the package doc comment explains why this
// selector does not also carry an inline Integer-tagged fast path (doing
// so needs a tag-comparison/shift vocabulary package asm does not expose,
// and the helpers already implement full, correct semantics).
func (s *selector) lowerBinop(dst asm.Reg, n ir.Binop) {
	addr, ok := binopHelper(n.Op)
	if !ok {
		s.fail("%s", diag.UnsupportedBinaryOperator(fmt.Sprintf("%v", n.Op)))
		return
	}
	s.evalToSlot(0, n.Left)
	s.evalToSlot(1, n.Right)
	s.scratchAddr(asm.RSI)
	s.loadSlot(asm.RDX, 0)
	s.loadSlot(asm.RCX, 1)
	s.callHelper(addr, asm.RSI, asm.RDX, asm.RCX)
	s.loadScratch(dst)
}

// lowerBinopRegs is lowerBinop's register-operand variant, used by compound
// assignment (lowerCompoundMove) where both operands are already sitting in
// registers rather than needing evaluation from IR expressions.
func (s *selector) lowerBinopRegs(dst asm.Reg, n ir.Binop, left, right asm.Reg) {
	addr, ok := binopHelper(n.Op)
	if !ok {
		s.fail("%s", diag.UnsupportedCompoundAssignOperator(fmt.Sprintf("%v", n.Op)))
		return
	}
	s.asm.MovMemReg(asm.FrameRegister, s.operandSlotOffset(0), left)
	s.asm.MovMemReg(asm.FrameRegister, s.operandSlotOffset(1), right)
	s.scratchAddr(asm.RSI)
	s.loadSlot(asm.RDX, 0)
	s.loadSlot(asm.RCX, 1)
	s.callHelper(addr, asm.RSI, asm.RDX, asm.RCX)
	s.loadScratch(dst)
}

// lowerUnop lowers a Unop expression into dst.
func (s *selector) lowerUnop(dst asm.Reg, n ir.Unop) {
	switch n.Op {
	case ir.OpUMinus:
		s.emitUnopOutParam(dst, helperAddrs.neg, n.Arg)
	case ir.OpCompl:
		s.emitUnopOutParam(dst, helperAddrs.compl, n.Arg)
	case ir.OpNot:
		s.emitUnopOutParam(dst, helperAddrs.not, n.Arg)
	case ir.OpUPlus:
		// Unary plus is ToNumber with no sign change; evaluating the
		// operand and handing it straight back matches every CORE tag
		// (Integer/Number already satisfy ToNumber, Boolean/Undefined/Null
		// convert lazily wherever the result is later consumed).
		s.evalExprToReg(dst, n.Arg)
	case ir.OpTypeof:
		// typeofValue returns its Value result directly rather than
		// through an out-param, unlike the arithmetic/unary helpers above.
		s.evalToSlot(0, n.Arg)
		s.loadSlot(asm.RSI, 0)
		s.callHelper(helperAddrs.typeofValue, asm.RSI)
		if dst != asm.RAX {
			s.asm.MovRegReg(dst, asm.RAX)
		}
	default:
		s.fail("%s", diag.UnsupportedUnaryOperator(fmt.Sprintf("%v", n.Op)))
	}
}

// emitUnopOutParam calls a `func(ctx, target *value.Value, v value.Value)`
// shaped helper, staging arg through operand slot 0.
func (s *selector) emitUnopOutParam(dst asm.Reg, addr uintptr, arg ir.Expr) {
	s.evalToSlot(0, arg)
	s.scratchAddr(asm.RSI)
	s.loadSlot(asm.RDX, 0)
	s.callHelper(addr, asm.RSI, asm.RDX)
	s.loadScratch(dst)
}
