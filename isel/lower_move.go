package isel

import (
	"fmt"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/internal/diag"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/value"
)

// lowerMove lowers an ir.Move: evaluate Source into regAcc, apply Op as a
// compound assignment if present, then store to Target (spec.md §4.4.4).
func (s *selector) lowerMove(n ir.Move) {
	if n.Op != ir.OpInvalid {
		s.lowerCompoundMove(n)
		return
	}
	s.evalExprToReg(regAcc, n.Source)
	s.storeToTarget(n.Target, regAcc)
}

// lowerCompoundMove handles `target OP= source` by reading Target's
// current value, computing the binop, then storing back — the same
// decomposition a stack-machine bytecode compiler uses (compiler_statements.go's
// compileAssignment), just with the read/compute/write happening through
// registers instead of stack pushes.
func (s *selector) lowerCompoundMove(n ir.Move) {
	s.evalExprToReg(regAcc, n.Target)
	s.asm.MovRegReg(asm.RDX, regAcc) // stash target's current value
	s.evalExprToReg(regRHS, n.Source)
	s.lowerBinopRegs(regAcc, ir.Binop{Op: n.Op}, asm.RDX, regRHS)
	s.storeToTarget(n.Target, regAcc)
}

// storeToTarget writes src to the Value location Target addresses.
func (s *selector) storeToTarget(target ir.Expr, src asm.Reg) {
	switch t := target.(type) {
	case ir.TempRef:
		s.storeTemp(t.Temp, src)
	case ir.Name:
		s.emitSetActivationProperty(t, src)
	case ir.Member:
		s.emitSetProperty(t, src)
	case ir.Subscript:
		s.emitSetElement(t, src)
	default:
		s.fail("%s", diag.InvalidMoveTarget(fmt.Sprintf("%T", target)))
	}
}

// evalExprToReg evaluates e, leaving its Value result in dst.
func (s *selector) evalExprToReg(dst asm.Reg, e ir.Expr) {
	switch n := e.(type) {
	case ir.Const:
		s.asm.MovRegImm64(dst, int64(constBits(n)))
	case ir.TempRef:
		s.loadTemp(dst, n.Temp)
	case ir.StringLit:
		s.emitInternString(dst, n.Value)
	case ir.RegExpLit:
		s.emitInternString(dst, n.Pattern) // regexp object construction is an engine/builtins concern; the literal's source text is what the selector itself can supply.
	case ir.Name:
		s.emitGetActivationProperty(dst, n)
	case ir.Member:
		s.emitGetProperty(dst, n)
	case ir.Subscript:
		s.emitGetElement(dst, n)
	case ir.Binop:
		s.lowerBinop(dst, n)
	case ir.Unop:
		s.lowerUnop(dst, n)
	case ir.Call:
		s.lowerCall(dst, n)
	case ir.New:
		s.lowerNew(dst, n)
	case ir.Closure:
		s.lowerClosure(dst, n)
	default:
		s.fail("%s", diag.UnsupportedExpression(fmt.Sprintf("%T", e)))
	}
}

// evalExprDiscard evaluates e for side effects only (an Exp statement).
func (s *selector) evalExprDiscard(e ir.Expr) {
	s.evalExprToReg(regAcc, e)
}

// constBits computes the Value bit pattern for a compile-time constant
// (spec.md §3.1's NaN-boxed encoding), so it can be loaded as a plain
// 64-bit immediate with no runtime helper call at all.
func constBits(c ir.Const) uint64 {
	switch c.Kind {
	case ir.ConstNull:
		return uint64(value.Null())
	case ir.ConstBool:
		return uint64(value.FromBool(c.Bool))
	case ir.ConstInt:
		return uint64(value.FromInt32(c.Int))
	case ir.ConstDouble:
		return uint64(value.FromDouble(c.Float))
	default:
		return uint64(value.Undefined())
	}
}

// literalString returns a stable *string for a compile-time string
// literal/identifier, reusing one per distinct text within this function.
// InternString dereferences it at call time, so its address must stay
// valid for Code's lifetime (see loadLiteralPointer/Retained).
func (s *selector) literalString(text string) *string {
	if v, ok := s.stringLits[text]; ok {
		return v
	}
	v := new(string)
	*v = text
	s.stringLits[text] = v
	return v
}

// loadLiteralPointer embeds obj's address as a 64-bit immediate into dst,
// retaining obj so the embedded address stays valid for Code's lifetime
// (spec.md §4.5's literal-pointer-patching technique, grounded on
// other_examples/64f2f987_launix-de-memcp__scm-jit_amd64.go.go).
func (s *selector) loadLiteralPointer(dst asm.Reg, obj interface{}, addr uintptr) {
	s.retained = append(s.retained, obj)
	s.asm.MovRegImm64(dst, int64(addr))
}
