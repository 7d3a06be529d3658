package isel

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/internal/diag"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/value"
)

// literalStringObj returns a stable *value.String for a compile-time
// property/activation name, reusing one per distinct text within this
// function. Unlike literalString (script string literals, which become
// interned Values through InternString), these are passed straight to
// runtime helpers expecting a *value.String argument and never go through
// the engine's string-handle table at all.
func (s *selector) literalStringObj(text string) *value.String {
	if v, ok := s.stringObjs[text]; ok {
		return v
	}
	v := value.NewString(text)
	s.stringObjs[text] = v
	return v
}

func (s *selector) loadNameLiteral(dst asm.Reg, text string) {
	obj := s.literalStringObj(text)
	s.loadLiteralPointer(dst, obj, uintptr(unsafe.Pointer(obj)))
}

// emitInternString lowers a StringLit/RegExpLit's source text into a
// String-tagged Value via runtime.InternString, which mints (or reuses) an
// engine-owned handle — the form a script-visible string Value needs,
// distinct from the raw *value.String pointers loadNameLiteral produces.
func (s *selector) emitInternString(dst asm.Reg, text string) {
	ptr := s.literalString(text)
	s.loadLiteralPointer(asm.RSI, ptr, uintptr(unsafe.Pointer(ptr)))
	s.callHelper(helperAddrs.internString, asm.RSI)
	if dst != asm.RAX {
		s.asm.MovRegReg(dst, asm.RAX)
	}
}

// emitGetProperty lowers a Member read (spec.md §4.4.4).
func (s *selector) emitGetProperty(dst asm.Reg, n ir.Member) {
	s.evalToSlot(0, n.Base)
	s.scratchAddr(asm.RSI)
	s.loadSlot(asm.RDX, 0)
	s.loadNameLiteral(asm.RCX, n.Name)
	s.callHelper(helperAddrs.getProperty, asm.RSI, asm.RDX, asm.RCX)
	s.loadScratch(dst)
}

// emitSetProperty lowers a Member write. src is protected in operand slot
// 2 before Base is evaluated, since evaluating Base may itself call a
// helper that would otherwise clobber whatever register src started in.
func (s *selector) emitSetProperty(n ir.Member, src asm.Reg) {
	s.asm.MovMemReg(asm.FrameRegister, s.operandSlotOffset(2), src)
	s.evalToSlot(0, n.Base)
	s.loadSlot(asm.RSI, 0)
	s.loadNameLiteral(asm.RDX, n.Name)
	s.loadSlot(asm.RCX, 2)
	s.callHelper(helperAddrs.setProperty, asm.RSI, asm.RDX, asm.RCX)
}

// emitGetElement lowers a Subscript read.
func (s *selector) emitGetElement(dst asm.Reg, n ir.Subscript) {
	s.evalToSlot(0, n.Base)
	s.evalToSlot(1, n.Index)
	s.scratchAddr(asm.RSI)
	s.loadSlot(asm.RDX, 0)
	s.loadSlot(asm.RCX, 1)
	s.callHelper(helperAddrs.getElement, asm.RSI, asm.RDX, asm.RCX)
	s.loadScratch(dst)
}

// emitSetElement lowers a Subscript write, protecting src the same way
// emitSetProperty does.
func (s *selector) emitSetElement(n ir.Subscript, src asm.Reg) {
	s.asm.MovMemReg(asm.FrameRegister, s.operandSlotOffset(2), src)
	s.evalToSlot(0, n.Base)
	s.evalToSlot(1, n.Index)
	s.loadSlot(asm.RSI, 0)
	s.loadSlot(asm.RDX, 1)
	s.loadSlot(asm.RCX, 2)
	s.callHelper(helperAddrs.setElement, asm.RSI, asm.RDX, asm.RCX)
}

// emitGetActivationProperty lowers a Name read, special-casing `this`
// exactly as runtime.GetThisObject's doc comment describes.
func (s *selector) emitGetActivationProperty(dst asm.Reg, n ir.Name) {
	s.scratchAddr(asm.RSI)
	if n.Ident == "this" {
		s.callHelper(helperAddrs.getThisObject, asm.RSI)
		s.loadScratch(dst)
		return
	}
	s.loadNameLiteral(asm.RDX, n.Ident)
	s.callHelper(helperAddrs.getActivationProperty, asm.RSI, asm.RDX)
	s.loadScratch(dst)
}

// emitSetActivationProperty lowers a Name write.
func (s *selector) emitSetActivationProperty(n ir.Name, src asm.Reg) {
	s.asm.MovMemReg(asm.FrameRegister, s.operandSlotOffset(2), src)
	s.loadNameLiteral(asm.RSI, n.Ident)
	s.loadSlot(asm.RDX, 2)
	s.callHelper(helperAddrs.setActivationProperty, asm.RSI, asm.RDX)
}

// blockIndex resolves a handler target block to its position in the
// function's block list, the stable integer create_exception_handler
// records on the unwind stack (spec.md §3.9; intra-function resumption
// itself happens through emitExceptionCheck's direct branch to
// s.handlersLabel, never through this index).
func (s *selector) blockIndex(block *ir.BasicBlock) int32 {
	for i, b := range s.fn.Blocks {
		if b == block {
			return int32(i)
		}
	}
	s.fail("%s", diag.HandlerBlockNotFound(block.Name))
	return -1
}

func (s *selector) emitBuiltinCreateExceptionHandler(block *ir.BasicBlock) {
	s.asm.MovRegImm32(asm.RSI, s.blockIndex(block))
	s.callHelper(helperAddrs.createExceptionHandler, asm.RSI)
}

func (s *selector) emitBuiltinDeleteExceptionHandler() {
	s.callHelper(helperAddrs.deleteExceptionHandler)
}

// lowerBuiltinCall dispatches a Call whose Base names one of the
// distinguished builtins of spec.md §4.4.7.
func (s *selector) lowerBuiltinCall(dst asm.Reg, b ir.Builtin, args []ir.Expr) {
	switch b {
	case ir.BuiltinTypeof:
		s.evalToSlot(0, args[0])
		s.loadSlot(asm.RSI, 0)
		s.callHelper(helperAddrs.typeofValue, asm.RSI)
		s.moveFromRAX(dst)
	case ir.BuiltinDelete:
		s.lowerBuiltinDelete(dst, args[0])
	case ir.BuiltinThrow:
		s.evalToSlot(0, args[0])
		s.loadSlot(asm.RSI, 0)
		s.callHelper(helperAddrs.builtinThrow, asm.RSI)
		s.asm.MovRegImm64(dst, int64(value.Undefined()))
	case ir.BuiltinCreateExceptionHandler:
		// Only Enter carries the resume-block target this builtin needs;
		// no front end should ever reach it through a plain Call.
		s.fail("%s", diag.MisplacedCreateExceptionHandler())
	case ir.BuiltinDeleteExceptionHandler:
		s.emitBuiltinDeleteExceptionHandler()
		s.asm.MovRegImm64(dst, int64(value.Undefined()))
	case ir.BuiltinGetException:
		s.callHelper(helperAddrs.getException)
		s.moveFromRAX(dst)
	case ir.BuiltinClearException:
		s.callHelper(helperAddrs.clearException)
		s.asm.MovRegImm64(dst, int64(value.Undefined()))
	case ir.BuiltinForeachIteratorObject:
		s.evalToSlot(0, args[0])
		s.loadSlot(asm.RSI, 0)
		s.callHelper(helperAddrs.foreachIteratorObject, asm.RSI)
		s.moveFromRAX(dst)
	case ir.BuiltinForeachNextPropertyName:
		s.evalToSlot(0, args[0])
		s.loadSlot(asm.RSI, 0)
		s.callHelper(helperAddrs.foreachNextPropertyName, asm.RSI)
		s.moveFromRAX(dst)
	case ir.BuiltinPushWith:
		s.evalToSlot(0, args[0])
		s.loadSlot(asm.RSI, 0)
		s.callHelper(helperAddrs.pushWith, asm.RSI)
		s.asm.MovRegImm64(dst, int64(value.Undefined()))
	case ir.BuiltinPopWith:
		s.callHelper(helperAddrs.popWith)
		s.asm.MovRegImm64(dst, int64(value.Undefined()))
	case ir.BuiltinDeclareVars:
		s.lowerBuiltinDeclareVars(dst, args)
	default:
		s.fail("%s", diag.UnsupportedBuiltin(fmt.Sprintf("%v", b)))
	}
}

func (s *selector) moveFromRAX(dst asm.Reg) {
	if dst != asm.RAX {
		s.asm.MovRegReg(dst, asm.RAX)
	}
}

// lowerBuiltinDelete lowers `delete` over target's shape: a Temp (or any
// other non-named target) has no binding to remove and yields a literal
// false (spec.md §4.4.7), without reaching a runtime helper at all.
func (s *selector) lowerBuiltinDelete(dst asm.Reg, target ir.Expr) {
	switch t := target.(type) {
	case ir.Member:
		s.evalToSlot(0, t.Base)
		s.loadSlot(asm.RSI, 0)
		s.loadNameLiteral(asm.RDX, t.Name)
		s.callHelper(helperAddrs.deleteMember, asm.RSI, asm.RDX)
	case ir.Subscript:
		s.evalToSlot(0, t.Base)
		s.evalToSlot(1, t.Index)
		s.loadSlot(asm.RSI, 0)
		s.loadSlot(asm.RDX, 1)
		s.callHelper(helperAddrs.deleteSubscript, asm.RSI, asm.RDX)
	case ir.Name:
		s.loadNameLiteral(asm.RSI, t.Ident)
		s.callHelper(helperAddrs.deleteName, asm.RSI)
	default:
		s.asm.MovRegImm64(dst, int64(value.FromBool(false)))
		return
	}
	s.moveFromRAX(dst)
}

// lowerBuiltinDeclareVars lowers declare_vars from a Call whose arguments
// are the StringLit names to declare. Every declared name is treated as
// non-deletable (the `var`, not `eval`-introduced, case): DeclareVarsRaw's
// deletable slice threads the distinction through for forward
// compatibility, but no front end in this repository ever produces a
// deletable declaration.
func (s *selector) lowerBuiltinDeclareVars(dst asm.Reg, args []ir.Expr) {
	names := make([]string, 0, len(args))
	for _, a := range args {
		lit, ok := a.(ir.StringLit)
		if !ok {
			s.fail("%s", diag.DeclareVarsRequiresStringLiterals())
			return
		}
		names = append(names, lit.Value)
	}
	deletable := make([]bool, len(names))
	s.retained = append(s.retained, &names, &deletable)
	s.asm.MovRegImm64(asm.RSI, int64(uintptr(unsafe.Pointer(&names))))
	s.asm.MovRegImm64(asm.RDX, int64(uintptr(unsafe.Pointer(&deletable))))
	s.callHelper(helperAddrs.declareVars, asm.RSI, asm.RDX)
	s.asm.MovRegImm64(dst, int64(value.Undefined()))
}
