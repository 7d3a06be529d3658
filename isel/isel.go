// Package isel is the instruction selector of spec.md §4.4: it walks an
// ir.Function's basic blocks and lowers each statement/expression directly
// into x86-64 machine code via package asm, rather than through any
// intermediate bytecode. The overall shape — one recursive-descent
// function per IR node kind, emitting into a growable buffer behind a
// forward-branch patch list — is grounded on the teacher's
// internal/bytecode/compiler_core.go / compiler_statements.go /
// compiler_expressions.go, adapted from "AST -> 32-bit bytecode words" to
// "ir.Function -> native x86-64 bytes".
//
// Temp addressing: every Temp (local or spill slot) lives in
// ctx.Locals[idx], every argument Temp in ctx.Arguments[idx] — both Go
// slices reached through context.Layout's LocalsPtr/ArgumentsPtr offsets
// off the context register (spec.md §3.8's single offset table). This is
// a deliberate departure from spec.md §4.4.1's literal frame layout (which
// puts spill slots, Temp indices >= LocalCount, in the reserved native
// stack area): here ctx.Locals is allocated with TempCount elements
// (context.New's slotCount argument — every call site must pass
// fn.TempCount, not fn.LocalCount) so named locals and spill slots share
// one GC-visible, bounds-safe backing array instead of splitting across a
// managed slice and a raw native frame. No separate native stack frame is
// needed for Temps as a result; the only native stack space this selector
// reserves is the outgoing-argument marshaling area a Call/New needs
// (spec.md §4.4.6 ABI variant 2).
//
// Calling convention note: every runtime helper this package calls
// receives its Context pointer first, followed by at most five further
// pointer/value.Value arguments (never more), by deliberate design of
// package runtime's function shapes — so the System V AMD64 integer/SSE
// register assignment CallAbsolute relies on lines up with each helper's
// Go parameter list without this package needing a full general-purpose
// ABI translation layer. Every Binop/Unop lowers to a direct call into its
// runtime helper (lower_binop.go) with no inline Integer-tagged fast path:
// taking one would need a tag-compare-and-branch vocabulary (a 32-bit
// immediate compare with a conditional jump) package asm does not expose
// yet, and the helpers already implement full, correct semantics for every
// CORE tag — only raw throughput on tight Integer-tagged loops is left on
// the table, not any observable behavior spec.md requires.
package isel

import (
	"fmt"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/value"
)

// CompileError reports a selector failure tied to the originating
// function and, where known, the offending basic block (spec.md §4.4's
// "the selector never needs to recover mid-function: one failure aborts
// the whole compile").
type CompileError struct {
	Function string
	Block    string
	Reason   string
}

func (e *CompileError) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("isel: %s: block %s: %s", e.Function, e.Block, e.Reason)
	}
	return fmt.Sprintf("isel: %s: %s", e.Function, e.Reason)
}

// CompiledFunction is the output of Compile: finished machine code plus
// enough bookkeeping for Disassembler and CodeBuffer placement.
type CompiledFunction struct {
	Name      string
	Code      []byte
	FrameSize int32

	// boundaries records the byte offset and textual form of each emitted
	// instruction, in emission order. disassemble (disasm.go) decodes them
	// from the finished Code, understanding only the encodings package asm
	// emits, so Disassembler can walk the buffer without a general x86
	// decoder.
	boundaries []instrBoundary

	// Retained holds every Go object (interned *value.String, *[]string
	// declare_vars tables, ...) whose address got baked into Code as an
	// immediate. Go's garbage collector does not move live objects, so
	// the embedded addresses stay valid — but nothing else may reference
	// these objects, so the engine must keep this slice alive for exactly
	// as long as Code itself is installed in a CodeBuffer.
	Retained []interface{}
}

type instrBoundary struct {
	offset int
	text   string
}

const wordSize = 8

// layout is computed once, when the package is initialized; every lowering function reads
// offsets from it rather than hardcoding unsafe.Offsetof results inline.
var layout = context.ComputeLayout()

// selector holds the per-function state threaded through the lowering
// functions in lower_*.go and blocks.go.
type selector struct {
	fn   *ir.Function
	asm  *asm.Assembler
	errs []error

	// frameSize is the native stack space reserved below FrameRegister:
	// the outgoing-argument marshaling area (spec.md §4.4.6) plus one
	// dedicated scratch Value slot used to stage a helper call's result
	// before it is loaded into a register or copied to its real target.
	frameSize int32
	// scratchOffset is the FrameRegister-relative offset of the scratch
	// Value slot (the lowest address in the reserved area).
	scratchOffset int32

	blockLabels map[*ir.BasicBlock]asm.Label

	handlersLabel asm.Label
	haveHandlers  bool

	// currentBlock tracks the current block's label text for CompileError,
	// purely cosmetic bookkeeping.
	currentBlock string

	// retained accumulates every Go object whose address got embedded as
	// an immediate in emitted code (see CompiledFunction.Retained).
	retained []interface{}
	// stringLits caches one *string per distinct literal so a function
	// body repeating the same identifier/string doesn't retain (or
	// allocate) a duplicate immediate.
	stringLits map[string]*string
	// stringObjs caches one *value.String per distinct property/activation
	// name, embedded directly as a name-argument pointer (GetProperty and
	// friends take *value.String, never an interned Value) — see
	// loadNameLiteral.
	stringObjs map[string]*value.String

	// functionIndex resolves a nested ir.Function literal (Closure's
	// operand) to the engine's stable function-table index, letting
	// lowerClosure call runtime.MakeClosure without package isel needing
	// to know anything about how the engine numbers functions. nil when
	// Compile is called without one (Closure lowering then fails cleanly).
	functionIndex func(*ir.Function) int32
}

// Compile lowers fn into a finished, linked CompiledFunction.
// functionIndex resolves a Closure expression's nested ir.Function to the
// engine's function-table index; pass nil for a function known not to
// contain any Closure expressions.
func Compile(fn *ir.Function, functionIndex func(*ir.Function) int32) (*CompiledFunction, error) {
	s := &selector{
		fn:            fn,
		asm:           asm.NewAssembler(),
		blockLabels:   make(map[*ir.BasicBlock]asm.Label),
		stringLits:    make(map[string]*string),
		stringObjs:    make(map[string]*value.String),
		functionIndex: functionIndex,
	}
	s.layoutFrame()

	for _, b := range fn.Blocks {
		s.blockLabels[b] = s.asm.NewLabel()
	}
	if fn.HandlersBlock != nil {
		s.handlersLabel = s.blockLabels[fn.HandlersBlock]
		s.haveHandlers = true
	}

	s.emitPrologue()
	for i, b := range fn.Blocks {
		if i > 0 {
			s.asm.Bind(s.blockLabels[b])
		}
		s.currentBlock = b.Name
		s.lowerBlock(b)
	}

	if err := s.asm.Link(); err != nil {
		return nil, &CompileError{Function: fn.Name, Reason: err.Error()}
	}
	if len(s.errs) > 0 {
		return nil, s.errs[0]
	}
	code := s.asm.Bytes()
	return &CompiledFunction{
		Name:       fn.Name,
		Code:       code,
		FrameSize:  s.frameSize,
		boundaries: disassemble(code),
		Retained:   s.retained,
	}, nil
}

func (s *selector) fail(format string, args ...interface{}) {
	s.errs = append(s.errs, &CompileError{Function: s.fn.Name, Block: s.currentBlock, Reason: fmt.Sprintf(format, args...)})
}

// numOperandSlots is the number of dedicated staging slots a single
// statement's sub-expressions spill through on their way to a helper
// call's argument registers. Evaluating one dynamic operand at a time and
// spilling it immediately — rather than trying to keep several operands
// alive across nested helper calls in registers — sidesteps a full
// register allocator: every nested call is free to clobber every
// caller-saved register, since by the time it runs, the only live values
// are already safely in their slots (spec.md §4.4.2's "no register ever
// holds a live Value across a call the selector itself emits").
const numOperandSlots = 4

// layoutFrame sizes the native stack area this function's prologue
// reserves: numOperandSlots operand-staging slots, one scratch/result
// slot, then the outgoing-argument marshaling area sized to the widest
// call in the body (spec.md §4.4.6). Temps themselves need no native
// stack space (see package doc).
func (s *selector) layoutFrame() {
	fixed := int32(numOperandSlots + 1)
	slots := fixed + int32(s.fn.MaxNumberOfArguments)
	size := slots * wordSize
	if size%16 != 0 {
		size += 16 - (size % 16)
	}
	s.frameSize = size
	s.scratchOffset = -int32(numOperandSlots+1) * wordSize
}

// operandSlotOffset returns the FrameRegister-relative offset of the i'th
// (0-based) operand-staging slot.
func (s *selector) operandSlotOffset(i int) int32 {
	return -int32(i+1) * wordSize
}

// argOutSlotOffset returns the FrameRegister-relative offset of outgoing
// argument slot i (0-based) within the marshaling area, which begins
// right after the fixed operand/scratch slots.
func (s *selector) argOutSlotOffset(i int) int32 {
	return -int32(numOperandSlots+1+i+1) * wordSize
}

func (s *selector) emitPrologue() {
	s.asm.Prologue(s.frameSize)
	// The entry block is bound immediately after the prologue; Compile's
	// loop only binds subsequent blocks explicitly since Blocks[0] falls
	// through from here by construction.
	s.asm.Bind(s.blockLabels[s.fn.Entry()])
}

func (s *selector) emitEpilogue() {
	s.asm.Epilogue(s.frameSize)
}
