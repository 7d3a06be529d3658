// Package engine implements the execution engine of spec.md §4.3: it owns
// the interned-string and object handle tables a Value's String/Object tag
// resolves through, the prototype singletons, the global object, the
// unwind stack, and the executable code buffer instruction selection
// installs compiled functions into. *Engine satisfies both
// object.StringInterner and runtime.Resolver, the two narrow interfaces
// package object and package runtime declare to avoid importing this
// package back (the same trick the teacher's internal/interp/evaluator
// uses against internal/interp via SetFocusedInterfaces).
//
// Construction follows internal/interp/runner's "one struct owns the whole
// run" shape: NewWithOptions wires the code buffer, prototypes and global
// scope together in one place, rather than leaving an embedder to
// assemble them by hand.
package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/qjscore/asm"
	"github.com/cwbudde/qjscore/context"
	"github.com/cwbudde/qjscore/ir"
	"github.com/cwbudde/qjscore/object"
	"github.com/cwbudde/qjscore/value"
)

// initialCodeCapacity is the code buffer's starting mmap size; asm.Write
// grows it on demand, so this only avoids an immediate reallocation for
// every engine (spec.md §8.4's demo fixtures comfortably fit in one page).
const initialCodeCapacity = 64 * 1024

// Prototypes collects the engine's prototype singletons (spec.md §4.3:
// "own the prototype singletons for Object/String/Number/Boolean/Array/
// Function/Date/RegExp and expose the global object").
type Prototypes struct {
	Object   object.Object
	Function object.Object
	Array    object.Object
	String   object.Object
	Number   object.Object
	Boolean  object.Object
	Date     object.Object
	RegExp   object.Object
	Error    object.Object
}

// Engine is one embeddable instance of spec.md §4.3/§5: single-threaded,
// owned by one goroutine for its entire lifetime (spec.md §5's
// "scheduling model").
type Engine struct {
	codeBuf *asm.CodeBuffer

	strings     []*value.String
	stringIndex map[string]uint32

	objects []object.Object

	unwind context.UnwindStack

	functions     []*ir.Function
	functionIndex map[*ir.Function]int32
	entryPoints   []asm.EntryPoint
	retained      [][]interface{}
	compiledOnce  bool

	Proto  Prototypes
	root   *context.Context

	showCode bool
	codeOut  io.Writer
}

// Option configures a new Engine, following the teacher's runner.go opts
// pattern generalized from a single MaxRecursionDepth field to a closure
// list.
type Option func(*Engine)

// WithShowCode sets whether compiled functions are disassembled. A
// non-empty SHOW_CODE environment variable (spec.md §6.5) turns
// disassembly on whatever this option says, so WithShowCode(false) does
// not silence it.
func WithShowCode(show bool) Option {
	return func(e *Engine) { e.showCode = show }
}

// WithCodeWriter redirects disassembly output; defaults to os.Stderr.
func WithCodeWriter(w io.Writer) Option {
	return func(e *Engine) { e.codeOut = w }
}

// New creates an Engine with default options.
func New() *Engine { return NewWithOptions() }

// NewWithOptions wires the code buffer, prototype chain and global scope
// together (spec.md §4.3).
func NewWithOptions(opts ...Option) *Engine {
	buf, err := asm.NewCodeBuffer(initialCodeCapacity)
	if err != nil {
		// mmap failure at construction time is unrecoverable: there is no
		// partially-usable Engine to hand back.
		panic(fmt.Sprintf("engine: allocate code buffer: %v", err))
	}
	e := &Engine{
		codeBuf:       buf,
		stringIndex:   make(map[string]uint32),
		functionIndex: make(map[*ir.Function]int32),
		codeOut:       os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	if os.Getenv("SHOW_CODE") != "" {
		e.showCode = true
	}
	e.wirePrototypes()
	e.wireGlobalScope()
	return e
}

// wirePrototypes builds the singleton chain, every prototype ultimately
// rooted at Object.prototype (spec.md §4.3).
func (e *Engine) wirePrototypes() {
	e.Proto.Object = object.NewPlainObject(nil)
	e.Proto.Function = object.NewPlainObject(e.Proto.Object)
	e.Proto.Array = object.NewPlainObject(e.Proto.Object)
	e.Proto.String = object.NewPlainObject(e.Proto.Object)
	e.Proto.Number = object.NewPlainObject(e.Proto.Object)
	e.Proto.Boolean = object.NewPlainObject(e.Proto.Object)
	e.Proto.Date = object.NewPlainObject(e.Proto.Object)
	e.Proto.RegExp = object.NewPlainObject(e.Proto.Object)
	e.Proto.Error = object.NewPlainObject(e.Proto.Object)
}

// wireGlobalScope creates the outermost Context: every compiled function's
// lexical scope chain bottoms out here, and top-level Name lookups that
// resolve nowhere else land on its Activation (the global object).
func (e *Engine) wireGlobalScope() {
	root := context.New(e, nil, nil, 0, nil, nil, nil)
	root.EnsureActivation(e.Proto.Object, nil)
	e.root = root
}

// GlobalObject returns the global object every top-level scope bottoms
// out at (spec.md §4.3).
func (e *Engine) GlobalObject() *object.ActivationObject { return e.root.Activation }

// RootContext returns the outermost Context, the Outer/lexical scope a
// top-level compiled function's Closures ultimately capture.
func (e *Engine) RootContext() *context.Context { return e.root }

// Intern implements object.StringInterner (RegExpObject's synthetic
// "source" property, among others, needs to mint a String-tagged Value
// without importing this package).
func (e *Engine) Intern(s string) value.Value { return e.InternValue(s) }

// InternValue implements runtime.Resolver: mints a String-tagged Value,
// deduplicating against previously interned text so that two lookups of
// the same source name yield the same handle (spec.md §4.3's "canonical
// String* such that every lookup for the same source name yields
// pointer-equal keys", restated in terms of this engine's handle table).
func (e *Engine) InternValue(s string) value.Value {
	if idx, ok := e.stringIndex[s]; ok {
		return value.FromStringHandle(idx)
	}
	idx := uint32(len(e.strings))
	e.strings = append(e.strings, value.NewString(s))
	e.stringIndex[s] = idx
	return value.FromStringHandle(idx)
}

// InternObject implements runtime.Resolver: allocates a fresh handle for
// o. Unlike InternValue, no deduplication is attempted — two allocations
// are never the same object.
func (e *Engine) InternObject(o object.Object) value.Value {
	idx := uint32(len(e.objects))
	e.objects = append(e.objects, o)
	return value.FromObjectHandle(idx)
}

// Object implements runtime.Resolver: resolves an Object-tagged Value's
// handle back to its concrete object.Object.
func (e *Engine) Object(handle uint32) object.Object {
	if int(handle) >= len(e.objects) {
		return nil
	}
	return e.objects[handle]
}

// String implements runtime.Resolver: resolves a String-tagged Value's
// handle back to its interned *value.String.
func (e *Engine) String(handle uint32) *value.String {
	if int(handle) >= len(e.strings) {
		return nil
	}
	return e.strings[handle]
}

// UnwindStack implements runtime.Resolver: the engine owns the handler
// stack because handler frames outlive any single Context (spec.md §4.3's
// "maintain the unwind stack").
func (e *Engine) UnwindStack() *context.UnwindStack { return &e.unwind }
