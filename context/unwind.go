package context

// HandlerFrame is one entry of the engine's unwind stack (spec.md §3.9,
// §5.3): a (Context, resume point) pair installed by
// create_exception_handler and consulted by builtin_throw. Go cannot
// longjmp across arbitrary native frames, so ResumeBlock is not a saved
// jump buffer — it names the IR basic block the generated code branches to
// once a throw sets HasUncaughtException; the actual control transfer is
// the ordinary exception-check-and-branch sequence of spec.md §4.4.8,
// unwinding one activation at a time (SPEC_FULL.md §5.6).
type HandlerFrame struct {
	Ctx         *Context
	ResumeBlock int
}

// UnwindStack is the LIFO of handler frames an engine maintains across
// possibly-reentrant calls (spec.md §5: "native callbacks invoked via
// NativeFunction may recursively enter the engine ... the unwind stack
// must be sized to accommodate this recursion depth").
type UnwindStack struct {
	frames []HandlerFrame
}

// NewUnwindStack creates an empty unwind stack.
func NewUnwindStack() *UnwindStack {
	return &UnwindStack{}
}

// Push installs a new handler frame (create_exception_handler, spec.md
// §4.4.7).
func (s *UnwindStack) Push(ctx *Context, resumeBlock int) {
	s.frames = append(s.frames, HandlerFrame{Ctx: ctx, ResumeBlock: resumeBlock})
}

// Pop removes the innermost handler frame (delete_exception_handler,
// spec.md §4.4.7). Returns false if the stack was already empty.
func (s *UnwindStack) Pop() (HandlerFrame, bool) {
	n := len(s.frames)
	if n == 0 {
		return HandlerFrame{}, false
	}
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f, true
}

// Top returns the innermost handler frame without removing it, or false if
// the stack is empty.
func (s *UnwindStack) Top() (HandlerFrame, bool) {
	n := len(s.frames)
	if n == 0 {
		return HandlerFrame{}, false
	}
	return s.frames[n-1], true
}

// Len reports the current handler-frame depth.
func (s *UnwindStack) Len() int { return len(s.frames) }

// UnwindTo pops frames until the one belonging to target remains on top,
// discarding any nested handler frames installed by calls target itself
// made (used when an exception unwinds through several activations before
// finding a handler).
func (s *UnwindStack) UnwindTo(target *Context) {
	for n := len(s.frames); n > 0; n = len(s.frames) {
		if s.frames[n-1].Ctx == target {
			return
		}
		s.frames = s.frames[:n-1]
	}
}
