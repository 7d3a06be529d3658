package context

import "unsafe"

// ComputeLayout derives Layout from the live field offsets of Context
// itself (spec.md §6.2: "a single offset table ... generated from the
// struct definition, never hand-maintained separately"). Called once, when
// package isel initializes its layout variable; the instruction selector treats the result as
// part of its ABI contract with the runtime helpers.
func ComputeLayout() Layout {
	var c Context
	return Layout{
		LocalsPtr:            unsafe.Offsetof(c.Locals),
		ArgumentsPtr:         unsafe.Offsetof(c.Arguments),
		ResultOffset:         unsafe.Offsetof(c.Result),
		HasExceptionOffset:   unsafe.Offsetof(c.HasUncaughtException),
		ExceptionValueOffset: unsafe.Offsetof(c.ExceptionValue),
	}
}
