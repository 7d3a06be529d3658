// Package diag centralizes the instruction selector's compile-time failure
// messages (SPEC_FULL.md §3 AMBIENT STACK), following the message-catalog
// convention of the teacher's internal/errors package: lower-case,
// present-tense, parameterized text with no trailing punctuation, built
// with fmt.Sprintf rather than ad hoc string concatenation at each call
// site. isel.CompileError carries the formatted Reason string this
// package produces; nothing here is itself an error type.
package diag

import "fmt"

// UnsupportedStatement reports an ir.Stmt kind the selector has no
// lowering for.
func UnsupportedStatement(kind string) string {
	return fmt.Sprintf("unsupported statement %s", kind)
}

// UnsupportedExpression reports an ir.Expr kind the selector has no
// lowering for.
func UnsupportedExpression(kind string) string {
	return fmt.Sprintf("unsupported expression %s", kind)
}

// UnknownJumpTarget reports a Jump/CJump naming a block absent from the
// function's own block list.
func UnknownJumpTarget(blockName string) string {
	return fmt.Sprintf("jump to block %q not in function's block list", blockName)
}

// UnsupportedBinaryOperator reports a Binop.Op the selector has no
// lowering for.
func UnsupportedBinaryOperator(op string) string {
	return fmt.Sprintf("unsupported binary operator %s", op)
}

// UnsupportedCompoundAssignOperator reports a compound-assignment Op the
// selector has no lowering for.
func UnsupportedCompoundAssignOperator(op string) string {
	return fmt.Sprintf("unsupported compound-assignment operator %s", op)
}

// UnsupportedUnaryOperator reports a Unop.Op the selector has no lowering
// for.
func UnsupportedUnaryOperator(op string) string {
	return fmt.Sprintf("unsupported unary operator %s", op)
}

// UnsupportedBuiltin reports an ir.Builtin the selector has no lowering
// for.
func UnsupportedBuiltin(builtin string) string {
	return fmt.Sprintf("unsupported builtin %s", builtin)
}

// HandlerBlockNotFound reports an Enter naming a HandlersBlock absent from
// the function's own block list.
func HandlerBlockNotFound(blockName string) string {
	return fmt.Sprintf("handler block %q not found in function", blockName)
}

// MisplacedCreateExceptionHandler reports create_exception_handler reached
// from anywhere other than Enter's own lowering.
func MisplacedCreateExceptionHandler() string {
	return "create_exception_handler is only reachable through enter"
}

// DeclareVarsRequiresStringLiterals reports a declare_vars builtin call
// whose arguments aren't all string literals (the only form the selector
// can resolve at compile time).
func DeclareVarsRequiresStringLiterals() string {
	return "declare_vars expects string-literal arguments"
}

// ClosureLoweringRequiresResolver reports a Closure expression lowered
// without a function-index resolver configured.
func ClosureLoweringRequiresResolver() string {
	return "closure lowering requires a function index resolver"
}

// InvalidMoveTarget reports a Move.Target kind the selector has no
// lowering for.
func InvalidMoveTarget(kind string) string {
	return fmt.Sprintf("invalid move target %s", kind)
}
