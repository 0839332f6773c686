package interp

import (
	"fmt"

	"github.com/mna/tlox/lang/token"
)

// RuntimeError is a failure detected while executing a program, anchored to
// the token whose evaluation triggered it. It satisfies error so it can
// flow through ordinary Go error returns; only lang/interp and its callers
// (internal/maincmd) need to know about its Token field, for the two-line
// "MSG\n[line L]" format spec.md §6 requires.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal unwinds the Go call stack from a "return" statement back to
// the enclosing Function.Call, the same way the book's tree-walking
// interpreter uses an exception for non-local control flow. It is panicked
// and recovered entirely within this package; it must never escape a
// top-level Interpret call.
type returnSignal struct {
	value Value
}
