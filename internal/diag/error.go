package diag

import (
	"errors"
	"fmt"

	"ember/internal/source"
)

// Error carries a Diagnostic through Go's error channel. Lexer validation,
// the parser and the evaluator fail with *Error so callers can recover the
// code and span with errors.As.
type Error struct {
	Diag *Diagnostic
}

// Errorf builds an error-severity *Error.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

func (e *Error) Error() string {
	if e == nil || e.Diag == nil {
		return "<nil diagnostic>"
	}
	return fmt.Sprintf("%s %s at %s", e.Diag.Code.ID(), e.Diag.Message, e.Diag.Primary)
}

// Code returns the diagnostic code, or UnknownCode for a nil error.
func (e *Error) Code() Code {
	if e == nil || e.Diag == nil {
		return UnknownCode
	}
	return e.Diag.Code
}

// AsError unwraps err down to a *Error, if there is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) && de != nil {
		return de, true
	}
	return nil, false
}

// Report forwards the wrapped diagnostic to r. Nil receivers and reporters
// are ignored.
func (e *Error) Report(r Reporter) {
	if e == nil || e.Diag == nil || r == nil {
		return
	}
	r.Report(e.Diag.Code, e.Diag.Severity, e.Diag.Primary, e.Diag.Message, e.Diag.Notes)
}
