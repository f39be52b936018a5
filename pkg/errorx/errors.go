// Package errorx attaches numeric codes to errors so that HTTP handlers can map
// them to a status and a public message.
package errorx

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

type withCode struct {
	err   error
	code  int
	cause error
}

// WithCode creates a new coded error with a stack trace.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		err:  errors.Errorf(format, args...),
		code: code,
	}
}

// WrapC wraps err with a code and a message. A nil err yields nil.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return &withCode{
		err:   errors.Wrap(err, fmt.Sprintf(format, args...)),
		code:  code,
		cause: err,
	}
}

// Error returns the internal message, including any wrapped cause.
func (w *withCode) Error() string { return w.err.Error() }

// Cause returns the wrapped error, compatible with github.com/pkg/errors.
func (w *withCode) Cause() error { return w.cause }

// Unwrap supports errors.Is / errors.As.
func (w *withCode) Unwrap() error { return w.cause }

// Format prints the stack trace with %+v.
func (w *withCode) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v (code=%d)", w.err, w.code)
		return
	}
	fmt.Fprint(s, w.err.Error())
}

// Code returns the code carried by err, or 0 when there is none.
func Code(err error) int {
	if v, ok := asWithCode(err); ok {
		return v.code
	}
	return 0
}

func asWithCode(err error) (*withCode, bool) {
	var v *withCode
	if stderrors.As(err, &v) {
		return v, true
	}
	return nil, false
}
