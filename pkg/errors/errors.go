package errors

import (
	"errors"
	"fmt"
)

// Exit statuses reported when the external program never produced one.
const (
	StatusNotStarted = -1
	StatusBadJSON    = -2
)

// Error represents a typed failure raised while talking to the classroom API.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ExitStatus int    `json:"exit_status"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, exitStatus int, message string) *Error {
	return &Error{Code: code, ExitStatus: exitStatus, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, exitStatus int, message string) *Error {
	return &Error{Code: code, ExitStatus: exitStatus, Message: message, Err: err}
}

// Predefined error kinds. Compare with errors.Is; the message is only a default.
var (
	ErrExecution   = New("EXECUTION_ERROR", StatusNotStarted, "command failed")
	ErrDecode      = New("DECODE_ERROR", StatusBadJSON, "cannot decode JSON")
	ErrUnsupported = New("UNSUPPORTED", 0, "operation not supported")
	ErrNotFound    = New("NOT_FOUND", 0, "resource not found")
	ErrValidation  = New("VALIDATION_ERROR", 0, "validation failed")
	ErrInternal    = New("INTERNAL_ERROR", 0, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.ExitStatus, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
