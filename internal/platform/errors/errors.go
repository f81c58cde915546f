// Package errors is the project error type: a code the transport maps to a
// status, a message safe to show callers, and an optional field and op.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error. The numeric values are part of the wire
// format; append new codes at the end
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	// ErrorCodeUnavailable is transient: the OCR engine is missing, busy or timed out
	ErrorCodeUnavailable
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	// ErrorCodeUnprocessable is input that was read but cannot be used, e.g. a corrupt scan
	ErrorCodeUnprocessable
	ErrorCodeTooLarge
	ErrorCodeUnsupportedMedia
	ErrorCodeStorage
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:          {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:            {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:      {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeInvalidArgument:  {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:       {"validation", http.StatusBadRequest},
	ErrorCodeJSON:             {"json", http.StatusBadRequest},
	ErrorCodeNotFound:         {"not_found", http.StatusNotFound},
	ErrorCodeUnprocessable:    {"unprocessable", http.StatusUnprocessableEntity},
	ErrorCodeTooLarge:         {"too_large", http.StatusRequestEntityTooLarge},
	ErrorCodeUnsupportedMedia: {"unsupported_media", http.StatusUnsupportedMediaType},
	ErrorCodeStorage:          {"storage", http.StatusInternalServerError},
}

func (c ErrorCode) String() string {
	if int(c) < len(codes) {
		return codes[c].name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Status is the HTTP status for c; codes outside the table are 500
func (c ErrorCode) Status() int {
	if int(c) < len(codes) {
		return codes[c].status
	}
	return http.StatusInternalServerError
}

// Error carries a code and message plus the optional offending field,
// operation label and wrapped cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.msg
	if e.op != "" {
		s = e.op + ": " + s
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.cause }

// Code is the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field is the request field at fault, if any
func (e *Error) Field() string { return e.field }

// Op is the operation label set by WithOp
func (e *Error) Op() string { return e.op }

// Wire is the error as rendered in a response body
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// ToWire drops the op and cause, which stay server side
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// WireFrom renders any error; foreign errors become Unknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// CodeOf is the code of the first *Error in err's chain, Unknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether CodeOf(err) is code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps err to a response status
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// Retryable reports whether the same call may succeed later
func Retryable(err error) bool { return CodeOf(err) == ErrorCodeUnavailable }

// WithField returns a copy of err's *Error with field set.
// Foreign errors are returned unchanged
func WithField(err error, field string) error {
	return edit(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err's *Error labelled with op.
// Foreign errors are returned unchanged
func WithOp(err error, op string) error {
	return edit(err, func(e *Error) { e.op = op })
}

func edit(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// Newf builds an error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap classifies cause under code with msg
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// WrapIf is Wrap that passes nil through
func WrapIf(cause error, code ErrorCode, msg string) error {
	if cause == nil {
		return nil
	}
	return Wrap(cause, code, msg)
}

func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

func Unprocessablef(format string, a ...any) error {
	return Newf(ErrorCodeUnprocessable, format, a...)
}

func TooLargef(format string, a ...any) error { return Newf(ErrorCodeTooLarge, format, a...) }

func UnsupportedMediaf(format string, a ...any) error {
	return Newf(ErrorCodeUnsupportedMedia, format, a...)
}

func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }
