package promesso

import (
	"fmt"
	"net/http"
)

// DomainError is any error deliberately raised by application code that
// carries a machine-readable code. Handlers that fail with a DomainError get
// a response built from the error itself instead of a bare 500.
//
// The HTTP presentation is optional and discovered by shape: an error may
// additionally implement
//
//	HTTPCode() int      // response status, 0 means 500
//	HTTPResponse() any  // structured body, or a string message
//
// *Error implements all three.
type DomainError interface {
	error
	ErrorCode() string
}

type httpCoder interface{ HTTPCode() int }

type httpResponder interface{ HTTPResponse() any }

// Error is the stock DomainError. It lets handlers specify:
//   - Code, the machine-readable error code sent to the client and logged.
//   - Message, the human-readable description that ends up in the logs.
//   - HTTPStatus, the response status. Zero means 500.
//   - Response, either a structured body sent verbatim or a string that
//     is sent as the "message" next to the code.
//   - Cause, the underlying error, if any. It is logged, never sent.
//
// Error values are immutable; the With* methods return modified copies.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
	Response   any
	Cause      error
}

// NewError creates an Error with the given code and log message.
func NewError(code, message string) Error {
	return Error{Code: code, Message: message}
}

// Errorf creates an Error whose message is formatted with fmt.Sprintf.
func Errorf(code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithHTTPCode returns a copy of the error that responds with status.
func (e Error) WithHTTPCode(status int) Error {
	e.HTTPStatus = status
	return e
}

// WithHTTPResponse returns a copy of the error that responds with body. A
// string body becomes the "message" field next to the code, any other value
// is sent as-is.
func (e Error) WithHTTPResponse(body any) Error {
	e.Response = body
	return e
}

// WithCause returns a copy of the error wrapping cause.
func (e Error) WithCause(cause error) Error {
	e.Cause = cause
	return e
}

func (e Error) ErrorCode() string { return e.Code }
func (e Error) HTTPCode() int     { return e.HTTPStatus }
func (e Error) HTTPResponse() any { return e.Response }
func (e Error) Unwrap() error     { return e.Cause }

func (e Error) Error() string {
	msg := e.Message
	if msg == "" && e.HTTPStatus != 0 {
		msg = http.StatusText(e.HTTPStatus)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Common domain errors. Use WithHTTPResponse to attach a client message.
var (
	ErrBadRequest   = Error{Code: "BAD_REQUEST", Message: "bad request", HTTPStatus: http.StatusBadRequest}
	ErrUnauthorized = Error{Code: "UNAUTHORIZED", Message: "unauthorized", HTTPStatus: http.StatusUnauthorized}
	ErrForbidden    = Error{Code: "FORBIDDEN", Message: "forbidden", HTTPStatus: http.StatusForbidden}
	ErrNotFound     = Error{Code: "NOT_FOUND", Message: "not found", HTTPStatus: http.StatusNotFound}
	ErrConflict     = Error{Code: "CONFLICT", Message: "conflict", HTTPStatus: http.StatusConflict}
)
