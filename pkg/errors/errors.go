// Package errors provides structured error types for libpanel.
//
// Errors carry a machine-readable [Code] so that the CLI, the HTTP server and
// the registry lookup can tell a transport failure from a parse failure or a
// bad input without string matching.
//
// # Error Codes
//
//   - TRANSPORT_FAILURE: the registry could not be reached (DNS, TLS, timeout)
//   - PARSE_FAILURE: the registry answered with a body that is not valid JSON
//   - INVALID_INPUT: a library record was rejected
//   - INVALID_PACKAGE: a package identifier was rejected
//   - INVALID_CONFIG: the configuration file could not be used
//   - CACHE_FAILURE: a cache backend failed
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeTransport, cause, "fetch %s", id)
//	if errors.Is(err, errors.ErrCodeTransport) {
//	    // show the panel without an author
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Registry lookup failures
	ErrCodeTransport Code = "TRANSPORT_FAILURE"
	ErrCodeParse     Code = "PARSE_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Infrastructure errors
	ErrCodeCache    Code = "CACHE_FAILURE"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a [Code] with a message and the error that caused it.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders as "CODE: message" with ": cause" appended when set.
func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the first *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// UserMessage is the message without code prefix or cause, which is what
// panels and HTTP bodies show.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInput reports whether err was caused by bad caller input.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPackage:
		return true
	}
	return false
}

// HTTPStatus maps err to the status the server answers with: 400 for bad
// input, 502 when the registry failed us, 500 otherwise.
func HTTPStatus(err error) int {
	if IsInput(err) {
		return http.StatusBadRequest
	}
	switch GetCode(err) {
	case ErrCodeTransport, ErrCodeParse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
