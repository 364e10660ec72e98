// Package domainerrors defines the closed set of error codes the service can
// surface at its HTTP boundary, together with an exhaustive status mapping.
// Components return these (or sentinel infra errors that services translate
// into them) so handlers never invent ad-hoc status lookups.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies a category of failure. The set is closed: adding a code
// without extending ToHTTPStatus is caught by the default branch in tests.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
)

// Error carries a code plus a human-readable message. It wraps an optional
// cause so errors.Is/As keep working through the translation layer.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and message.
func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// Wrap annotates an underlying error with a code and message. The cause is
// preserved for logging but never serialized to clients.
func Wrap(code Code, message string, cause error) Error {
	return Error{Code: code, Message: message, cause: cause}
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal so
// unclassified failures never leak detail.
func CodeOf(err error) Code {
	var de Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps every code to its canonical HTTP status. The switch is
// exhaustive over the constants above.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
