package auth

import (
	"errors"
	"net/http"
)

// Error is a failure with an HTTP-style status code attached. The OAuth
// callback chain expects a definite success/failure per attempt, so
// anything the resolver cannot handle is wrapped into one of these
// instead of propagating raw.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a client-data or server-fault error with the given code.
func E(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a status code and message to an underlying error.
func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the status code from err, defaulting to 500 for
// untyped failures.
func CodeOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}
