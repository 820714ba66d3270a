// Package httperr defines the typed error used to abort request handling
// with a specific HTTP status. It is the only sanctioned way for code deep
// in a call chain to pick the caller-visible status; anything else that
// bubbles up is treated as an unexpected server error.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status code and a user-facing message.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

// New returns an Error with the given status code and message.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns an Error with a formatted message.
func Newf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// BadRequest returns a 400 error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// From extracts an *Error from err, if one is present in its chain.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
