package apperr

import (
	"errors"
	"net/http"
)

// Error is a request-scoped failure carrying the HTTP status and the message
// shown to the caller. The wrapped cause is only ever logged.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap creates an error with the given status and message around a cause.
func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Unavailable(message string) *Error {
	return New(http.StatusServiceUnavailable, message)
}

// As reports whether err is or wraps an *Error and returns it.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
