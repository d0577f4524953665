package web

import (
	"errors"
	"net/http"
)

// Set of error variables for failures that originate in the HTTP layer itself.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("authorization header required")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInternalServerError = errors.New("internal server error")
)

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{err, status}
}

func (err *Error) Error() string {
	return err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// StatusOf returns the status carried by err, or 500 for anything unexpected.
func StatusOf(err error) int {
	var reqErr *Error
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return http.StatusInternalServerError
}
