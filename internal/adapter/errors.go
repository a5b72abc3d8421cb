package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("access denied")
	ErrNotFound            = errors.New("not found")
	ErrUnprocessable       = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
	ErrTransport           = errors.New("transport failure")
)

// APIError is the normalized form of a failed backend call. Message is a
// single human-readable string extracted from the response body per the
// rules in normalizer.go; Status is zero for transport-level failures.
type APIError struct {
	// Status is the HTTP status code, or 0 when the request never reached
	// the server.
	Status int

	// Message is the normalized human-readable error text.
	Message string

	// Login is true when the failing call was the login endpoint. Login
	// failures are rendered inline by the login view and must not force a
	// logout or raise a toast.
	Login bool

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the status code onto one of the package sentinels so callers
// can branch with errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 0:
		return ErrTransport
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusInternalServerError:
		return ErrInternalServerError
	}
	return e.cause
}

// Unauthenticated reports whether the failure invalidates the session: a 401
// on any call except login itself.
func (e *APIError) Unauthenticated() bool {
	return e.Status == http.StatusUnauthorized && !e.Login
}

func newAPIError(status int, message string, login bool, cause error) *APIError {
	if message == "" {
		message = fmt.Sprintf("Error %d: unknown error", status)
	}
	return &APIError{Status: status, Message: message, Login: login, cause: cause}
}
