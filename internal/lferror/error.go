// Package lferror defines the errors rendered by the API as {"error":{"tag","message"}}.
package lferror

import "net/http"

type (
	// An LFError is an API error: a client facing message, an optional machine readable tag
	// and the HTTP status it is rendered with.
	LFError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status of err. Errors that are not an LFError are internal.
func StatusCode(err error) int {
	if lferr, ok := err.(*LFError); ok && lferr.HTTPCode != 0 {
		return lferr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns an LFError without tag. The handler decides the status it is rendered with.
func New(message string) *LFError {
	return &LFError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new LFError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *LFError {
	return &LFError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// InvalidParameter returns a 400 error tagged invalid-parameter.
func InvalidParameter(message string) *LFError {
	return NewWithTagCode(http.StatusBadRequest, "invalid-parameter", message)
}

// Error returns the client facing message.
func (e *LFError) Error() string {
	return e.FieldError.Message
}
