package lferror

import "net/http"

type (
	// An LFError represents the error format rendered by the API.
	LFError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if lferr, ok := err.(*LFError); ok {
		return lferr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new LFError with the given message.
func New(message string) *LFError {
	return &LFError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new LFError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *LFError {
	return &LFError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// BadRequest returns a validation error (missing or malformed field).
func BadRequest(message string) *LFError {
	return NewWithTagCode(http.StatusBadRequest, "", message)
}

// Unauthorized returns an authentication error.
func Unauthorized(message string) *LFError {
	return NewWithTagCode(http.StatusUnauthorized, "invalid-auth", message)
}

// Forbidden returns an insufficient-role error.
func Forbidden(message string) *LFError {
	return NewWithTagCode(http.StatusForbidden, "access-denied", message)
}

// NotFound returns a missing-entity error.
func NotFound(message string) *LFError {
	return NewWithTagCode(http.StatusNotFound, "", message)
}

// Conflict returns a state-transition precondition error.
// Rendered with HTTP 400, matching the behavior clients expect.
func Conflict(message string) *LFError {
	return NewWithTagCode(http.StatusBadRequest, "conflict", message)
}

// Error implements error interface.
func (e *LFError) Error() string {
	return e.FieldError.Message
}
