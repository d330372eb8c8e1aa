package alerror

import (
	"fmt"
	"net/http"
)

type (
	// An ALError represents the error format that can be rendered by the anylist server.
	ALError struct {
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
	if alerr, ok := err.(*ALError); ok {
		return alerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new ALError with the given message.
func New(message string) *ALError {
	return &ALError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new ALError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *ALError {
	return &ALError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Unauthorized returns an error raised when the caller lacks a required role
// or attempts a cross-owner access. It never carries internal detail.
func Unauthorized(message string) *ALError {
	return NewWithTagCode(http.StatusUnauthorized, "insufficient-roles", message)
}

// NotFound returns an error raised when no record matches both the given
// identifier and the caller's ownership scope. An ownership mismatch renders
// the exact same error as a missing record.
func NotFound(id string) *ALError {
	return NewWithTagCode(http.StatusNotFound, "not-found", fmt.Sprintf("Record %q not found.", id))
}

// Conflict returns an error raised when a uniqueness constraint is violated
// on the given field. The message never contains persistence-layer detail.
func Conflict(field string) *ALError {
	return NewWithTagCode(http.StatusConflict, "conflict", fmt.Sprintf("A record with this %s already exists.", field))
}

// Error implements error interface.
func (e *ALError) Error() string {
	return e.FieldError.Message
}

// Is returns true when err is an ALError carrying the same tag.
func Is(target error, tag string) bool {
	alerr, ok := target.(*ALError)
	return ok && alerr.FieldError.Tag == tag
}

// IsUnauthorized returns true if err is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return Is(err, "insufficient-roles")
}

// IsNotFound returns true if err is a NotFound error.
func IsNotFound(err error) bool {
	return Is(err, "not-found")
}

// IsConflict returns true if err is a Conflict error.
func IsConflict(err error) bool {
	return Is(err, "conflict")
}
