// Package errors renders failures as the API's JSON error envelope.
package errors

import (
	"fmt"
	"net/http"
)

// Problem is an HTTP status paired with the message shown to the client.
type Problem struct {
	// Status is the HTTP status code for this occurrence.
	Status int
	// Message is the human-readable error placed in the response body.
	Message string
}

// Error implements the error interface.
func (p Problem) Error() string {
	return fmt.Sprintf("%d %s", p.Status, p.Message)
}

// WithMessage returns a copy with the given message.
func (p Problem) WithMessage(message string) Problem {
	p.Message = message
	return p
}

// Body is the wire envelope for every failed request.
type Body struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Pre-defined problem templates.
var (
	// ErrValidation indicates the request failed validation.
	ErrValidation = Problem{
		Status:  http.StatusBadRequest,
		Message: "Invalid request",
	}

	// ErrBadRequest indicates the request body could not be decoded.
	ErrBadRequest = Problem{
		Status:  http.StatusBadRequest,
		Message: "Invalid request body",
	}

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = Problem{
		Status:  http.StatusNotFound,
		Message: "Resource not found",
	}

	// ErrRouteNotFound is returned for paths no handler is mounted on.
	ErrRouteNotFound = Problem{
		Status:  http.StatusNotFound,
		Message: "Endpoint not found",
	}

	// ErrInternal indicates an unexpected server error. Details stay in the logs.
	ErrInternal = Problem{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
)
