package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, detected before any
	// network call is made
	ValidationError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Is allows errors.Is() to match against the sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RemoteError is a failure reported by the backend, or by the transport on
// the way to it, normalized to a single human-readable reason. Status is the
// backend's status code, or 0 when the backend was never reached.
type RemoteError struct {
	Status int
	Reason string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return e.Reason
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Reason)
}

// StatusCode implements the HTTPError interface. Transport-level failures
// surface as 502 since the fault lies between this service and the backend.
func (e *RemoteError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusBadGateway
	}
	return e.Status
}

// Reason extracts the human-readable reason from an error, unwrapping the
// RemoteError status prefix when present.
func Reason(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Reason
	}
	return err.Error()
}
