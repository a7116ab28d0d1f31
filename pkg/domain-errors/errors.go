// Package domainerrors defines the error taxonomy shared across services.
//
// Business outcomes (document not found, unmet source requirements, excluded
// sources) are modeled as status values on results, never as errors. Errors
// from this package represent request or infrastructure failures only.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and caller branching.
type Code string

const (
	// CodeBadRequest marks a malformed request payload.
	CodeBadRequest Code = "bad_request"
	// CodeValidation marks a well-formed payload that fails domain validation.
	CodeValidation Code = "validation_error"
	// CodeNotFound marks a missing referenced entity (claim type, case).
	CodeNotFound Code = "not_found"
	// CodeUnavailable marks an unreachable backing store. Retryable.
	CodeUnavailable Code = "store_unavailable"
	// CodeInternal marks an unexpected internal failure.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a caller-safe message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a domain error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and caller-safe message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsRetryable reports whether the caller may retry the failed call.
func IsRetryable(err error) bool {
	return CodeOf(err) == CodeUnavailable
}

// ToHTTPStatus maps an error code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
