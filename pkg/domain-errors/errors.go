// Package domainerrors defines the coded errors the service layer returns and
// the transport layer translates into HTTP responses. Stores return sentinel
// errors (pkg/platform/sentinel); services wrap them into these.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of domain error. Codes double as the machine-readable
// "error" field of the JSON error envelope.
type Code string

const (
	// CodeBadRequest covers malformed, missing, or out-of-range input.
	CodeBadRequest Code = "bad_request"
	// CodeConflict covers uniqueness violations and rejected state transitions.
	CodeConflict Code = "conflict"
	// CodeUnauthorized covers bad credentials and missing/invalid/expired tokens.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden covers authenticated callers with insufficient role.
	CodeForbidden Code = "forbidden"
	// CodeNotFound covers references to absent entities.
	CodeNotFound Code = "not_found"
	// CodeInternal covers storage and infrastructure failures. Its message is
	// never exposed to clients.
	CodeInternal Code = "internal_error"
)

// Error is a value type so two calls of New with the same code and message
// compare equal under errors.Is, which keeps test assertions simple.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a domain error with the given code and human-readable message.
func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// wrapped carries an underlying cause alongside the domain error so callers can
// still reach infrastructure errors via errors.Is/As. The domain error is a
// named field, not embedded: embedding the Error struct would shadow its
// promoted Error method with the field selector.
type wrapped struct {
	domain Error
	cause  error
}

func (w wrapped) Error() string {
	return w.domain.Error()
}

// Unwrap exposes both the domain error and the cause to errors.Is/As.
func (w wrapped) Unwrap() []error { return []error{w.domain, w.cause} }

// Wrap attaches a code and message to an underlying error, preserving the cause
// for errors.Is/As while presenting the domain error to callers.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return wrapped{domain: Error{Code: code, Message: message}, cause: err}
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code Code) bool {
	var de Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is shorthand for HasCode, matching how handlers branch on error classes.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a domain error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Load extracts the domain error from err, defaulting to an internal error so
// unknown failures never leak details.
func Load(err error) Error {
	var de Error
	if errors.As(err, &de) {
		return de
	}
	return Error{Code: CodeInternal, Message: "internal error"}
}
