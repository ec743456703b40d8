package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError standardizes API error responses and logging context.
type HTTPError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"message"`
	Code       string         `json:"code"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// Helpers
func BadRequest(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadRequest, Message: msg, Code: "bad_request", Err: err}
}
func Unauthorized(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusUnauthorized, Message: msg, Code: "unauthorized", Err: err}
}
func Forbidden(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusForbidden, Message: msg, Code: "forbidden", Err: err}
}
func NotFound(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusNotFound, Message: msg, Code: "not_found", Err: err}
}
func Conflict(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusConflict, Message: msg, Code: "conflict", Err: err}
}
func Internal(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusInternalServerError, Message: msg, Code: "internal", Err: err}
}

// Failure taxonomy for this app. None of these are fatal: every failure
// degrades to an empty or previous state plus a message the user can act on.

// RemoteFetchFailed covers network errors and non-2xx responses from the
// catalog API; the operation is retry-worthy.
func RemoteFetchFailed(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadGateway, Message: msg, Code: "remote_fetch_failed", Err: err}
}

// AuthFailed covers invalid credentials, an unverified email, or a failed
// provider handshake; the session stays unauthenticated.
func AuthFailed(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusUnauthorized, Message: msg, Code: "auth_failed", Err: err}
}

// WriteFailed covers rejected bookmark or profile document updates; the
// persisted state is unchanged and the operation is user-retriable.
func WriteFailed(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadGateway, Message: msg, Code: "write_failed", Err: err}
}

// ValidationFailed covers purely local input errors; no remote call was
// attempted.
func ValidationFailed(msg string, err error) *HTTPError {
	return &HTTPError{StatusCode: http.StatusUnprocessableEntity, Message: msg, Code: "validation_failed", Err: err}
}

// Is compares target code regardless of wrapped error.
func Is(err error, code string) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Code == code
	}
	return false
}
