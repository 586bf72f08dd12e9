package courseclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy. API and transport errors wrap
// these so callers can branch with errors.Is regardless of which layer
// produced the failure.
var (
	// ErrNotAuthenticated is returned when the backend rejects the session
	// (envelope code 401 or HTTP 401). The transport clears the session via
	// its unauthorized hook before returning it.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the backend denies access (envelope
	// code 403 or HTTP 403). No session state is changed.
	ErrForbidden = errors.New("permission denied")

	// ErrNoRefreshToken is returned by a refresh attempt when the session
	// holds no refresh token.
	ErrNoRefreshToken = errors.New("no refresh token held")

	// ErrNotConfigured is returned when a client call reaches a service
	// that was never injected.
	ErrNotConfigured = errors.New("service not configured")
)

// APIError is a non-transport failure reported inside the response
// envelope: any code other than 200/401/403, carrying the server message.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed (code %d)", e.Code)
}

// TransportError is a failure below the envelope: a non-2xx HTTP status
// without a parseable envelope, a timeout, or a connection failure. Message
// is the fixed human-readable mapping for the condition.
type TransportError struct {
	Status  int // HTTP status, 0 when no response was received
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Err }

// Fixed status and condition messages surfaced to users.
const (
	msgSessionExpired = "session expired, please sign in again"
	msgForbidden      = "permission denied"
	msgNotFound       = "requested resource does not exist"
	msgServerError    = "internal server error"
	msgTimeout        = "request timed out, please retry later"
	msgNetworkDown    = "network connection failed, please check the network"
)

// transportMessage maps an HTTP status to its fixed user-facing message.
func transportMessage(status int) string {
	switch status {
	case 401:
		return msgSessionExpired
	case 403:
		return msgForbidden
	case 404:
		return msgNotFound
	case 500:
		return msgServerError
	default:
		return fmt.Sprintf("request failed (status %d)", status)
	}
}

// NewStatusError builds the TransportError for a non-2xx HTTP status
// without a parseable envelope. A 401 additionally wraps
// ErrNotAuthenticated so callers can detect it uniformly.
func NewStatusError(status int) *TransportError {
	e := &TransportError{Status: status, Message: transportMessage(status)}
	switch status {
	case 401:
		e.Err = ErrNotAuthenticated
	case 403:
		e.Err = ErrForbidden
	}
	return e
}

// NewTimeoutError builds the TransportError for a request timeout.
func NewTimeoutError(err error) *TransportError {
	return &TransportError{Message: msgTimeout, Err: err}
}

// NewNetworkError builds the TransportError for a connectivity failure.
func NewNetworkError(err error) *TransportError {
	return &TransportError{Message: msgNetworkDown, Err: err}
}
