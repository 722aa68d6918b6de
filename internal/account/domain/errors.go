package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// Failure causes surface to HTTP callers as one failure shape; they
// stay distinguishable through errors.Is for logs and metrics.
var (
	// ErrTransport indicates the RPC channel failed before a well-formed outcome arrived.
	ErrTransport = apperrors.Wrap(apperrors.ErrUnavailable, "command service transport failure")

	// ErrMalformedResponse indicates the remote replied with a response missing its status.
	ErrMalformedResponse = errors.New("malformed command service response")

	// ErrRemoteServer indicates the remote returned a status other than OK or ALREADY_EXISTS.
	ErrRemoteServer = errors.New("command service returned an unexpected status")
)

// TransportError wraps a channel-level failure (unreachable, timeout, cancelled, malformed).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("command service transport failure: %v", e.Err)
}

// Unwrap exposes both the sentinel and the underlying error.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// RemoteStatusError records a well-formed, non-OK, non-ALREADY_EXISTS remote status.
type RemoteStatusError struct {
	Code    StatusCode
	Message string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("command service status %d: %s", e.Code, e.Message)
}

func (e *RemoteStatusError) Unwrap() error {
	return ErrRemoteServer
}
