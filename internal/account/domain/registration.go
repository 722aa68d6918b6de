// Package domain defines the account registration types exchanged between the HTTP
// gateway and the remote auth command service.
package domain

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// RegistrationRequest carries already-validated credentials for a new account.
// Password is an opaque secret and must never be logged.
type RegistrationRequest struct {
	Email    string
	Password string
}

// String redacts the password so the request can be printed safely.
func (r RegistrationRequest) String() string {
	return fmt.Sprintf("RegistrationRequest{Email: %q, Password: [REDACTED]}", r.Email)
}

// LogValue implements slog.LogValuer and omits the password.
func (r RegistrationRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", r.Email))
}

// StatusCode is the status vocabulary of the remote command service. Values are
// numerically aligned with gRPC status codes.
type StatusCode uint32

const (
	// StatusOK means the remote operation succeeded.
	StatusOK StatusCode = 0
	// StatusAlreadyExists means the account being registered already exists.
	StatusAlreadyExists StatusCode = 6
)

// RemoteOutcome is the single response of a remote Register call.
type RemoteOutcome struct {
	Status  StatusCode
	Message string
	// Payload is passed through untouched; nil means the remote sent no payload.
	Payload json.RawMessage
}

// ResultKind enumerates the caller-visible outcomes of a registration.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultConflict
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultConflict:
		return "conflict"
	case ResultFailure:
		return "failure"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// GatewayResult is derived deterministically from a RemoteOutcome or a transport error.
type GatewayResult struct {
	Kind ResultKind
	// Payload is set for ResultSuccess only.
	Payload json.RawMessage
	// Message is set for ResultConflict and ResultFailure.
	Message string
	// Cause is set for ResultFailure. It is a *TransportError or a *RemoteStatusError.
	Cause error
}

// Success builds a ResultSuccess carrying payload.
func Success(payload json.RawMessage) *GatewayResult {
	return &GatewayResult{Kind: ResultSuccess, Payload: payload}
}

// Conflict builds a ResultConflict carrying the remote message.
func Conflict(message string) *GatewayResult {
	return &GatewayResult{Kind: ResultConflict, Message: message}
}

// Failure builds a ResultFailure with its cause.
func Failure(message string, cause error) *GatewayResult {
	return &GatewayResult{Kind: ResultFailure, Message: message, Cause: cause}
}
