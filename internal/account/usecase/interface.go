// Package usecase implements the registration gateway: one remote Register call
// translated into a success, conflict or failure result.
package usecase

import (
	"context"

	"github.com/allisson/accounts/internal/account/domain"
)

// CommandClient is the RPC channel to the remote auth command service.
// Register returns exactly one outcome, or an error when the channel itself failed.
type CommandClient interface {
	Register(ctx context.Context, req domain.RegistrationRequest) (*domain.RemoteOutcome, error)
}

// CommandGateway forwards registrations and maps the remote outcome. It never
// returns a nil result.
type CommandGateway interface {
	Register(ctx context.Context, req domain.RegistrationRequest) *domain.GatewayResult
}
