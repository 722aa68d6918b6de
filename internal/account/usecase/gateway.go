package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/accounts/internal/account/domain"
)

// TransportFailureMessage is the caller-facing message for channel failures.
// The underlying error is only logged.
const TransportFailureMessage = "command service unavailable"

// registrationGateway is stateless; one instance serves concurrent requests.
type registrationGateway struct {
	client CommandClient
	logger *slog.Logger
}

// NewCommandGateway creates a CommandGateway over the given channel.
func NewCommandGateway(client CommandClient, logger *slog.Logger) CommandGateway {
	return &registrationGateway{
		client: client,
		logger: logger,
	}
}

// Register issues a single remote call. No retry is attempted here.
func (g *registrationGateway) Register(
	ctx context.Context,
	req domain.RegistrationRequest,
) *domain.GatewayResult {
	outcome, err := g.client.Register(ctx, req)
	if err != nil {
		if g.logger != nil {
			g.logger.ErrorContext(ctx, "command service call failed",
				slog.Any("request", req),
				slog.Any("error", err),
			)
		}
		return domain.Failure(TransportFailureMessage, &domain.TransportError{Err: err})
	}

	return MapOutcome(outcome)
}

// MapOutcome translates a well-formed remote outcome. The payload of an OK outcome
// is passed through unchanged.
func MapOutcome(outcome *domain.RemoteOutcome) *domain.GatewayResult {
	if outcome == nil {
		return domain.Failure(TransportFailureMessage, &domain.TransportError{Err: domain.ErrMalformedResponse})
	}

	switch outcome.Status {
	case domain.StatusOK:
		return domain.Success(outcome.Payload)
	case domain.StatusAlreadyExists:
		return domain.Conflict(outcome.Message)
	default:
		return domain.Failure(outcome.Message, &domain.RemoteStatusError{
			Code:    outcome.Status,
			Message: outcome.Message,
		})
	}
}
