package usecase

import (
	"context"
	"time"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/metrics"
)

// commandGatewayWithMetrics decorates CommandGateway with metrics instrumentation.
type commandGatewayWithMetrics struct {
	next    CommandGateway
	metrics metrics.BusinessMetrics
}

// NewCommandGatewayWithMetrics wraps a CommandGateway with metrics recording.
// The status label is the result kind: success, conflict or failure.
func NewCommandGatewayWithMetrics(gateway CommandGateway, m metrics.BusinessMetrics) CommandGateway {
	return &commandGatewayWithMetrics{
		next:    gateway,
		metrics: m,
	}
}

// Register records metrics for registration calls.
func (g *commandGatewayWithMetrics) Register(
	ctx context.Context,
	req domain.RegistrationRequest,
) *domain.GatewayResult {
	start := time.Now()
	result := g.next.Register(ctx, req)

	status := result.Kind.String()
	g.metrics.RecordOperation(ctx, "account", "register", status)
	g.metrics.RecordDuration(ctx, "account", "register", time.Since(start), status)

	return result
}
