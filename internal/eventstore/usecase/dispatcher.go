package usecase

import (
	"context"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// NoopDispatcher drops every event. Forwarding to external workers is not wired yet.
type NoopDispatcher struct{}

// Dispatch does nothing.
func (NoopDispatcher) Dispatch(context.Context, *domain.StoredEvent) error {
	return nil
}
