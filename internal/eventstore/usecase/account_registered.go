package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// AccountRegisteredHandler records account-registered notifications as "User"
// aggregate events.
type AccountRegisteredHandler struct {
	recorder EventRecorder
}

// NewAccountRegisteredHandler creates a handler delegating to recorder.
func NewAccountRegisteredHandler(recorder EventRecorder) *AccountRegisteredHandler {
	return &AccountRegisteredHandler{recorder: recorder}
}

// Handle records that userID registered, with data as the payload.
func (h *AccountRegisteredHandler) Handle(ctx context.Context, userID uuid.UUID, data json.RawMessage) error {
	return h.recorder.Handle(ctx, domain.DomainEvent{
		AggregateID:   userID,
		AggregateType: domain.AggregateTypeUser,
		EventType:     domain.EventTypeAccountRegistered,
		Payload:       data,
		Metadata:      map[string]string{},
	})
}
