// Package usecase implements the event recorder: idempotent appends of domain
// events to the event store, followed by an optional dispatch hook.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// EventStore is the append-only persistence contract. Append reports a duplicate
// delivery as AppendResultDuplicate, not as an error; any error means the store
// could not decide.
type EventStore interface {
	Append(ctx context.Context, event *domain.StoredEvent) (domain.AppendResult, error)
	ListByAggregate(ctx context.Context, aggregateID uuid.UUID, afterSequence int64, limit int) ([]*domain.StoredEvent, error)
}

// Dispatcher forwards newly appended events to downstream consumers.
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.StoredEvent) error
}

// EventRecorder records domain events. Handle succeeds for both new and
// duplicate deliveries; Record also reports which one happened.
type EventRecorder interface {
	Handle(ctx context.Context, event domain.DomainEvent) error
	Record(ctx context.Context, event domain.DomainEvent) (domain.AppendResult, error)
}

// EventStream reads an aggregate's stream in sequence order.
type EventStream interface {
	List(ctx context.Context, aggregateID uuid.UUID, afterSequence int64, limit int) ([]*domain.StoredEvent, error)
}
