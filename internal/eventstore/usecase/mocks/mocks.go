// Package mocks provides testify mocks for the event store use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// MockEventStore is a mock implementation of usecase.EventStore.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Append(ctx context.Context, event *domain.StoredEvent) (domain.AppendResult, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.AppendResult), args.Error(1)
}

func (m *MockEventStore) ListByAggregate(
	ctx context.Context,
	aggregateID uuid.UUID,
	afterSequence int64,
	limit int,
) ([]*domain.StoredEvent, error) {
	args := m.Called(ctx, aggregateID, afterSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StoredEvent), args.Error(1)
}

// MockDispatcher is a mock implementation of usecase.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event *domain.StoredEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockEventRecorder is a mock implementation of usecase.EventRecorder.
type MockEventRecorder struct {
	mock.Mock
}

func (m *MockEventRecorder) Handle(ctx context.Context, event domain.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRecorder) Record(ctx context.Context, event domain.DomainEvent) (domain.AppendResult, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.AppendResult), args.Error(1)
}

// MockEventStream is a mock implementation of usecase.EventStream.
type MockEventStream struct {
	mock.Mock
}

func (m *MockEventStream) List(
	ctx context.Context,
	aggregateID uuid.UUID,
	afterSequence int64,
	limit int,
) ([]*domain.StoredEvent, error) {
	args := m.Called(ctx, aggregateID, afterSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StoredEvent), args.Error(1)
}
