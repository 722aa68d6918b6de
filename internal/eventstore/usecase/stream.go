package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/eventstore/domain"
)

// MaxStreamPageSize bounds a single List call.
const MaxStreamPageSize = 1000

type eventStream struct {
	store EventStore
}

// NewEventStream creates an EventStream over store.
func NewEventStream(store EventStore) EventStream {
	return &eventStream{store: store}
}

// List returns up to limit events with a sequence greater than afterSequence.
func (s *eventStream) List(
	ctx context.Context,
	aggregateID uuid.UUID,
	afterSequence int64,
	limit int,
) ([]*domain.StoredEvent, error) {
	if aggregateID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "aggregate id is required")
	}
	if afterSequence < 0 || limit < 1 || limit > MaxStreamPageSize {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("after must be >= 0 and limit between 1 and %d", MaxStreamPageSize),
		)
	}

	events, err := s.store.ListByAggregate(ctx, aggregateID, afterSequence, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return events, nil
}
