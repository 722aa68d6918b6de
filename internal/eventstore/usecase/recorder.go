package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/accounts/internal/eventstore/domain"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// eventRecorder is stateless apart from immutable dependencies.
type eventRecorder struct {
	store       EventStore
	dispatcher  Dispatcher
	metadataKey string
	logger      *slog.Logger
}

// NewEventRecorder creates an EventRecorder. A nil dispatcher becomes NoopDispatcher
// and an empty metadataKey becomes domain.DefaultIdempotencyMetadataKey.
func NewEventRecorder(
	store EventStore,
	dispatcher Dispatcher,
	metadataKey string,
	logger *slog.Logger,
) EventRecorder {
	if dispatcher == nil {
		dispatcher = NoopDispatcher{}
	}
	if metadataKey == "" {
		metadataKey = domain.DefaultIdempotencyMetadataKey
	}
	return &eventRecorder{
		store:       store,
		dispatcher:  dispatcher,
		metadataKey: metadataKey,
		logger:      logger,
	}
}

// Handle records event; a duplicate delivery is success.
func (r *eventRecorder) Handle(ctx context.Context, event domain.DomainEvent) error {
	_, err := r.Record(ctx, event)
	return err
}

// Record appends event once per idempotency key. No retry is attempted; a store
// failure is returned wrapping domain.ErrStoreUnavailable.
func (r *eventRecorder) Record(ctx context.Context, event domain.DomainEvent) (domain.AppendResult, error) {
	if err := validateEvent(event, r.metadataKey); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidEvent, err)
	}

	stored := &domain.StoredEvent{
		AggregateID:    event.AggregateID,
		AggregateType:  event.AggregateType,
		EventType:      event.EventType,
		IdempotencyKey: IdempotencyKey(event, r.metadataKey),
		Payload:        event.Payload,
		Metadata:       event.Metadata,
	}
	if len(stored.Payload) == 0 {
		stored.Payload = json.RawMessage("null")
	}
	if stored.Metadata == nil {
		stored.Metadata = map[string]string{}
	}

	result, err := r.store.Append(ctx, stored)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	attrs := []any{
		slog.String("aggregate_id", stored.AggregateID.String()),
		slog.String("event_type", stored.EventType),
		slog.String("idempotency_key", stored.IdempotencyKey),
	}

	if result == domain.AppendResultDuplicate {
		r.logger.DebugContext(ctx, "duplicate event ignored", attrs...)
		return result, nil
	}

	r.logger.DebugContext(ctx, "event appended", append(attrs, slog.Int64("sequence", stored.Sequence))...)

	// The append stands even when dispatch fails.
	if err := r.dispatcher.Dispatch(ctx, stored); err != nil {
		r.logger.ErrorContext(ctx, "event dispatch failed", append(attrs, slog.Any("error", err))...)
	}

	return result, nil
}

// maxIdentifierLength matches the VARCHAR(255) columns holding aggregate type,
// event type and idempotency key.
const maxIdentifierLength = 255

func validateEvent(event domain.DomainEvent, metadataKey string) error {
	return validation.ValidateStruct(&event,
		validation.Field(&event.AggregateID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(
			&event.AggregateType,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.NotBlank,
		),
		validation.Field(
			&event.EventType,
			validation.Required,
			validation.Length(1, maxIdentifierLength),
			customValidation.EventType,
		),
		validation.Field(&event.Payload, validation.By(func(value any) error {
			payload := value.(json.RawMessage)
			if len(payload) > 0 && !json.Valid(payload) {
				return validation.NewError("validation_json", "must be valid JSON")
			}
			return nil
		})),
		validation.Field(&event.Metadata, validation.By(func(value any) error {
			key := value.(map[string]string)[metadataKey]
			return validation.Validate(key, validation.Length(0, maxIdentifierLength))
		})),
	)
}
