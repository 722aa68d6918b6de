package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// EventAppender appends one event and reports whether it was new. Both the local
// recorder's Record and the remote events client's Publish satisfy it.
type EventAppender func(ctx context.Context, event domain.DomainEvent) (domain.AppendResult, error)

// RecordEventInput holds the raw flag values of record-event.
type RecordEventInput struct {
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       string
	Metadata      string
}

// RunRecordEvent appends one event and prints whether it was appended or a duplicate.
func RunRecordEvent(
	ctx context.Context,
	appendEvent EventAppender,
	logger *slog.Logger,
	writer io.Writer,
	input RecordEventInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	aggregateID, err := uuid.Parse(input.AggregateID)
	if err != nil {
		return fmt.Errorf("invalid aggregate id: %w", err)
	}

	metadata, err := parseMetadata(input.Metadata)
	if err != nil {
		return err
	}

	var payload json.RawMessage
	if input.Payload != "" {
		payload = json.RawMessage(input.Payload)
	}

	event := domain.DomainEvent{
		AggregateID:   aggregateID,
		AggregateType: input.AggregateType,
		EventType:     input.EventType,
		Payload:       payload,
		Metadata:      metadata,
	}

	logger.Info("recording event",
		slog.String("aggregate_id", aggregateID.String()),
		slog.String("event_type", input.EventType),
	)

	result, err := appendEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"aggregate_id": aggregateID.String(),
			"event_type":   input.EventType,
			"result":       result.String(),
		})
	}

	_, err = fmt.Fprintf(writer, "Event %s for aggregate %s: %s\n", input.EventType, aggregateID, result)
	return err
}
