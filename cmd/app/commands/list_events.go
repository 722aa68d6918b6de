package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/eventstore/http/dto"
	"github.com/allisson/accounts/internal/eventstore/usecase"
)

// RunListEvents prints one page of an aggregate's stream.
func RunListEvents(
	ctx context.Context,
	stream usecase.EventStream,
	logger *slog.Logger,
	writer io.Writer,
	aggregateID string,
	after int64,
	limit int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	id, err := uuid.Parse(aggregateID)
	if err != nil {
		return fmt.Errorf("invalid aggregate id: %w", err)
	}

	events, err := stream.List(ctx, id, after, limit)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	logger.Debug("events listed", slog.String("aggregate_id", id.String()), slog.Int("count", len(events)))

	response := dto.MapEventsToListResponse(events, after)
	if format == "json" {
		return writeJSON(writer, response)
	}

	if len(response.Data) == 0 {
		_, err := fmt.Fprintf(writer, "No events for aggregate %s after sequence %d\n", id, after)
		return err
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SEQUENCE\tEVENT TYPE\tRECORDED AT\tPAYLOAD")
	for _, event := range response.Data {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			event.Sequence,
			event.EventType,
			event.RecordedAt.UTC().Format("2006-01-02T15:04:05.000000Z"),
			string(event.Payload),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(writer, "Next cursor: %d\n", response.NextAfter)
	return err
}
