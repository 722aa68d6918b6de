package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/database"
	"github.com/allisson/accounts/internal/eventstore/domain"
	"github.com/allisson/accounts/internal/eventstore/usecase"
)

// maxImportLineSize bounds a single event line.
const maxImportLineSize = 1 << 20

type importedEvent struct {
	AggregateID   uuid.UUID         `json:"aggregate_id"`
	AggregateType string            `json:"aggregate_type"`
	EventType     string            `json:"event_type"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata"`
}

type importSummary struct {
	Appended   int `json:"appended"`
	Duplicates int `json:"duplicates"`
}

// RunImportEvents reads newline-delimited JSON events from reader and records
// them in a single transaction. Any invalid line or store failure rolls the
// whole batch back. Blank lines are skipped.
func RunImportEvents(
	ctx context.Context,
	txManager database.TxManager,
	recorder usecase.EventRecorder,
	logger *slog.Logger,
	streams IOTuple,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	events, err := readImportedEvents(streams.Reader)
	if err != nil {
		return err
	}

	var summary importSummary
	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		summary = importSummary{}
		for i, event := range events {
			result, err := recorder.Record(ctx, event)
			if err != nil {
				return fmt.Errorf("event %d: %w", i+1, err)
			}
			if result == domain.AppendResultDuplicate {
				summary.Duplicates++
			} else {
				summary.Appended++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}

	logger.Info("events imported",
		slog.Int("appended", summary.Appended),
		slog.Int("duplicates", summary.Duplicates),
	)

	if format == "json" {
		return writeJSON(streams.Writer, summary)
	}

	_, err = fmt.Fprintf(
		streams.Writer,
		"Imported %d event(s), skipped %d duplicate(s)\n",
		summary.Appended,
		summary.Duplicates,
	)
	return err
}

func readImportedEvents(r io.Reader) ([]domain.DomainEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLineSize)

	var events []domain.DomainEvent
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var in importedEvent
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("line %d: invalid event: %w", line, err)
		}

		events = append(events, domain.DomainEvent{
			AggregateID:   in.AggregateID,
			AggregateType: in.AggregateType,
			EventType:     in.EventType,
			Payload:       in.Payload,
			Metadata:      in.Metadata,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}
