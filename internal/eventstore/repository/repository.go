// Package repository provides event store implementations for PostgreSQL and MySQL.
//
// Both enforce UNIQUE(aggregate_id, event_type, idempotency_key); a delivery that
// violates it is reported as domain.AppendResultDuplicate. Sequences come from the
// database, so concurrent appends are serialized by it.
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

func encodeMetadata(metadata map[string]string) ([]byte, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return b, nil
}

func decodeMetadata(raw []byte, event *domain.StoredEvent) error {
	event.Metadata = map[string]string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &event.Metadata); err != nil {
		return fmt.Errorf("failed to decode metadata: %w", err)
	}
	return nil
}
