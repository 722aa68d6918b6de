// Package dto provides response objects for the event stream endpoint.
package dto

import (
	"encoding/json"
	"time"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// EventResponse is one stored event.
type EventResponse struct {
	Sequence       int64             `json:"sequence"`
	AggregateID    string            `json:"aggregate_id"`
	AggregateType  string            `json:"aggregate_type"`
	EventType      string            `json:"event_type"`
	IdempotencyKey string            `json:"idempotency_key"`
	Payload        json.RawMessage   `json:"payload"`
	Metadata       map[string]string `json:"metadata"`
	RecordedAt     time.Time         `json:"recorded_at"`
}

// ListEventsResponse is a page of an aggregate stream. NextAfter is the cursor for
// the following page; it equals the request cursor when the page is empty.
type ListEventsResponse struct {
	Data      []EventResponse `json:"data"`
	NextAfter int64           `json:"next_after"`
}

// MapEventToResponse converts a stored event.
func MapEventToResponse(event *domain.StoredEvent) EventResponse {
	return EventResponse{
		Sequence:       event.Sequence,
		AggregateID:    event.AggregateID.String(),
		AggregateType:  event.AggregateType,
		EventType:      event.EventType,
		IdempotencyKey: event.IdempotencyKey,
		Payload:        event.Payload,
		Metadata:       event.Metadata,
		RecordedAt:     event.RecordedAt,
	}
}

// MapEventsToListResponse converts a page of stored events.
func MapEventsToListResponse(events []*domain.StoredEvent, after int64) ListEventsResponse {
	data := make([]EventResponse, 0, len(events))
	next := after
	for _, event := range events {
		data = append(data, MapEventToResponse(event))
		next = event.Sequence
	}
	return ListEventsResponse{Data: data, NextAfter: next}
}
