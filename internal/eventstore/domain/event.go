// Package domain defines the event store entities: incoming domain events and
// their stored, sequenced records.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Well-known values used by the account registration flow. The event type keeps
// its historical spelling so existing streams stay readable.
const (
	AggregateTypeUser             = "User"
	EventTypeAccountRegistered    = "accountRegistred"
	DefaultIdempotencyMetadataKey = "idempotency_key"
)

// DomainEvent is a fact about an aggregate, received from the command side.
// Metadata may be empty but is never nil once normalized by the recorder.
type DomainEvent struct {
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       json.RawMessage
	Metadata      map[string]string
}

// StoredEvent is an appended DomainEvent. Sequence and RecordedAt are assigned
// by the store.
type StoredEvent struct {
	Sequence       int64
	AggregateID    uuid.UUID
	AggregateType  string
	EventType      string
	IdempotencyKey string
	Payload        json.RawMessage
	Metadata       map[string]string
	RecordedAt     time.Time
}

// AppendResult is the outcome of a store append that did not fail.
type AppendResult int

const (
	// AppendResultAppended means a new record was written.
	AppendResultAppended AppendResult = iota + 1
	// AppendResultDuplicate means an identical delivery was already stored; nothing was written.
	AppendResultDuplicate
)

func (r AppendResult) String() string {
	switch r {
	case AppendResultAppended:
		return "appended"
	case AppendResultDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}
