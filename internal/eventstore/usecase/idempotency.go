package usecase

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// IdempotencyKey returns the caller-supplied key stored under metadataKey, or a
// content hash when absent. The hash covers aggregate id, aggregate type, event
// type and the canonical payload, so a redelivery of the same event maps to the
// same key regardless of key order or whitespace.
func IdempotencyKey(event domain.DomainEvent, metadataKey string) string {
	if key := event.Metadata[metadataKey]; key != "" {
		return key
	}

	h := sha256.New()
	h.Write([]byte(event.AggregateID.String()))
	h.Write([]byte{'|'})
	h.Write([]byte(event.AggregateType))
	h.Write([]byte{'|'})
	h.Write([]byte(event.EventType))
	h.Write([]byte{'|'})
	h.Write(canonicalPayload(event.Payload))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalPayload re-encodes payload with sorted object keys and no
// insignificant whitespace. Numbers keep their literal text. An empty payload is
// stored as null and hashes the same way. Invalid JSON is returned unchanged.
func canonicalPayload(payload json.RawMessage) []byte {
	if len(bytes.TrimSpace(payload)) == 0 {
		return []byte("null")
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return payload
	}

	canonical, err := json.Marshal(value)
	if err != nil {
		return payload
	}
	return canonical
}
