package rpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// EncodeEvent builds the wire request for event.
func EncodeEvent(event domain.DomainEvent) (*structpb.Struct, error) {
	fields := map[string]*structpb.Value{
		"aggregate_id":   structpb.NewStringValue(event.AggregateID.String()),
		"aggregate_type": structpb.NewStringValue(event.AggregateType),
		"event_type":     structpb.NewStringValue(event.EventType),
	}

	if len(event.Payload) > 0 {
		var payload any
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		value, err := structpb.NewValue(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		fields["payload"] = value
	}

	metadata := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(event.Metadata))}
	for k, v := range event.Metadata {
		metadata.Fields[k] = structpb.NewStringValue(v)
	}
	fields["metadata"] = structpb.NewStructValue(metadata)

	return &structpb.Struct{Fields: fields}, nil
}

// DecodeEvent reads a wire request. Field semantics are checked by the recorder;
// only the wire shape is checked here.
func DecodeEvent(in *structpb.Struct) (domain.DomainEvent, error) {
	fields := in.GetFields()

	aggregateID, err := uuid.Parse(fields["aggregate_id"].GetStringValue())
	if err != nil {
		return domain.DomainEvent{}, fmt.Errorf("aggregate_id: %w", err)
	}

	event := domain.DomainEvent{
		AggregateID:   aggregateID,
		AggregateType: fields["aggregate_type"].GetStringValue(),
		EventType:     fields["event_type"].GetStringValue(),
		Metadata:      map[string]string{},
	}

	if payload, ok := fields["payload"]; ok {
		if _, isNull := payload.GetKind().(*structpb.Value_NullValue); !isNull {
			event.Payload, err = json.Marshal(payload.AsInterface())
			if err != nil {
				return domain.DomainEvent{}, fmt.Errorf("payload: %w", err)
			}
		}
	}

	if metadata, ok := fields["metadata"]; ok {
		md := metadata.GetStructValue()
		if md == nil {
			return domain.DomainEvent{}, errors.New("metadata: must be an object")
		}
		for k, v := range md.GetFields() {
			sv, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return domain.DomainEvent{}, fmt.Errorf("metadata.%s: must be a string", k)
			}
			event.Metadata[k] = sv.StringValue
		}
	}

	return event, nil
}

// DecodePublishResult reads a wire response.
func DecodePublishResult(out *structpb.Struct) (domain.AppendResult, error) {
	switch result := out.GetFields()["result"].GetStringValue(); result {
	case domain.AppendResultAppended.String():
		return domain.AppendResultAppended, nil
	case domain.AppendResultDuplicate.String():
		return domain.AppendResultDuplicate, nil
	default:
		return 0, fmt.Errorf("unexpected publish result %q", result)
	}
}
