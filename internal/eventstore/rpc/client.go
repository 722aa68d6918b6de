package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

// EventsClient publishes events to a remote auth.Events service.
type EventsClient struct {
	conn grpc.ClientConnInterface
}

// NewEventsClient creates a client over conn.
func NewEventsClient(conn grpc.ClientConnInterface) *EventsClient {
	return &EventsClient{conn: conn}
}

// Publish sends event once and reports whether it was newly appended.
func (c *EventsClient) Publish(ctx context.Context, event domain.DomainEvent) (domain.AppendResult, error) {
	in, err := EncodeEvent(event)
	if err != nil {
		return 0, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, PublishMethod, in, out); err != nil {
		return 0, fmt.Errorf("invoke %s: %w", PublishMethod, err)
	}

	return DecodePublishResult(out)
}
