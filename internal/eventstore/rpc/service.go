// Package rpc exposes the event recorder as the gRPC service auth.Events, carried
// over structpb messages:
//
//	/auth.Events/Publish
//	  request:  {"aggregate_id": string, "aggregate_type": string, "event_type": string,
//	             "payload": any, "metadata": {string: string}}
//	  response: {"result": "appended" | "duplicate"}
//
// Invalid events fail with codes.InvalidArgument and store failures with
// codes.Unavailable, so at-least-once publishers know to retry.
package rpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/eventstore/usecase"
	"github.com/allisson/accounts/internal/rpcutil"
)

const (
	// ServiceName is the fully qualified name of the events service.
	ServiceName = "auth.Events"
	// PublishMethod is the full method name of the Publish call.
	PublishMethod = "/auth.Events/Publish"
)

// EventsServer records published events.
type EventsServer struct {
	recorder usecase.EventRecorder
	logger   *slog.Logger
}

// NewEventsServer creates a server delegating to recorder.
func NewEventsServer(recorder usecase.EventRecorder, logger *slog.Logger) *EventsServer {
	return &EventsServer{
		recorder: recorder,
		logger:   logger,
	}
}

// Register registers the service on r.
func (s *EventsServer) Register(r grpc.ServiceRegistrar) {
	r.RegisterService(&eventsServiceDesc, s)
}

// Publish decodes and records one event.
func (s *EventsServer) Publish(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	event, err := DecodeEvent(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.recorder.Record(ctx, event)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"result": structpb.NewStringValue(result.String()),
		},
	}, nil
}

func (s *EventsServer) toStatus(ctx context.Context, err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case apperrors.Is(err, apperrors.ErrUnavailable):
		s.logger.WarnContext(ctx, "event store unavailable", slog.Any("error", err))
		return status.Error(codes.Unavailable, "event store unavailable")
	default:
		s.logger.ErrorContext(ctx, "publish failed", slog.Any("error", err))
		return status.Error(codes.Internal, "internal error")
	}
}

type eventsService interface {
	Publish(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var eventsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*eventsService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Publish",
			Handler: rpcutil.StructMethod(PublishMethod,
				func(srv eventsService, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
					return srv.Publish(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/events",
}
