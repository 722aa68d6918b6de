// Package rpcutil provides the gRPC plumbing shared by the command service client
// and the event listener: dial options, a server wrapper with health reporting,
// logging and recovery interceptors, and structpb method adapters.
package rpcutil

import (
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// DefaultClientDialOptions returns the dial options used for outbound channels.
// Transport security is configured outside this service.
func DefaultClientDialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// Dial creates a lazily connecting client for address. Extra options are applied
// after the defaults.
func Dial(address string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialOpts := append(DefaultClientDialOptions(), opts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial gRPC %s: %w", address, err)
	}
	return conn, nil
}

// CheckConn reports an error when conn cannot currently carry calls. An idle
// connection is asked to connect and counts as ready.
func CheckConn(conn *grpc.ClientConn) error {
	switch state := conn.GetState(); state {
	case connectivity.Idle:
		conn.Connect()
		return nil
	case connectivity.TransientFailure, connectivity.Shutdown:
		return fmt.Errorf("grpc connection to %s is %s", conn.Target(), state)
	default:
		return nil
	}
}
