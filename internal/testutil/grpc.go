package testutil

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1 << 20

// NewBufListener returns an in-memory listener closed on cleanup.
func NewBufListener(t *testing.T) *bufconn.Listener {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	t.Cleanup(func() { _ = lis.Close() })
	return lis
}

// DialBufListener returns a client connection that dials lis. The connection is closed on cleanup.
func DialBufListener(t *testing.T, lis *bufconn.Listener, opts ...grpc.DialOption) *grpc.ClientConn {
	t.Helper()

	opts = append([]grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// StartGRPCServer serves the services registered by register over an in-memory listener
// and returns a client connection to it. Both are torn down on cleanup.
func StartGRPCServer(t *testing.T, register func(grpc.ServiceRegistrar), opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()

	lis := NewBufListener(t)
	server := grpc.NewServer(opts...)
	register(server)

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	return DialBufListener(t, lis)
}
