package rpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/account/usecase"
)

// commandClient is safe for concurrent use; conn multiplexes calls.
type commandClient struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// NewCommandClient returns a CommandClient over conn. A positive timeout bounds
// each call; zero leaves the caller's deadline as the only bound.
func NewCommandClient(conn grpc.ClientConnInterface, timeout time.Duration) usecase.CommandClient {
	return &commandClient{
		conn:    conn,
		timeout: timeout,
	}
}

// Register performs exactly one call. Any gRPC error, including cancellation and
// deadline expiry, and any malformed response is returned as an error.
func (c *commandClient) Register(
	ctx context.Context,
	req domain.RegistrationRequest,
) (*domain.RemoteOutcome, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, RegisterMethod, EncodeRegisterRequest(req), out); err != nil {
		return nil, fmt.Errorf("invoke %s: %w", RegisterMethod, err)
	}

	return DecodeRegisterResponse(out)
}
