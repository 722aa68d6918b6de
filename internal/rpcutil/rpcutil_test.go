package rpcutil

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/allisson/accounts/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const echoMethod = "/test.Echo/Echo"

type echoServer interface {
	Echo(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type echo struct {
	panicOn string
}

func (e *echo) Echo(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if v, ok := in.GetFields()["mode"]; ok {
		switch v.GetStringValue() {
		case e.panicOn:
			panic("boom")
		case "fail":
			return nil, status.Error(codes.FailedPrecondition, "failed")
		}
	}
	return in, nil
}

var echoServiceDesc = grpc.ServiceDesc{
	ServiceName: "test.Echo",
	HandlerType: (*echoServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Echo",
			Handler: StructMethod(echoMethod, func(srv echoServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.Echo(ctx, in)
			}),
		},
	},
	Metadata: "test/echo",
}

func invokeEcho(t *testing.T, conn grpc.ClientConnInterface, fields map[string]any) (*structpb.Struct, error) {
	t.Helper()

	in, err := structpb.NewStruct(fields)
	require.NoError(t, err)

	out := new(structpb.Struct)
	err = conn.Invoke(context.Background(), echoMethod, in, out)
	return out, err
}

func TestStructMethod(t *testing.T) {
	t.Run("without interceptor", func(t *testing.T) {
		conn := testutil.StartGRPCServer(t, func(r grpc.ServiceRegistrar) {
			r.RegisterService(&echoServiceDesc, &echo{})
		})

		out, err := invokeEcho(t, conn, map[string]any{"email": "a@b.c"})
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", out.GetFields()["email"].GetStringValue())
	})

	t.Run("with interceptor sees full method", func(t *testing.T) {
		var seen string
		interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			seen = info.FullMethod
			return handler(ctx, req)
		}
		conn := testutil.StartGRPCServer(t, func(r grpc.ServiceRegistrar) {
			r.RegisterService(&echoServiceDesc, &echo{})
		}, grpc.UnaryInterceptor(interceptor))

		_, err := invokeEcho(t, conn, map[string]any{"email": "a@b.c"})
		require.NoError(t, err)
		assert.Equal(t, echoMethod, seen)
	})
}

func TestInterceptors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	conn := testutil.StartGRPCServer(t, func(r grpc.ServiceRegistrar) {
		r.RegisterService(&echoServiceDesc, &echo{panicOn: "panic"})
	}, grpc.ChainUnaryInterceptor(RecoveryUnaryInterceptor(logger), LoggingUnaryInterceptor(logger)))

	t.Run("logs successful call", func(t *testing.T) {
		buf.Reset()
		_, err := invokeEcho(t, conn, map[string]any{"mode": "ok"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"method":"/test.Echo/Echo"`)
		assert.Contains(t, buf.String(), `"code":"OK"`)
	})

	t.Run("logs failing call at warn", func(t *testing.T) {
		buf.Reset()
		_, err := invokeEcho(t, conn, map[string]any{"mode": "fail"})
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), `"code":"FailedPrecondition"`)
	})

	t.Run("recovers panic as internal", func(t *testing.T) {
		buf.Reset()
		_, err := invokeEcho(t, conn, map[string]any{"mode": "panic"})
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.Internal, st.Code())
		assert.Equal(t, "internal server error", st.Message())
		assert.Contains(t, buf.String(), "panic recovered")
	})
}

func TestServer(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	server := NewServer("127.0.0.1", 0, logger)
	server.Registrar().RegisterService(&echoServiceDesc, &echo{})

	lis := testutil.NewBufListener(t)
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(lis) }()

	conn := testutil.DialBufListener(t, lis)
	healthClient := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("reports serving", func(t *testing.T) {
		for _, service := range []string{"", "test.Echo"} {
			resp, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
			require.NoError(t, err)
			assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), service)
		}
	})

	t.Run("serves registered service", func(t *testing.T) {
		out, err := invokeEcho(t, conn, map[string]any{"k": "v"})
		require.NoError(t, err)
		assert.Equal(t, "v", out.GetFields()["k"].GetStringValue())
	})

	t.Run("shutdown stops serve", func(t *testing.T) {
		require.NoError(t, server.Shutdown(ctx))
		require.NoError(t, <-serveErr)
	})
}

func TestCheckConn(t *testing.T) {
	lis := testutil.NewBufListener(t)
	conn := testutil.DialBufListener(t, lis)

	assert.NoError(t, CheckConn(conn))

	require.NoError(t, conn.Close())
	assert.ErrorContains(t, CheckConn(conn), "SHUTDOWN")
}

func TestDial(t *testing.T) {
	conn, err := Dial("localhost:0")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = Dial("localhost:0", grpc.WithDefaultServiceConfig("{not json"))
	assert.Error(t, err)
}
