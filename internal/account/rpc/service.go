// Package rpc binds the registration gateway to the remote auth command service.
//
// The service is described by hand and carried over structpb messages, so no
// generated stubs are needed on either side:
//
//	/auth.Command/Register
//	  request:  {"email": string, "password": string}
//	  response: {"status": {"code": number, "message": string}, "data": any}
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/rpcutil"
)

const (
	// ServiceName is the fully qualified name of the remote command service.
	ServiceName = "auth.Command"
	// RegisterMethod is the full method name of the Register call.
	RegisterMethod = "/auth.Command/Register"
)

// CommandServer is implemented by servers of the command service. Returning an
// error aborts the call with a gRPC status instead of an outcome.
type CommandServer interface {
	Register(ctx context.Context, req domain.RegistrationRequest) (*domain.RemoteOutcome, error)
}

// RegisterCommandServer registers srv on r.
func RegisterCommandServer(r grpc.ServiceRegistrar, srv CommandServer) {
	r.RegisterService(&commandServiceDesc, srv)
}

func handleRegister(srv CommandServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := DecodeRegisterRequest(in)
	if err != nil {
		return nil, err
	}

	outcome, err := srv.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	return NewRegisterResponse(outcome)
}

var commandServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CommandServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    rpcutil.StructMethod(RegisterMethod, handleRegister),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/command",
}
