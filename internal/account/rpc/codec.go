package rpc

import (
	"encoding/json"
	"fmt"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/allisson/accounts/internal/account/domain"
)

// EncodeRegisterRequest builds the wire request for req.
func EncodeRegisterRequest(req domain.RegistrationRequest) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"email":    structpb.NewStringValue(req.Email),
			"password": structpb.NewStringValue(req.Password),
		},
	}
}

// DecodeRegisterRequest reads a wire request. Missing fields yield codes.InvalidArgument.
func DecodeRegisterRequest(in *structpb.Struct) (domain.RegistrationRequest, error) {
	email, ok := stringField(in, "email")
	if !ok {
		return domain.RegistrationRequest{}, status.Error(codes.InvalidArgument, "email is required")
	}
	password, ok := stringField(in, "password")
	if !ok {
		return domain.RegistrationRequest{}, status.Error(codes.InvalidArgument, "password is required")
	}
	return domain.RegistrationRequest{Email: email, Password: password}, nil
}

// NewRegisterResponse builds the wire response for outcome. A nil payload omits "data".
func NewRegisterResponse(outcome *domain.RemoteOutcome) (*structpb.Struct, error) {
	fields := map[string]*structpb.Value{
		"status": structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"code":    structpb.NewNumberValue(float64(outcome.Status)),
				"message": structpb.NewStringValue(outcome.Message),
			},
		}),
	}

	if outcome.Payload != nil {
		var data any
		if err := json.Unmarshal(outcome.Payload, &data); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		value, err := structpb.NewValue(data)
		if err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		fields["data"] = value
	}

	return &structpb.Struct{Fields: fields}, nil
}

// DecodeRegisterResponse reads a wire response. A response without a numeric,
// non-negative integer status code is malformed. An absent or null "data" field
// yields a nil payload.
func DecodeRegisterResponse(out *structpb.Struct) (*domain.RemoteOutcome, error) {
	statusValue, ok := out.GetFields()["status"]
	if !ok || statusValue.GetStructValue() == nil {
		return nil, fmt.Errorf("%w: missing status", domain.ErrMalformedResponse)
	}
	st := statusValue.GetStructValue()

	codeValue, ok := st.GetFields()["code"]
	if !ok {
		return nil, fmt.Errorf("%w: missing status code", domain.ErrMalformedResponse)
	}
	numberValue, ok := codeValue.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return nil, fmt.Errorf("%w: non-numeric status code", domain.ErrMalformedResponse)
	}
	code := numberValue.NumberValue
	if code < 0 || code > math.MaxUint32 || code != math.Trunc(code) {
		return nil, fmt.Errorf("%w: invalid status code %v", domain.ErrMalformedResponse, code)
	}

	message, _ := stringField(st, "message")

	outcome := &domain.RemoteOutcome{
		Status:  domain.StatusCode(code),
		Message: message,
	}

	if data, ok := out.GetFields()["data"]; ok {
		if _, isNull := data.GetKind().(*structpb.Value_NullValue); !isNull {
			payload, err := json.Marshal(data.AsInterface())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
			}
			outcome.Payload = payload
		}
	}

	return outcome, nil
}

func stringField(s *structpb.Struct, name string) (string, bool) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", false
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return sv.StringValue, true
}
