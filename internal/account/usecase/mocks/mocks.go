// Package mocks provides testify mocks for the account use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/accounts/internal/account/domain"
)

// MockCommandClient is a mock implementation of usecase.CommandClient.
type MockCommandClient struct {
	mock.Mock
}

// Register mocks the Register method of CommandClient.
func (m *MockCommandClient) Register(
	ctx context.Context,
	req domain.RegistrationRequest,
) (*domain.RemoteOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemoteOutcome), args.Error(1)
}

// MockCommandGateway is a mock implementation of usecase.CommandGateway.
type MockCommandGateway struct {
	mock.Mock
}

// Register mocks the Register method of CommandGateway.
func (m *MockCommandGateway) Register(
	ctx context.Context,
	req domain.RegistrationRequest,
) *domain.GatewayResult {
	args := m.Called(ctx, req)
	return args.Get(0).(*domain.GatewayResult)
}
