package app

import (
	"fmt"
	"sync"

	accountHTTP "github.com/allisson/accounts/internal/account/http"
	accountRPC "github.com/allisson/accounts/internal/account/rpc"
	accountUsecase "github.com/allisson/accounts/internal/account/usecase"
)

type accountComponents struct {
	commandClient   accountUsecase.CommandClient
	commandGateway  accountUsecase.CommandGateway
	registerHandler *accountHTTP.RegisterHandler

	commandClientInit   sync.Once
	commandGatewayInit  sync.Once
	registerHandlerInit sync.Once
}

// CommandClient returns the RPC client for the remote auth command service.
func (c *Container) CommandClient() (accountUsecase.CommandClient, error) {
	var err error
	c.commandClientInit.Do(func() {
		c.commandClient, err = c.initCommandClient()
		if err != nil {
			c.setInitError("commandClient", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("commandClient"); storedErr != nil {
		return nil, storedErr
	}
	return c.commandClient, nil
}

// CommandGateway returns the registration gateway.
func (c *Container) CommandGateway() (accountUsecase.CommandGateway, error) {
	var err error
	c.commandGatewayInit.Do(func() {
		c.commandGateway, err = c.initCommandGateway()
		if err != nil {
			c.setInitError("commandGateway", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("commandGateway"); storedErr != nil {
		return nil, storedErr
	}
	return c.commandGateway, nil
}

// RegisterHandler returns the HTTP handler for POST /v1/auth/register.
func (c *Container) RegisterHandler() (*accountHTTP.RegisterHandler, error) {
	var err error
	c.registerHandlerInit.Do(func() {
		c.registerHandler, err = c.initRegisterHandler()
		if err != nil {
			c.setInitError("registerHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("registerHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.registerHandler, nil
}

func (c *Container) initCommandClient() (accountUsecase.CommandClient, error) {
	conn, err := c.CommandConn()
	if err != nil {
		return nil, fmt.Errorf("failed to get command connection for command client: %w", err)
	}
	return accountRPC.NewCommandClient(conn, c.config.AuthGRPCRequestTimeout), nil
}

func (c *Container) initCommandGateway() (accountUsecase.CommandGateway, error) {
	client, err := c.CommandClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get command client for command gateway: %w", err)
	}

	baseGateway := accountUsecase.NewCommandGateway(client, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for command gateway: %w", err)
		}
		return accountUsecase.NewCommandGatewayWithMetrics(baseGateway, businessMetrics), nil
	}

	return baseGateway, nil
}

func (c *Container) initRegisterHandler() (*accountHTTP.RegisterHandler, error) {
	gateway, err := c.CommandGateway()
	if err != nil {
		return nil, fmt.Errorf("failed to get command gateway for register handler: %w", err)
	}
	return accountHTTP.NewRegisterHandler(gateway, c.Logger()), nil
}
