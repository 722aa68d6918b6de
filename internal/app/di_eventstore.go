package app

import (
	"fmt"
	"sync"

	eventstoreHTTP "github.com/allisson/accounts/internal/eventstore/http"
	eventstoreRepository "github.com/allisson/accounts/internal/eventstore/repository"
	eventstoreRPC "github.com/allisson/accounts/internal/eventstore/rpc"
	eventstoreUsecase "github.com/allisson/accounts/internal/eventstore/usecase"
)

type eventstoreComponents struct {
	eventStore               eventstoreUsecase.EventStore
	eventRecorder            eventstoreUsecase.EventRecorder
	eventStream              eventstoreUsecase.EventStream
	accountRegisteredHandler *eventstoreUsecase.AccountRegisteredHandler
	eventHandler             *eventstoreHTTP.EventHandler
	eventsServer             *eventstoreRPC.EventsServer

	eventStoreInit               sync.Once
	eventRecorderInit            sync.Once
	eventStreamInit              sync.Once
	accountRegisteredHandlerInit sync.Once
	eventHandlerInit             sync.Once
	eventsServerInit             sync.Once
}

// EventStore returns the event store repository for the configured driver.
func (c *Container) EventStore() (eventstoreUsecase.EventStore, error) {
	var err error
	c.eventStoreInit.Do(func() {
		c.eventStore, err = c.initEventStore()
		if err != nil {
			c.setInitError("eventStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("eventStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.eventStore, nil
}

// EventRecorder returns the event recorder.
func (c *Container) EventRecorder() (eventstoreUsecase.EventRecorder, error) {
	var err error
	c.eventRecorderInit.Do(func() {
		c.eventRecorder, err = c.initEventRecorder()
		if err != nil {
			c.setInitError("eventRecorder", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("eventRecorder"); storedErr != nil {
		return nil, storedErr
	}
	return c.eventRecorder, nil
}

// EventStream returns the aggregate stream reader.
func (c *Container) EventStream() (eventstoreUsecase.EventStream, error) {
	var err error
	c.eventStreamInit.Do(func() {
		var store eventstoreUsecase.EventStore
		store, err = c.EventStore()
		if err != nil {
			err = fmt.Errorf("failed to get event store for event stream: %w", err)
			c.setInitError("eventStream", err)
			return
		}
		c.eventStream = eventstoreUsecase.NewEventStream(store)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("eventStream"); storedErr != nil {
		return nil, storedErr
	}
	return c.eventStream, nil
}

// AccountRegisteredHandler returns the handler recording account-registered notifications.
func (c *Container) AccountRegisteredHandler() (*eventstoreUsecase.AccountRegisteredHandler, error) {
	var err error
	c.accountRegisteredHandlerInit.Do(func() {
		var recorder eventstoreUsecase.EventRecorder
		recorder, err = c.EventRecorder()
		if err != nil {
			err = fmt.Errorf("failed to get event recorder for account registered handler: %w", err)
			c.setInitError("accountRegisteredHandler", err)
			return
		}
		c.accountRegisteredHandler = eventstoreUsecase.NewAccountRegisteredHandler(recorder)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("accountRegisteredHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.accountRegisteredHandler, nil
}

// EventHandler returns the HTTP handler for GET /v1/events/:aggregate_id.
func (c *Container) EventHandler() (*eventstoreHTTP.EventHandler, error) {
	var err error
	c.eventHandlerInit.Do(func() {
		var stream eventstoreUsecase.EventStream
		stream, err = c.EventStream()
		if err != nil {
			err = fmt.Errorf("failed to get event stream for event handler: %w", err)
			c.setInitError("eventHandler", err)
			return
		}
		c.eventHandler = eventstoreHTTP.NewEventHandler(stream, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("eventHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.eventHandler, nil
}

// EventsServer returns the auth.Events gRPC service.
func (c *Container) EventsServer() (*eventstoreRPC.EventsServer, error) {
	var err error
	c.eventsServerInit.Do(func() {
		var recorder eventstoreUsecase.EventRecorder
		recorder, err = c.EventRecorder()
		if err != nil {
			err = fmt.Errorf("failed to get event recorder for events server: %w", err)
			c.setInitError("eventsServer", err)
			return
		}
		c.eventsServer = eventstoreRPC.NewEventsServer(recorder, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("eventsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.eventsServer, nil
}

// initEventStore selects the repository matching the database driver.
func (c *Container) initEventStore() (eventstoreUsecase.EventStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event store: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return eventstoreRepository.NewMySQLEventRepository(db), nil
	case "postgres":
		return eventstoreRepository.NewPostgreSQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEventRecorder() (eventstoreUsecase.EventRecorder, error) {
	store, err := c.EventStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get event store for event recorder: %w", err)
	}

	baseRecorder := eventstoreUsecase.NewEventRecorder(
		store,
		eventstoreUsecase.NoopDispatcher{},
		c.config.EventIdempotencyMetadataKey,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for event recorder: %w", err)
		}
		return eventstoreUsecase.NewEventRecorderWithMetrics(baseRecorder, businessMetrics), nil
	}

	return baseRecorder, nil
}
