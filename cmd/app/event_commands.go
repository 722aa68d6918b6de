package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accounts/cmd/app/commands"
	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
	eventstoreRPC "github.com/allisson/accounts/internal/eventstore/rpc"
	"github.com/allisson/accounts/internal/rpcutil"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getEventCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "record-event",
			Usage: "Append a domain event to the event store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "aggregate-id",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Aggregate ID (UUID)",
				},
				&cli.StringFlag{
					Name:  "aggregate-type",
					Value: "User",
					Usage: "Aggregate type",
				},
				&cli.StringFlag{
					Name:     "event-type",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Event type",
				},
				&cli.StringFlag{
					Name:    "payload",
					Aliases: []string{"p"},
					Usage:   "JSON payload",
				},
				&cli.StringFlag{
					Name:    "metadata",
					Aliases: []string{"m"},
					Usage:   "JSON object of string metadata, e.g. '{\"idempotency_key\":\"k-1\"}'",
				},
				&cli.StringFlag{
					Name:  "grpc-address",
					Usage: "Publish through a running event listener instead of writing to the database",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				input := commands.RecordEventInput{
					AggregateID:   cmd.String("aggregate-id"),
					AggregateType: cmd.String("aggregate-type"),
					EventType:     cmd.String("event-type"),
					Payload:       cmd.String("payload"),
					Metadata:      cmd.String("metadata"),
				}

				var appendEvent commands.EventAppender
				if address := cmd.String("grpc-address"); address != "" {
					conn, err := rpcutil.Dial(address)
					if err != nil {
						return err
					}
					defer func() { _ = conn.Close() }()
					appendEvent = eventstoreRPC.NewEventsClient(conn).Publish
				} else {
					recorder, err := container.EventRecorder()
					if err != nil {
						return err
					}
					appendEvent = recorder.Record
				}

				return commands.RunRecordEvent(
					ctx,
					appendEvent,
					container.Logger(),
					commands.DefaultIO().Writer,
					input,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "record-account-registered",
			Usage: "Record that a user account was registered",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user-id",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "data",
					Aliases: []string{"d"},
					Usage:   "JSON payload returned by the command service",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				handler, err := container.AccountRegisteredHandler()
				if err != nil {
					return err
				}

				return commands.RunRecordAccountRegistered(
					ctx,
					handler,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("data"),
				)
			},
		},
		{
			Name:  "list-events",
			Usage: "Print an aggregate's event stream in sequence order",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "aggregate-id",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Aggregate ID (UUID)",
				},
				&cli.Int64Flag{
					Name:  "after",
					Value: 0,
					Usage: "Only events with a greater sequence",
				},
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Value:   100,
					Usage:   "Maximum number of events",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				stream, err := container.EventStream()
				if err != nil {
					return err
				}

				return commands.RunListEvents(
					ctx,
					stream,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("aggregate-id"),
					cmd.Int64("after"),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "import-events",
			Usage: "Append newline-delimited JSON events from stdin in a single transaction",
			Flags: []cli.Flag{
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				txManager, err := container.TxManager()
				if err != nil {
					return err
				}

				recorder, err := container.EventRecorder()
				if err != nil {
					return err
				}

				return commands.RunImportEvents(
					ctx,
					txManager,
					recorder,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("format"),
				)
			},
		},
	}
}
