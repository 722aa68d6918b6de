package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
)

// shutdownTimeout bounds graceful shutdown of all servers.
const shutdownTimeout = 30 * time.Second

// lifecycle is a server run by RunServer.
type lifecycle interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the HTTP gateway, the gRPC event listener and, when enabled,
// the metrics server. It blocks until SIGINT/SIGTERM or until one server fails,
// then shuts all of them down.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	servers := map[string]lifecycle{}

	httpServer, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	servers["api server"] = httpServer

	grpcServer, err := container.GRPCServer()
	if err != nil {
		return fmt.Errorf("failed to initialize gRPC server: %w", err)
	}
	servers["grpc server"] = grpcServer

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers["metrics server"] = metricsServer
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runServers(ctx, logger, servers)
}

// runServers starts every server and shuts all of them down once ctx is done or
// any Start returns. A server stopping on its own counts as a failure.
func runServers(ctx context.Context, logger *slog.Logger, servers map[string]lifecycle) error {
	g, gctx := errgroup.WithContext(ctx)

	for name, server := range servers {
		g.Go(func() error {
			if err := server.Start(gctx); err != nil {
				return fmt.Errorf("%s error: %w", name, err)
			}
			if gctx.Err() == nil {
				return fmt.Errorf("%s stopped unexpectedly", name)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for name, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("%s shutdown: %w", name, err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}
