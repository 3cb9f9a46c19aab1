package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/anahihull/sd-api-ordenes/config"
	"github.com/anahihull/sd-api-ordenes/message"
	"github.com/anahihull/sd-api-ordenes/service"
	observability "github.com/anahihull/sd-api-ordenes/trace"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/redis/go-redis/v9"
)

// runService sets up logging, tracing and the optional Redis connection
// shared by both services, then runs the service built by newService until
// SIGINT or SIGTERM.
func runService(
	serviceName string,
	common config.Common,
	newService func(ctx context.Context, rdb *redis.Client) (service.Service, error),
) error {
	log.Init(common.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.FromContext(ctx).WithField("service", serviceName)

	traceProvider, err := observability.ConfigureTraceProvider(serviceName, common.JaegerEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Failed to shut down trace provider")
		}
	}()

	var rdb *redis.Client
	if common.RedisAddr != "" {
		rdb = message.NewRedisClient(common.RedisAddr)
		defer rdb.Close()
	}

	svc, err := newService(ctx, rdb)
	if err != nil {
		return err
	}

	logger.Info("Starting service")
	defer logger.Info("Service stopped")

	return svc.Run(ctx)
}
