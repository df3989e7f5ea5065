package srv

import (
	"context"

	"github.com/admiralicic/starting-ragchatbot-codebase/pkg/log"
)

// Service is a long-running component with a blocking Start and an idempotent
// Shutdown.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service in its own goroutine. A failed start
// is fatal; a half-started process is worse than no process.
func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until the context is cancelled, then shuts services
// down in reverse registration order so dependents stop before dependencies.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
