package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"market-client/internal/config"
	"market-client/internal/delivery/command"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/infrastructure/store"
	"market-client/pkg/logger"
	"market-client/pkg/utils"
)

func main() {
	cfg := config.MustLoadConfig()

	loggers, err := logger.SetupLogger(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	loggers.DebugLogger.Debug("Logger initialized")

	st, cleanupStore := setupStore(cfg, loggers)

	tracerProvider := setupTracer(cfg, loggers)

	registry := prometheus.NewRegistry()
	app, err := command.NewApp(cfg, loggers, st, registry)
	if err != nil {
		loggers.ErrorLogger.Error("Failed to initialize client", utils.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = command.NewRootCmd(app).ExecuteContext(ctx)

	stop()
	shutdownTracer(tracerProvider, loggers)
	cleanupStore()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", command.ErrorMessage(err))
		os.Exit(1)
	}
}

func setupStore(cfg *config.Config, loggers *logger.Loggers) (store.Store, func()) {
	switch cfg.Store.Driver {
	case "redis":
		return setupRedis(cfg, loggers)
	case "memory":
		loggers.DebugLogger.Debug("Using in-memory session store")
		return store.NewMemoryStore(), func() {}
	case "file", "":
	default:
		loggers.ErrorLogger.Error("Unknown store driver", "driver", cfg.Store.Driver)
		os.Exit(1)
	}

	fs, err := store.OpenFileStore(cfg.Store.Path)
	if err != nil {
		loggers.ErrorLogger.Error("Failed to open session store", utils.Err(err))
		os.Exit(1)
	}
	loggers.DebugLogger.Debug("Opened session store", "path", cfg.Store.Path)

	cleanup := func() {
		if err := fs.Close(); err != nil {
			loggers.ErrorLogger.Error("Failed to close session store", utils.Err(err))
		}
	}

	return fs, cleanup
}

func setupRedis(cfg *config.Config, loggers *logger.Loggers) (store.Store, func()) {
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Store.Addr,
		Password: cfg.Store.Password,
		DB:       cfg.Store.DB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		loggers.ErrorLogger.Error("Failed to connect to Redis", utils.Err(err))
		os.Exit(1)
	}
	loggers.DebugLogger.Debug("Connected to Redis", "addr", cfg.Store.Addr)

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			loggers.ErrorLogger.Error("Failed to close Redis client", utils.Err(err))
		}
	}

	return store.NewRedisStore(rdb, cfg.Store.KeyPrefix), cleanup
}

// setupTracer returns nil when tracing is off or the collector is down; the
// client then runs with the no-op global tracer.
func setupTracer(cfg *config.Config, loggers *logger.Loggers) *sdktrace.TracerProvider {
	if !cfg.Tracing.Enabled {
		return nil
	}
	tracerProvider, err := metrics.InitTracer(context.Background(), cfg.Tracing)
	if err != nil {
		loggers.ErrorLogger.Error("Failed to initialize tracer", utils.Err(err))
		return nil
	}
	loggers.DebugLogger.Debug("OpenTelemetry Tracer initialized")
	return tracerProvider
}

func shutdownTracer(tp *sdktrace.TracerProvider, loggers *logger.Loggers) {
	if tp == nil {
		return
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		loggers.ErrorLogger.Error("Failed to shut down tracer provider", utils.Err(err))
	}
}
