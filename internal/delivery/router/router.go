package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"market-client/internal/delivery/handler"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/pkg/logger"
)

func SetupRoutes(r *chi.Mux, settings gateway.SettingsGateway, baseURL string, gatherer prometheus.Gatherer, loggers *logger.Loggers) {
	healthHandler := handler.NewHealthHandler(settings, baseURL, loggers)

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	r.Handle("/metrics", metrics.HTTPHandler(gatherer))
}
