package handler

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"market-client/internal/gateway"
	"market-client/pkg/logger"
	"market-client/pkg/utils"
)

const readyTimeout = 5 * time.Second

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

type HealthHandler struct {
	settings gateway.SettingsGateway
	baseURL  string
	logger   *logger.Loggers
	tracer   trace.Tracer
}

func NewHealthHandler(settings gateway.SettingsGateway, baseURL string, logger *logger.Loggers) *HealthHandler {
	return &HealthHandler{
		settings: settings,
		baseURL:  baseURL,
		logger:   logger,
		tracer:   otel.Tracer("market-client/handler"),
	}
}

// Live answers as long as the process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: h.baseURL})
}

// Ready checks the backend with the public settings endpoint.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Ready")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	if _, err := h.settings.GetSettings(ctx); err != nil {
		span.RecordError(err)
		h.logger.ErrorLogger.Error("Backend readiness check failed", utils.Err(err))
		utils.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Backend: h.baseURL,
			Error:   gateway.Message(err, "backend unreachable"),
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: h.baseURL})
}
