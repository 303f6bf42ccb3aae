package app

import (
	"context"
	"net/http"
	"time"

	httputil "fleetbook/pkg/http"
	"fleetbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	client *mongo.Client
	logger *logger.Logger
}

func NewHealthHandler(client *mongo.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		client: client,
		logger: log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Health reports process liveness only.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		h.logger.Error("Failed to write health response", "error", err)
	}
}

// Ready pings MongoDB; the service cannot serve traffic without it.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Error("Readiness check failed", "error", err)
		if werr := httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "mongodb unreachable",
		}); werr != nil {
			h.logger.Error("Failed to write readiness response", "error", werr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		h.logger.Error("Failed to write readiness response", "error", err)
	}
}
