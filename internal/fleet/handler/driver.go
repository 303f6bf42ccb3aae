package handler

import (
	"encoding/json"
	"net/http"

	"fleetbook/internal/fleet/service"
	apperrors "fleetbook/pkg/errors"
	httputil "fleetbook/pkg/http"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type DriverHandler struct {
	service service.FleetService
	logger  *logger.Logger
}

func NewDriverHandler(svc service.FleetService, log *logger.Logger) *DriverHandler {
	return &DriverHandler{
		service: svc,
		logger:  log,
	}
}

func (h *DriverHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/drivers", h.Create)
	router.GET("/api/v1/drivers", h.List)
	router.GET("/api/v1/drivers/:id", h.GetByID)
	router.PATCH("/api/v1/drivers/:id", h.Update)
	router.DELETE("/api/v1/drivers/:id", h.Delete)
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var driver model.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		writeError(w, h.logger, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	created, err := h.service.CreateDriver(r.Context(), &driver)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	driver, err := h.service.GetDriver(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WriteSuccess(w, driver); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	drivers, total, err := h.service.ListDrivers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WritePaginated(w, drivers, total, limit, offset); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.DriverUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, h.logger, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	driver, err := h.service.UpdateDriver(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WriteSuccess(w, driver); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteDriver(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	httputil.WriteNoContent(w)
}
