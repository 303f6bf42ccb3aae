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

type VehicleHandler struct {
	service service.FleetService
	logger  *logger.Logger
}

func NewVehicleHandler(svc service.FleetService, log *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: svc,
		logger:  log,
	}
}

func (h *VehicleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/vehicles", h.Create)
	router.GET("/api/v1/vehicles", h.List)
	router.GET("/api/v1/vehicles/:id", h.GetByID)
	router.PATCH("/api/v1/vehicles/:id", h.Update)
	router.DELETE("/api/v1/vehicles/:id", h.Delete)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var vehicle model.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, h.logger, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	created, err := h.service.CreateVehicle(r.Context(), &vehicle)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vehicle, err := h.service.GetVehicle(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WriteSuccess(w, vehicle); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	vehicles, total, err := h.service.ListVehicles(r.Context(), limit, offset)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WritePaginated(w, vehicles, total, limit, offset); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.VehicleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, h.logger, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	vehicle, err := h.service.UpdateVehicle(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := httputil.WriteSuccess(w, vehicle); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteVehicle(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	httputil.WriteNoContent(w)
}

func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("Request failed", "code", appErr.Code, "error", appErr.Error())
	}
	if werr := httputil.WriteError(w, appErr); werr != nil {
		log.Error("Failed to write error response", "error", werr)
	}
}
