package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fleetbook/internal/bookings/service"
	apperrors "fleetbook/pkg/errors"
	httputil "fleetbook/pkg/http"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	logger  *logger.Logger
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		logger:  log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/:id", h.GetByID)
	router.POST("/api/v1/bookings/:id/start", h.Start)
	router.POST("/api/v1/bookings/:id/complete", h.Complete)
	router.POST("/api/v1/bookings/:id/cancel", h.Cancel)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

// List returns bookings, optionally filtered by the vehicle and/or driver
// they occupy (vehicle_id, driver_id) and a trip time range (start_time,
// end_time as RFC 3339).
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	query := r.URL.Query()
	vehicleID := query.Get("vehicle_id")
	driverID := query.Get("driver_id")

	from, err := parseTimeParam(query.Get("start_time"))
	if err != nil {
		h.writeError(w, apperrors.InvalidInput("start_time must be RFC 3339"))
		return
	}
	to, err := parseTimeParam(query.Get("end_time"))
	if err != nil {
		h.writeError(w, apperrors.InvalidInput("end_time must be RFC 3339"))
		return
	}

	var bookings []*model.Booking
	var total int64
	if vehicleID != "" || driverID != "" {
		bookings, total, err = h.service.SearchByResource(r.Context(), vehicleID, driverID, from, to, limit, offset)
	} else {
		bookings, total, err = h.service.GetAll(r.Context(), limit, offset)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps.ByName("id"), h.service.Start)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps.ByName("id"), h.service.Complete)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps.ByName("id"), h.service.Cancel)
}

func (h *BookingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	op func(ctx context.Context, id string) (*model.Booking, error),
) {
	booking, err := op(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "code", appErr.Code, "error", appErr.Error())
	}
	if werr := httputil.WriteError(w, appErr); werr != nil {
		h.logger.Error("Failed to write error response", "error", werr)
	}
}
