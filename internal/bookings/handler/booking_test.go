package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "fleetbook/pkg/errors"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	CreateFunc           func(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByIDFunc          func(ctx context.Context, id string) (*model.Booking, error)
	GetAllFunc           func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	SearchByResourceFunc func(ctx context.Context, vehicleID, driverID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
	StartFunc            func(ctx context.Context, id string) (*model.Booking, error)
	CompleteFunc         func(ctx context.Context, id string) (*model.Booking, error)
	CancelFunc           func(ctx context.Context, id string) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	return m.CreateFunc(ctx, booking)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.GetAllFunc(ctx, limit, offset)
}

func (m *mockBookingService) SearchByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.SearchByResourceFunc(ctx, vehicleID, driverID, from, to, limit, offset)
}

func (m *mockBookingService) Start(ctx context.Context, id string) (*model.Booking, error) {
	return m.StartFunc(ctx, id)
}

func (m *mockBookingService) Complete(ctx context.Context, id string) (*model.Booking, error) {
	return m.CompleteFunc(ctx, id)
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return m.CancelFunc(ctx, id)
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	log := logger.New(logger.Config{Output: io.Discard})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestCreateReturns201(t *testing.T) {
	svc := &mockBookingService{
		CreateFunc: func(_ context.Context, booking *model.Booking) (*model.Booking, error) {
			booking.ID = "65f1a2b3c4d5e6f7a8b9c0d1"
			booking.Status = "assigned"
			return booking, nil
		},
	}

	body := `{"requested_by":"Acme","load_size":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("response booking has no ID")
	}
}

func TestCreateInvalidJSONReturns400(t *testing.T) {
	svc := &mockBookingService{
		CreateFunc: func(_ context.Context, _ *model.Booking) (*model.Booking, error) {
			t.Error("service must not be called for malformed JSON")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetByIDNotFoundReturns404(t *testing.T) {
	svc := &mockBookingService{
		GetByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/65f1a2b3c4d5e6f7a8b9c0d1", nil)
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListDispatchesToSearchWithResourceFilter(t *testing.T) {
	searchCalled := false
	svc := &mockBookingService{
		SearchByResourceFunc: func(_ context.Context, vehicleID, driverID string, _, _ *time.Time, _ int, _ int64) ([]*model.Booking, int64, error) {
			searchCalled = true
			if vehicleID != "65f1a2b3c4d5e6f7a8b9c0d1" {
				t.Errorf("vehicleID = %s", vehicleID)
			}
			if driverID != "" {
				t.Errorf("driverID = %s, want empty", driverID)
			}
			return []*model.Booking{}, 0, nil
		},
		GetAllFunc: func(_ context.Context, _ int, _ int64) ([]*model.Booking, int64, error) {
			t.Error("GetAll must not be called when a resource filter is present")
			return nil, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?vehicle_id=65f1a2b3c4d5e6f7a8b9c0d1", nil)
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	if !searchCalled {
		t.Error("search was not invoked")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCancelConflictReturns409(t *testing.T) {
	svc := &mockBookingService{
		CancelFunc: func(_ context.Context, _ string) (*model.Booking, error) {
			return nil, apperrors.Conflict("Booking cannot move from completed to cancelled")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/65f1a2b3c4d5e6f7a8b9c0d1/cancel", nil)
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}
