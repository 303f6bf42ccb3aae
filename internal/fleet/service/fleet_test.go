package service

import (
	"context"
	"io"
	"testing"

	fleeterrors "fleetbook/internal/fleet/errors"
	fleetvalidator "fleetbook/internal/fleet/validator"
	"fleetbook/pkg/config"
	apperrors "fleetbook/pkg/errors"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockVehicleRepository struct {
	CreateFunc        func(ctx context.Context, vehicle *model.Vehicle) error
	FindByIDFunc      func(ctx context.Context, id string) (*model.Vehicle, error)
	FindAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Vehicle, error)
	CountFunc         func(ctx context.Context) (int64, error)
	FindAvailableFunc func(ctx context.Context) ([]*model.Vehicle, error)
	UpdateFunc        func(ctx context.Context, id string, update *model.VehicleUpdate) (*model.Vehicle, error)
	UpdateStatusFunc  func(ctx context.Context, id string, status config.ResourceStatus) error
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return m.CreateFunc(ctx, vehicle)
}

func (m *mockVehicleRepository) FindByID(ctx context.Context, id string) (*model.Vehicle, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockVehicleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Vehicle, error) {
	return m.FindAllFunc(ctx, limit, offset)
}

func (m *mockVehicleRepository) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

func (m *mockVehicleRepository) FindAvailable(ctx context.Context) ([]*model.Vehicle, error) {
	return m.FindAvailableFunc(ctx)
}

func (m *mockVehicleRepository) Update(ctx context.Context, id string, update *model.VehicleUpdate) (*model.Vehicle, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *mockVehicleRepository) UpdateStatus(ctx context.Context, id string, status config.ResourceStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockVehicleRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockDriverRepository struct {
	CreateFunc        func(ctx context.Context, driver *model.Driver) error
	FindByIDFunc      func(ctx context.Context, id string) (*model.Driver, error)
	FindAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Driver, error)
	CountFunc         func(ctx context.Context) (int64, error)
	FindAvailableFunc func(ctx context.Context) ([]*model.Driver, error)
	UpdateFunc        func(ctx context.Context, id string, update *model.DriverUpdate) (*model.Driver, error)
	UpdateStatusFunc  func(ctx context.Context, id string, status config.ResourceStatus) error
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockDriverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return m.CreateFunc(ctx, driver)
}

func (m *mockDriverRepository) FindByID(ctx context.Context, id string) (*model.Driver, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockDriverRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Driver, error) {
	return m.FindAllFunc(ctx, limit, offset)
}

func (m *mockDriverRepository) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

func (m *mockDriverRepository) FindAvailable(ctx context.Context) ([]*model.Driver, error) {
	return m.FindAvailableFunc(ctx)
}

func (m *mockDriverRepository) Update(ctx context.Context, id string, update *model.DriverUpdate) (*model.Driver, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *mockDriverRepository) UpdateStatus(ctx context.Context, id string, status config.ResourceStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockDriverRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func newTestService(vehicleRepo *mockVehicleRepository, driverRepo *mockDriverRepository) FleetService {
	log := logger.New(logger.Config{Output: io.Discard})
	cfg := &config.Config{Log: log}
	return NewFleetService(vehicleRepo, driverRepo, fleetvalidator.NewFleetValidator(log), cfg)
}

func TestCreateVehicleNormalizesPlateAndDefaultsStatus(t *testing.T) {
	var stored *model.Vehicle
	vehicleRepo := &mockVehicleRepository{
		CreateFunc: func(_ context.Context, v *model.Vehicle) error {
			v.ID = primitive.NewObjectID().Hex()
			stored = v
			return nil
		},
	}

	svc := newTestService(vehicleRepo, &mockDriverRepository{})

	vehicle := &model.Vehicle{
		Plate:        "  fl 1234 ",
		Type:         model.Van,
		LoadCapacity: 800,
		Location:     model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
	}

	created, err := svc.CreateVehicle(context.Background(), vehicle)
	if err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}

	if created.Plate != "FL1234" {
		t.Errorf("plate = %q, want %q", created.Plate, "FL1234")
	}
	if created.Status != config.Available {
		t.Errorf("status = %s, want %s", created.Status, config.Available)
	}
	if stored == nil || stored.CreatedAt.IsZero() {
		t.Error("created_at was not set")
	}
}

func TestCreateVehicleDuplicatePlateReturnsConflict(t *testing.T) {
	vehicleRepo := &mockVehicleRepository{
		CreateFunc: func(_ context.Context, _ *model.Vehicle) error {
			return fleeterrors.ErrDuplicatePlate
		},
	}

	svc := newTestService(vehicleRepo, &mockDriverRepository{})

	_, err := svc.CreateVehicle(context.Background(), &model.Vehicle{
		Plate:        "FL-1234",
		Type:         model.Truck,
		LoadCapacity: 3000,
	})
	if err == nil {
		t.Fatal("CreateVehicle() expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeConflict)
	}
}

func TestCreateVehicleInvalidTypeRejected(t *testing.T) {
	vehicleRepo := &mockVehicleRepository{
		CreateFunc: func(_ context.Context, _ *model.Vehicle) error {
			t.Error("invalid vehicle must not be persisted")
			return nil
		},
	}

	svc := newTestService(vehicleRepo, &mockDriverRepository{})

	_, err := svc.CreateVehicle(context.Background(), &model.Vehicle{
		Plate:        "FL-1234",
		Type:         "scooter",
		LoadCapacity: 100,
	})
	if err == nil {
		t.Fatal("CreateVehicle() expected validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeValidation)
	}
}

func TestDeleteVehicleBookedReturnsConflict(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	vehicleRepo := &mockVehicleRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, Status: config.Booked}, nil
		},
		DeleteFunc: func(_ context.Context, _ string) error {
			t.Error("booked vehicle must not be deleted")
			return nil
		},
	}

	svc := newTestService(vehicleRepo, &mockDriverRepository{})

	err := svc.DeleteVehicle(context.Background(), id)
	if err == nil {
		t.Fatal("DeleteVehicle() expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeConflict)
	}
}

func TestCreateDriverNormalizesPhone(t *testing.T) {
	driverRepo := &mockDriverRepository{
		CreateFunc: func(_ context.Context, d *model.Driver) error {
			d.ID = primitive.NewObjectID().Hex()
			return nil
		},
	}

	svc := newTestService(&mockVehicleRepository{}, driverRepo)

	driver := &model.Driver{
		Name:     "  Dana   Levy ",
		Phone:    "0501234567",
		Location: model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
	}

	created, err := svc.CreateDriver(context.Background(), driver)
	if err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}

	if created.Name != "Dana Levy" {
		t.Errorf("name = %q, want %q", created.Name, "Dana Levy")
	}
	if created.Phone != "+972501234567" {
		t.Errorf("phone = %q, want %q", created.Phone, "+972501234567")
	}
	if created.Status != config.Available {
		t.Errorf("status = %s, want %s", created.Status, config.Available)
	}
}

func TestGetDriverNotFound(t *testing.T) {
	driverRepo := &mockDriverRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*model.Driver, error) {
			return nil, fleeterrors.ErrDriverNotFound
		},
	}

	svc := newTestService(&mockVehicleRepository{}, driverRepo)

	_, err := svc.GetDriver(context.Background(), primitive.NewObjectID().Hex())
	if err == nil {
		t.Fatal("GetDriver() expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeNotFound)
	}
}
