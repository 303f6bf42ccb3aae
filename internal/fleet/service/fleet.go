package service

import (
	"context"
	"errors"
	"time"

	fleeterrors "fleetbook/internal/fleet/errors"
	"fleetbook/internal/fleet/repository"
	fleetvalidator "fleetbook/internal/fleet/validator"
	"fleetbook/pkg/config"
	apperrors "fleetbook/pkg/errors"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"
	"fleetbook/pkg/sanitizer"
)

// FleetService manages the vehicle and driver pools the assignment engine
// draws from.
type FleetService interface {
	CreateVehicle(ctx context.Context, vehicle *model.Vehicle) (*model.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, limit int, offset int64) ([]*model.Vehicle, int64, error)
	UpdateVehicle(ctx context.Context, id string, update *model.VehicleUpdate) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	CreateDriver(ctx context.Context, driver *model.Driver) (*model.Driver, error)
	GetDriver(ctx context.Context, id string) (*model.Driver, error)
	ListDrivers(ctx context.Context, limit int, offset int64) ([]*model.Driver, int64, error)
	UpdateDriver(ctx context.Context, id string, update *model.DriverUpdate) (*model.Driver, error)
	DeleteDriver(ctx context.Context, id string) error
}

type fleetService struct {
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	validator   *fleetvalidator.FleetValidator
	cfg         *config.Config
	logger      *logger.Logger
}

func NewFleetService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	validator *fleetvalidator.FleetValidator,
	cfg *config.Config,
) FleetService {
	return &fleetService{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		validator:   validator,
		cfg:         cfg,
		logger:      cfg.Log,
	}
}

func (s *fleetService) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) (*model.Vehicle, error) {
	vehicle.ID = ""
	vehicle.Plate = sanitizer.NormalizePlate(vehicle.Plate)
	if vehicle.Status == "" {
		vehicle.Status = config.Available
	}
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now().UTC()
	}

	if err := s.validator.ValidateVehicle(vehicle); err != nil {
		return nil, apperrors.Validation("Vehicle validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, fleeterrors.ErrDuplicatePlate) {
			return nil, apperrors.Conflict("A vehicle with this plate already exists")
		}
		return nil, apperrors.Internal("Failed to create vehicle", err)
	}

	s.logger.Info("Vehicle created", "vehicle_id", vehicle.ID, "plate", vehicle.Plate, "type", vehicle.Type)
	return vehicle, nil
}

func (s *fleetService) GetVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapVehicleError(err, id)
	}
	return vehicle, nil
}

func (s *fleetService) ListVehicles(ctx context.Context, limit int, offset int64) ([]*model.Vehicle, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	vehicles, err := s.vehicleRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list vehicles", err)
	}
	total, err := s.vehicleRepo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count vehicles", err)
	}
	return vehicles, total, nil
}

func (s *fleetService) UpdateVehicle(ctx context.Context, id string, update *model.VehicleUpdate) (*model.Vehicle, error) {
	if update.Plate != "" {
		update.Plate = sanitizer.NormalizePlate(update.Plate)
	}

	if err := s.validator.ValidateVehicleUpdate(update); err != nil {
		return nil, apperrors.Validation("Vehicle validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	vehicle, err := s.vehicleRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, fleeterrors.ErrDuplicatePlate) {
			return nil, apperrors.Conflict("A vehicle with this plate already exists")
		}
		return nil, s.mapVehicleError(err, id)
	}

	s.logger.Info("Vehicle updated", "vehicle_id", id)
	return vehicle, nil
}

// DeleteVehicle removes a vehicle from the pool. A booked vehicle is held
// by an active booking and cannot be deleted.
func (s *fleetService) DeleteVehicle(ctx context.Context, id string) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return s.mapVehicleError(err, id)
	}
	if vehicle.Status == config.Booked {
		return apperrors.Conflict("Vehicle has an active booking and cannot be deleted")
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return s.mapVehicleError(err, id)
	}

	s.logger.Info("Vehicle deleted", "vehicle_id", id)
	return nil
}

func (s *fleetService) CreateDriver(ctx context.Context, driver *model.Driver) (*model.Driver, error) {
	driver.ID = ""
	driver.Name = sanitizer.NormalizeName(driver.Name)
	driver.Phone = sanitizer.NormalizePhone(driver.Phone)
	if driver.Status == "" {
		driver.Status = config.Available
	}
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = time.Now().UTC()
	}

	if err := s.validator.ValidateDriver(driver); err != nil {
		return nil, apperrors.Validation("Driver validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, apperrors.Internal("Failed to create driver", err)
	}

	s.logger.Info("Driver created", "driver_id", driver.ID, "name", driver.Name)
	return driver, nil
}

func (s *fleetService) GetDriver(ctx context.Context, id string) (*model.Driver, error) {
	driver, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapDriverError(err, id)
	}
	return driver, nil
}

func (s *fleetService) ListDrivers(ctx context.Context, limit int, offset int64) ([]*model.Driver, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	drivers, err := s.driverRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list drivers", err)
	}
	total, err := s.driverRepo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count drivers", err)
	}
	return drivers, total, nil
}

func (s *fleetService) UpdateDriver(ctx context.Context, id string, update *model.DriverUpdate) (*model.Driver, error) {
	if update.Name != "" {
		update.Name = sanitizer.NormalizeName(update.Name)
	}
	if update.Phone != "" {
		update.Phone = sanitizer.NormalizePhone(update.Phone)
	}

	if err := s.validator.ValidateDriverUpdate(update); err != nil {
		return nil, apperrors.Validation("Driver validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	driver, err := s.driverRepo.Update(ctx, id, update)
	if err != nil {
		return nil, s.mapDriverError(err, id)
	}

	s.logger.Info("Driver updated", "driver_id", id)
	return driver, nil
}

// DeleteDriver removes a driver from the pool. A booked driver is held by
// an active booking and cannot be deleted.
func (s *fleetService) DeleteDriver(ctx context.Context, id string) error {
	driver, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return s.mapDriverError(err, id)
	}
	if driver.Status == config.Booked {
		return apperrors.Conflict("Driver has an active booking and cannot be deleted")
	}

	if err := s.driverRepo.Delete(ctx, id); err != nil {
		return s.mapDriverError(err, id)
	}

	s.logger.Info("Driver deleted", "driver_id", id)
	return nil
}

func (s *fleetService) mapVehicleError(err error, id string) error {
	switch {
	case errors.Is(err, fleeterrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid vehicle ID format")
	case errors.Is(err, fleeterrors.ErrVehicleNotFound):
		return apperrors.NotFoundWithID("Vehicle", id)
	default:
		return apperrors.Internal("Vehicle operation failed", err)
	}
}

func (s *fleetService) mapDriverError(err error, id string) error {
	switch {
	case errors.Is(err, fleeterrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid driver ID format")
	case errors.Is(err, fleeterrors.ErrDriverNotFound):
		return apperrors.NotFoundWithID("Driver", id)
	default:
		return apperrors.Internal("Driver operation failed", err)
	}
}
