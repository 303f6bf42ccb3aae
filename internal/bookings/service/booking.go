package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"fleetbook/internal/assignment"
	bookingerrors "fleetbook/internal/bookings/errors"
	"fleetbook/internal/bookings/events"
	bookingrepo "fleetbook/internal/bookings/repository"
	bookingvalidator "fleetbook/internal/bookings/validator"
	fleetrepo "fleetbook/internal/fleet/repository"
	"fleetbook/pkg/config"
	apperrors "fleetbook/pkg/errors"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"
	"fleetbook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingService owns the booking lifecycle. Create runs a single
// assignment pass over the fleet pool; the booking either leaves with a
// committed vehicle+driver pair or stays pending.
type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	SearchByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
	Start(ctx context.Context, id string) (*model.Booking, error)
	Complete(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo        bookingrepo.BookingRepository
	lockRepo    bookingrepo.AssignmentLockRepository
	vehicleRepo fleetrepo.VehicleRepository
	driverRepo  fleetrepo.DriverRepository
	validator   *bookingvalidator.BookingValidator
	publisher   events.Publisher
	cfg         *config.Config
	logger      *logger.Logger
}

func NewBookingService(
	repo bookingrepo.BookingRepository,
	lockRepo bookingrepo.AssignmentLockRepository,
	vehicleRepo fleetrepo.VehicleRepository,
	driverRepo fleetrepo.DriverRepository,
	validator *bookingvalidator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:        repo,
		lockRepo:    lockRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		validator:   validator,
		publisher:   publisher,
		cfg:         cfg,
		logger:      cfg.Log,
	}
}

// Create persists the booking and runs one assignment pass under the
// fleet-wide advisory lock. Inside a single transaction it snapshots the
// available pools and active bookings, picks the best scoring pair, and
// commits booking + resource status changes together. When no pair
// qualifies the booking is stored as pending with no resources held.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	s.applyDefaults(booking)
	s.sanitize(booking)

	if err := s.validator.Validate(booking); err != nil {
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"errors": err.Error(),
		})
	}

	if err := s.lockRepo.Acquire(ctx, s.cfg.AssignmentLockTTL); err != nil {
		if errors.Is(err, bookingerrors.ErrAssignmentInProgress) {
			return nil, apperrors.Conflict("Another assignment pass is in progress, please retry")
		}
		return nil, apperrors.Internal("Failed to acquire assignment lock", err)
	}
	defer func() {
		if err := s.lockRepo.Release(ctx); err != nil {
			// The TTL index reaps the lock if this fails.
			s.logger.Error("Failed to release assignment lock", "error", err)
		}
	}()

	var selected assignment.Result
	var assigned bool

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		vehicles, err := s.vehicleRepo.FindAvailable(sessCtx)
		if err != nil {
			return apperrors.Internal("Failed to load vehicle pool", err)
		}
		drivers, err := s.driverRepo.FindAvailable(sessCtx)
		if err != nil {
			return apperrors.Internal("Failed to load driver pool", err)
		}
		active, err := s.repo.FindActive(sessCtx, s.cfg.MaxPoolScanBookings)
		if err != nil {
			return apperrors.Internal("Failed to load active bookings", err)
		}

		selected, assigned = assignment.SelectPair(booking, vehicles, drivers, active)
		if assigned {
			booking.VehicleID = selected.Vehicle.ID
			booking.DriverID = selected.Driver.ID
			booking.Status = config.Assigned
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}

		if assigned {
			if err := s.vehicleRepo.UpdateStatus(sessCtx, selected.Vehicle.ID, config.Booked); err != nil {
				return apperrors.Internal("Failed to book vehicle", err)
			}
			if err := s.driverRepo.UpdateStatus(sessCtx, selected.Driver.ID, config.Booked); err != nil {
				return apperrors.Internal("Failed to book driver", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}

	if assigned {
		s.logger.Info("Booking assigned",
			"booking_id", booking.ID,
			"vehicle_id", booking.VehicleID,
			"driver_id", booking.DriverID,
			"score", selected.Score,
		)
		s.publisher.Publish(ctx, events.TypeBookingAssigned, booking)
	} else {
		s.logger.Info("Booking pending, no qualified vehicle/driver pair",
			"booking_id", booking.ID,
			"load_size", booking.LoadSize,
		)
		s.publisher.Publish(ctx, events.TypeBookingPending, booking)
	}

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", errCount)
	}
	if errFind != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", errFind)
	}
	return bookings, count, nil
}

func (s *bookingService) SearchByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	if vehicleID == "" && driverID == "" {
		return nil, 0, apperrors.InvalidInput("At least one of vehicle_id or driver_id is required")
	}
	if from != nil && to != nil && !to.After(*from) {
		return nil, 0, apperrors.InvalidInput("end_time must be after start_time")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByResource(ctx, vehicleID, driverID, from, to)
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByResource(ctx, vehicleID, driverID, from, to, limit, offset)
	}()

	wg.Wait()
	for _, err := range []error{errCount, errFind} {
		if err == nil {
			continue
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return nil, 0, apperrors.InvalidInput("Invalid resource ID format")
		}
		return nil, 0, apperrors.Internal("Failed to search bookings", err)
	}
	return bookings, count, nil
}

// Start moves an assigned booking to in_progress. Resources stay booked.
func (s *bookingService) Start(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, config.InProgress, events.TypeBookingStarted)
}

// Complete finishes an in_progress booking and returns its vehicle and
// driver to the available pool.
func (s *bookingService) Complete(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, config.Completed, events.TypeBookingCompleted)
}

// Cancel terminates a non-terminal booking. Any held resources are
// released back to the pool.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, config.Cancelled, events.TypeBookingCancelled)
}

// validTransitions maps each target status to the statuses it may be
// reached from.
var validTransitions = map[config.BookingStatus][]config.BookingStatus{
	config.InProgress: {config.Assigned},
	config.Completed:  {config.InProgress},
	config.Cancelled:  {config.Pending, config.Assigned, config.InProgress},
}

func (s *bookingService) transition(ctx context.Context, id string, target config.BookingStatus, eventType string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}

	if !transitionAllowed(booking.Status, target) {
		return nil, apperrors.Conflict("Booking cannot move from " + string(booking.Status) + " to " + string(target))
	}

	releaseResources := target.Terminal() && booking.Assigned()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.UpdateStatus(sessCtx, id, target); err != nil {
			return apperrors.Internal("Failed to update booking status", err)
		}
		if releaseResources {
			if err := s.vehicleRepo.UpdateStatus(sessCtx, booking.VehicleID, config.Available); err != nil {
				return apperrors.Internal("Failed to release vehicle", err)
			}
			if err := s.driverRepo.UpdateStatus(sessCtx, booking.DriverID, config.Available); err != nil {
				return apperrors.Internal("Failed to release driver", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}

	booking.Status = target

	s.logger.Info("Booking status changed",
		"booking_id", booking.ID,
		"status", target,
		"resources_released", releaseResources,
	)
	s.publisher.Publish(ctx, eventType, booking)

	return booking, nil
}

func transitionAllowed(from, to config.BookingStatus) bool {
	for _, allowed := range validTransitions[to] {
		if from == allowed {
			return true
		}
	}
	return false
}

func (s *bookingService) applyDefaults(booking *model.Booking) {
	booking.ID = ""
	booking.VehicleID = ""
	booking.DriverID = ""
	booking.Status = config.Pending
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
}

func (s *bookingService) sanitize(booking *model.Booking) {
	booking.RequestedBy = sanitizer.NormalizeName(booking.RequestedBy)
	booking.ContactPhone = sanitizer.NormalizePhone(booking.ContactPhone)
	booking.Pickup.Address = sanitizer.NormalizeAddress(booking.Pickup.Address)
	booking.Dropoff.Address = sanitizer.NormalizeAddress(booking.Dropoff.Address)
}

func (s *bookingService) mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case errors.Is(err, bookingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	default:
		return apperrors.Internal("Failed to load booking", err)
	}
}
