package errors

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")

	ErrDriverNotFound = errors.New("driver not found")

	ErrInvalidID = errors.New("invalid resource ID format")

	ErrDuplicatePlate = errors.New("a vehicle with this plate already exists")

	ErrResourceInUse = errors.New("resource has active bookings")
)
