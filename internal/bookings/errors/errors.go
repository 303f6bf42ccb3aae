package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrAssignmentInProgress = errors.New("another assignment pass is in progress")
)
