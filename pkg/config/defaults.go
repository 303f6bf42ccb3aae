package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "fleetbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAssignmentLockTTL = 10 * time.Second

	DefaultEventsEnabled      = false
	DefaultBookingEventsTopic = "booking-events"
	DefaultBookingEventsDLQ   = "booking-events-dlq"

	// Upper bound on non-terminal bookings loaded for conflict scanning.
	DefaultMaxPoolScanBookings = 500

	DefaultPaginationLimit = 100
)

// BookingStatus is the lifecycle state of a trip request.
type BookingStatus string

const (
	Pending    BookingStatus = "pending"
	Assigned   BookingStatus = "assigned"
	InProgress BookingStatus = "in_progress"
	Completed  BookingStatus = "completed"
	Cancelled  BookingStatus = "cancelled"
)

// Terminal reports whether a booking in this status no longer occupies
// vehicle or driver capacity.
func (s BookingStatus) Terminal() bool {
	return s == Completed || s == Cancelled
}

// ResourceStatus is the availability state of a vehicle or driver.
type ResourceStatus string

const (
	Available   ResourceStatus = "available"
	Booked      ResourceStatus = "booked"
	Maintenance ResourceStatus = "maintenance"
	OffDuty     ResourceStatus = "off_duty"
)
