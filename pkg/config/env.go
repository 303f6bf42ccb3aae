package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvAssignmentLockTTL   = "ASSIGNMENT_LOCK_TTL"
	EnvEventsEnabled       = "EVENTS_ENABLED"
	EnvBookingEventsTopic  = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQ    = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvMaxPoolScanBookings = "MAX_POOL_SCAN_BOOKINGS"
)
