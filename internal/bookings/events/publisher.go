package events

import (
	"context"
	"time"

	"fleetbook/pkg/config"
	"fleetbook/pkg/kafka"
	kafka_config "fleetbook/pkg/kafka/config"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/middleware"
	"fleetbook/pkg/model"
)

// Booking lifecycle event types.
const (
	TypeBookingAssigned  = "booking.assigned"
	TypeBookingPending   = "booking.pending"
	TypeBookingStarted   = "booking.started"
	TypeBookingCompleted = "booking.completed"
	TypeBookingCancelled = "booking.cancelled"
)

const eventSource = "bookings-service"

// BookingEvent is the payload published on every booking lifecycle change.
type BookingEvent struct {
	BookingID  string               `json:"booking_id"`
	Status     config.BookingStatus `json:"status"`
	VehicleID  string               `json:"vehicle_id,omitempty"`
	DriverID   string               `json:"driver_id,omitempty"`
	LoadSize   float64              `json:"load_size"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort:
// implementations log failures instead of failing the request, since the
// booking state is already committed by the time an event goes out.
type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	logger   *logger.Logger
}

// NewKafkaPublisher wires a Kafka-backed publisher for booking events.
func NewKafkaPublisher(cfg *config.Config) (Publisher, error) {
	producer, err := kafka.NewProducer(kafka_config.Load(), cfg.BookingEventsTopic, cfg.BookingEventsDLQ)
	if err != nil {
		return nil, err
	}

	return &kafkaPublisher{
		producer: producer,
		logger:   cfg.Log,
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		BookingID:  booking.ID,
		Status:     booking.Status,
		VehicleID:  booking.VehicleID,
		DriverID:   booking.DriverID,
		LoadSize:   booking.LoadSize,
		OccurredAt: time.Now().UTC(),
	}

	builder := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(eventSource)

	if requestID, ok := ctx.Value(middleware.RequestIDKey).(string); ok && requestID != "" {
		builder = builder.WithCorrelationID(requestID)
	}

	if err := p.producer.Publish(ctx, builder.Build()); err != nil {
		p.logger.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	p.logger.Debug("Published booking event",
		"event_type", eventType,
		"booking_id", booking.ID,
	)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops all events. Used when
// events are disabled in configuration.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, *model.Booking) {}

func (nopPublisher) Close() error { return nil }
