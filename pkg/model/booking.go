package model

import (
	"time"

	"fleetbook/pkg/config"
)

// Booking is a single trip request. VehicleID and DriverID stay empty until
// the assignment engine commits a pair; a booking owns at most one of each.
type Booking struct {
	ID            string               `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RequestedBy   string               `json:"requested_by" bson:"requested_by" validate:"required,min=2,max=100"`
	ContactPhone  string               `json:"contact_phone" bson:"contact_phone" validate:"omitempty,e164"`
	LoadSize      float64              `json:"load_size" bson:"load_size" validate:"required,gt=0"`
	Pickup        Stop                 `json:"pickup" bson:"pickup"`
	Dropoff       Stop                 `json:"dropoff" bson:"dropoff"`
	PickupWindow  TimeWindow           `json:"pickup_window" bson:"pickup_window"`
	DropoffWindow TimeWindow           `json:"dropoff_window" bson:"dropoff_window"`
	VehicleID     string               `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty" validate:"omitempty,mongodb"`
	DriverID      string               `json:"driver_id,omitempty" bson:"driver_id,omitempty" validate:"omitempty,mongodb"`
	Status        config.BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending assigned in_progress completed cancelled"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// TripWindow is the full occupation span of the trip, pickup start through
// dropoff end. Conflict checks operate on this span.
func (b *Booking) TripWindow() TimeWindow {
	return TimeWindow{
		Start: b.PickupWindow.Start,
		End:   b.DropoffWindow.End,
	}
}

// Assigned reports whether the booking holds a committed vehicle+driver pair.
func (b *Booking) Assigned() bool {
	return b.VehicleID != "" && b.DriverID != ""
}

type BookingUpdate struct {
	RequestedBy   string               `json:"requested_by,omitempty" validate:"omitempty,min=2,max=100"`
	ContactPhone  string               `json:"contact_phone,omitempty" validate:"omitempty,e164"`
	LoadSize      *float64             `json:"load_size,omitempty" validate:"omitempty,gt=0"`
	Pickup        *Stop                `json:"pickup,omitempty"`
	Dropoff       *Stop                `json:"dropoff,omitempty"`
	PickupWindow  *TimeWindow          `json:"pickup_window,omitempty"`
	DropoffWindow *TimeWindow          `json:"dropoff_window,omitempty"`
	Status        config.BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending assigned in_progress completed cancelled"`
}
