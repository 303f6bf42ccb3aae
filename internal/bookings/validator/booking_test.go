package validator

import (
	"io"
	"strings"
	"testing"
	"time"

	"fleetbook/pkg/config"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Output: io.Discard}))
}

func validBooking() *model.Booking {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &model.Booking{
		RequestedBy: "Acme Logistics",
		LoadSize:    500,
		Pickup: model.Stop{
			Address:  "1 Harbor Rd",
			Location: model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
		},
		Dropoff: model.Stop{
			Address:  "99 Depot St",
			Location: model.GeoPoint{Lat: 32.1093, Lng: 34.8555},
		},
		PickupWindow:  model.TimeWindow{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		DropoffWindow: model.TimeWindow{Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour)},
		Status:        config.Pending,
	}
}

func TestValidBookingPasses(t *testing.T) {
	if err := newTestValidator().Validate(validBooking()); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestMissingRequesterRejected(t *testing.T) {
	booking := validBooking()
	booking.RequestedBy = ""

	err := newTestValidator().Validate(booking)
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if !strings.Contains(err.Error(), "RequestedBy") {
		t.Errorf("error %q does not mention RequestedBy", err.Error())
	}
}

func TestZeroLoadSizeRejected(t *testing.T) {
	booking := validBooking()
	booking.LoadSize = 0

	if err := newTestValidator().Validate(booking); err == nil {
		t.Error("Validate() expected error for zero load size")
	}
}

func TestOutOfRangeCoordinatesRejected(t *testing.T) {
	booking := validBooking()
	booking.Pickup.Location.Lat = 95

	if err := newTestValidator().Validate(booking); err == nil {
		t.Error("Validate() expected error for latitude above 90")
	}
}

func TestInvalidPhoneRejected(t *testing.T) {
	booking := validBooking()
	booking.ContactPhone = "not-a-phone"

	if err := newTestValidator().Validate(booking); err == nil {
		t.Error("Validate() expected error for malformed phone")
	}
}

func TestInvertedWindowRejected(t *testing.T) {
	booking := validBooking()
	booking.PickupWindow.End = booking.PickupWindow.Start.Add(-time.Minute)

	err := newTestValidator().Validate(booking)
	if err == nil {
		t.Fatal("Validate() expected error for inverted pickup window")
	}
	if !strings.Contains(err.Error(), "PickupWindow") {
		t.Errorf("error %q does not mention PickupWindow", err.Error())
	}
}

func TestDropoffBeforePickupRejected(t *testing.T) {
	booking := validBooking()
	booking.DropoffWindow = model.TimeWindow{
		Start: booking.PickupWindow.Start.Add(-3 * time.Hour),
		End:   booking.PickupWindow.Start.Add(-2 * time.Hour),
	}

	if err := newTestValidator().Validate(booking); err == nil {
		t.Error("Validate() expected error when dropoff ends before pickup starts")
	}
}

func TestUpdateWithPartialFieldsPasses(t *testing.T) {
	load := 750.0
	update := &model.BookingUpdate{LoadSize: &load}

	if err := newTestValidator().ValidateUpdate(update); err != nil {
		t.Errorf("ValidateUpdate() error = %v, want nil", err)
	}
}
