package integration

import (
	"net/http"
	"os"
	"testing"
	"time"

	"fleetbook/pkg/client"
	"fleetbook/pkg/model"
)

// These tests run against live bookings and fleet services. They are
// skipped unless BOOKINGS_BASE_URL and FLEET_BASE_URL are set, e.g.:
//
//	BOOKINGS_BASE_URL=http://localhost:8080 FLEET_BASE_URL=http://localhost:8081 go test ./test/integration/...

func testClients(t *testing.T) (*client.BookingClient, *client.FleetClient) {
	t.Helper()

	bookingsURL := os.Getenv("BOOKINGS_BASE_URL")
	fleetURL := os.Getenv("FLEET_BASE_URL")
	if bookingsURL == "" || fleetURL == "" {
		t.Skip("BOOKINGS_BASE_URL and FLEET_BASE_URL not set, skipping integration tests")
	}

	bookings := client.NewBookingClient(bookingsURL)
	fleet := client.NewFleetClient(fleetURL)

	if err := bookings.WaitForHealthy(); err != nil {
		t.Fatalf("bookings service not healthy: %v", err)
	}
	if err := fleet.WaitForHealthy(); err != nil {
		t.Fatalf("fleet service not healthy: %v", err)
	}
	return bookings, fleet
}

func tripWindows(daysAhead int) (model.TimeWindow, model.TimeWindow) {
	day := time.Now().UTC().AddDate(0, 0, daysAhead).Truncate(time.Hour)
	pickup := model.TimeWindow{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)}
	dropoff := model.TimeWindow{Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour)}
	return pickup, dropoff
}

func TestBookingAssignmentFlow(t *testing.T) {
	bookings, fleet := testClients(t)

	vehicleResp, err := fleet.CreateVehicle(model.Vehicle{
		Plate:        "IT-" + time.Now().UTC().Format("150405"),
		Type:         model.Van,
		LoadCapacity: 600,
		Location:     model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
	})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	if vehicleResp.StatusCode != http.StatusCreated {
		t.Fatalf("create vehicle: %s", client.GetErrorMessage(vehicleResp))
	}
	vehicle, err := fleet.DecodeVehicle(vehicleResp)
	if err != nil {
		t.Fatal(err)
	}
	defer fleet.DeleteVehicle(vehicle.ID)

	driverResp, err := fleet.CreateDriver(model.Driver{
		Name:     "Integration Driver",
		Phone:    "+972501234567",
		Location: model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
	})
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}
	if driverResp.StatusCode != http.StatusCreated {
		t.Fatalf("create driver: %s", client.GetErrorMessage(driverResp))
	}
	driver, err := fleet.DecodeDriver(driverResp)
	if err != nil {
		t.Fatal(err)
	}
	defer fleet.DeleteDriver(driver.ID)

	pickup, dropoff := tripWindows(1)
	bookingResp, err := bookings.Create(model.Booking{
		RequestedBy: "Integration Test",
		LoadSize:    500,
		Pickup: model.Stop{
			Address:  "1 Harbor Rd",
			Location: model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
		},
		Dropoff: model.Stop{
			Address:  "99 Depot St",
			Location: model.GeoPoint{Lat: 32.1093, Lng: 34.8555},
		},
		PickupWindow:  pickup,
		DropoffWindow: dropoff,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if bookingResp.StatusCode != http.StatusCreated {
		t.Fatalf("create booking: %s", client.GetErrorMessage(bookingResp))
	}

	booking, err := bookings.DecodeBooking(bookingResp)
	if err != nil {
		t.Fatal(err)
	}
	defer bookings.Cancel(booking.ID)

	if booking.Status != "assigned" {
		t.Fatalf("booking status = %s, want assigned", booking.Status)
	}
	if booking.VehicleID != vehicle.ID || booking.DriverID != driver.ID {
		t.Errorf("assignment = (%s, %s), want (%s, %s)",
			booking.VehicleID, booking.DriverID, vehicle.ID, driver.ID)
	}

	// The committed vehicle must leave the available pool.
	updatedResp, err := fleet.GetVehicle(vehicle.ID)
	if err != nil {
		t.Fatal(err)
	}
	updatedVehicle, err := fleet.DecodeVehicle(updatedResp)
	if err != nil {
		t.Fatal(err)
	}
	if string(updatedVehicle.Status) != "booked" {
		t.Errorf("vehicle status = %s, want booked", updatedVehicle.Status)
	}

	// Start, then complete, then confirm the vehicle is available again.
	startResp, err := bookings.Start(booking.ID)
	if err != nil {
		t.Fatalf("start booking: %v", err)
	}
	if startResp.StatusCode != http.StatusOK {
		t.Fatalf("start booking failed: %s", client.GetErrorMessage(startResp))
	}
	completeResp, err := bookings.Complete(booking.ID)
	if err != nil {
		t.Fatalf("complete booking: %v", err)
	}
	if completeResp.StatusCode != http.StatusOK {
		t.Fatalf("complete booking failed: %s", client.GetErrorMessage(completeResp))
	}

	finalResp, err := fleet.GetVehicle(vehicle.ID)
	if err != nil {
		t.Fatal(err)
	}
	finalVehicle, err := fleet.DecodeVehicle(finalResp)
	if err != nil {
		t.Fatal(err)
	}
	if string(finalVehicle.Status) != "available" {
		t.Errorf("vehicle status after completion = %s, want available", finalVehicle.Status)
	}
}

func TestBookingStaysPendingWithoutFleet(t *testing.T) {
	bookings, _ := testClients(t)

	pickup, dropoff := tripWindows(2)
	resp, err := bookings.Create(model.Booking{
		RequestedBy: "Integration Test",
		LoadSize:    99999, // no vehicle can carry this
		Pickup: model.Stop{
			Address:  "1 Harbor Rd",
			Location: model.GeoPoint{Lat: 32.0853, Lng: 34.7818},
		},
		Dropoff: model.Stop{
			Address:  "99 Depot St",
			Location: model.GeoPoint{Lat: 32.1093, Lng: 34.8555},
		},
		PickupWindow:  pickup,
		DropoffWindow: dropoff,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create booking: %s", client.GetErrorMessage(resp))
	}

	booking, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatal(err)
	}
	defer bookings.Cancel(booking.ID)

	if booking.Status != "pending" {
		t.Errorf("booking status = %s, want pending", booking.Status)
	}
	if booking.VehicleID != "" || booking.DriverID != "" {
		t.Errorf("pending booking must hold no resources, got (%q, %q)",
			booking.VehicleID, booking.DriverID)
	}
}

func TestBookingMalformedPayloadRejected(t *testing.T) {
	bookings, _ := testClients(t)

	resp, err := bookings.CreateRaw([]byte("{not json"))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
