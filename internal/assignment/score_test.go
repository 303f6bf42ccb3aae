package assignment

import (
	"math"
	"testing"

	"fleetbook/pkg/config"
	"fleetbook/pkg/model"
)

var depot = model.GeoPoint{Lat: 32.0853, Lng: 34.7818}

func testBooking(loadSize float64) *model.Booking {
	return &model.Booking{
		LoadSize:      loadSize,
		Pickup:        model.Stop{Address: "Depot", Location: depot},
		Dropoff:       model.Stop{Address: "Port", Location: model.GeoPoint{Lat: 32.81, Lng: 34.99}},
		PickupWindow:  window(10, 0, 10, 30),
		DropoffWindow: window(12, 0, 12, 30),
		Status:        config.Pending,
	}
}

func testVehicle(id string, vt model.VehicleType, capacity float64, at model.GeoPoint) *model.Vehicle {
	return &model.Vehicle{ID: id, Plate: "FL-" + id, Type: vt, LoadCapacity: capacity, Location: at, Status: config.Available}
}

func testDriver(id string, at model.GeoPoint) *model.Driver {
	return &model.Driver{ID: id, Name: "Driver " + id, Phone: "+972501234567", Location: at, Status: config.Available}
}

func TestScore_CapacityHardConstraint(t *testing.T) {
	req := testBooking(500)
	small := testVehicle("v1", model.Van, 400, depot)
	driver := testDriver("d1", depot)

	if got := Score(req, small, driver, nil); got != DisqualifiedScore {
		t.Fatalf("undersized vehicle must be disqualified, got score %f", got)
	}
}

func TestScore_QualifyingPairBeatsSentinel(t *testing.T) {
	req := testBooking(500)
	vehicle := testVehicle("v1", model.Van, 600, depot)
	driver := testDriver("d1", depot)

	got := Score(req, vehicle, driver, nil)
	if got <= DisqualifiedScore {
		t.Fatalf("qualifying pair scored %f, must exceed the sentinel", got)
	}
	// base 10 + utilization floor((1-|0.875-0.8333|)*10)=9 + pickup 15
	// + driver 10 + van bonus 5
	if math.Abs(got-49) > 1e-9 {
		t.Fatalf("expected score 49 for a perfect co-located pair, got %f", got)
	}
}

func TestScore_UtilizationSweetSpot(t *testing.T) {
	far := model.GeoPoint{Lat: 45.0, Lng: 10.0} // kills both distance terms

	tests := []struct {
		name     string
		loadSize float64
		capacity float64
		want     float64
	}{
		{"center of band", 875, 1000, 10 + 10 + 5}, // floor((1-0)*10)=10, van bonus
		{"band edge low", 800, 1000, 10 + 9 + 5},
		{"band edge high", 950, 1000, 10 + 9 + 5},
		{"below band no bonus", 500, 1000, 10 + 5},
		{"above band no bonus", 990, 1000, 10 + 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testBooking(tt.loadSize)
			vehicle := testVehicle("v1", model.Van, tt.capacity, far)
			driver := testDriver("d1", far)

			got := Score(req, vehicle, driver, nil)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScore_DistanceMonotonicity(t *testing.T) {
	req := testBooking(500)
	driver := testDriver("d1", depot)

	near := testVehicle("v1", model.Van, 600, model.GeoPoint{Lat: 32.09, Lng: 34.79})
	farther := testVehicle("v2", model.Van, 600, model.GeoPoint{Lat: 32.50, Lng: 35.20})

	nearScore := Score(req, near, driver, nil)
	farScore := Score(req, farther, driver, nil)
	if nearScore < farScore {
		t.Fatalf("nearer vehicle must not score lower: near=%f far=%f", nearScore, farScore)
	}
}

func TestScore_ConflictDisqualifies(t *testing.T) {
	req := testBooking(500)
	vehicle := testVehicle("v1", model.Van, 600, depot)
	driver := testDriver("d1", depot)

	// Overlaps the candidate's trip window outright.
	busy := &model.Booking{
		VehicleID:     "v1",
		Status:        config.Assigned,
		PickupWindow:  window(10, 15, 10, 45),
		DropoffWindow: window(11, 0, 11, 30),
	}

	if got := Score(req, vehicle, driver, []*model.Booking{busy}); got != DisqualifiedScore {
		t.Fatalf("time conflict must disqualify, got score %f", got)
	}
}

func TestScore_BufferedConflictDisqualifies(t *testing.T) {
	req := testBooking(500)
	req.PickupWindow = window(10, 0, 10, 30)
	req.DropoffWindow = window(10, 0, 10, 30)
	vehicle := testVehicle("v1", model.Van, 600, depot)
	driver := testDriver("d1", depot)

	// [10:45, 11:15] does not touch [10:00, 10:30] raw, but the 30 minute
	// buffer expands it to [10:15, 11:45].
	adjacent := &model.Booking{
		DriverID:      "d1",
		Status:        config.Assigned,
		PickupWindow:  window(10, 45, 11, 0),
		DropoffWindow: window(11, 0, 11, 15),
	}

	if got := Score(req, vehicle, driver, []*model.Booking{adjacent}); got != DisqualifiedScore {
		t.Fatalf("buffered conflict must disqualify, got score %f", got)
	}
}

func TestScore_VehicleTypeBonus(t *testing.T) {
	req := testBooking(800)
	driver := testDriver("d1", depot)

	van := testVehicle("v1", model.Van, 5000, depot)
	truck := testVehicle("v2", model.Truck, 5000, depot)

	vanScore := Score(req, van, driver, nil)
	truckScore := Score(req, truck, driver, nil)
	if math.Abs(vanScore-truckScore-vehicleTypeBonus) > 1e-9 {
		t.Fatalf("van should win by exactly the type bonus for an 800 unit load: van=%f truck=%f", vanScore, truckScore)
	}
}

func TestPreferredVehicleType(t *testing.T) {
	tests := []struct {
		loadSize float64
		want     model.VehicleType
	}{
		{100, model.Van},
		{1000, model.Van},
		{1001, model.Truck},
		{5000, model.Truck},
		{5001, model.Semi},
		{20000, model.Semi},
	}

	for _, tt := range tests {
		if got := PreferredVehicleType(tt.loadSize); got != tt.want {
			t.Errorf("PreferredVehicleType(%f) = %s, want %s", tt.loadSize, got, tt.want)
		}
	}
}
