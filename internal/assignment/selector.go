// Package assignment is the booking-to-resource matching engine: given a
// trip request and snapshots of the available vehicle and driver pools, it
// scores every pair and picks the best one, or concludes that none fits.
//
// The engine is pure. It performs no I/O, holds no state, and is fully
// deterministic given stable pool ordering; the booking service supplies
// the snapshots and commits the outcome under its own lock and transaction.
package assignment

import (
	"fleetbook/pkg/model"
)

// Result is the winning pair for a booking.
type Result struct {
	Vehicle *model.Vehicle
	Driver  *model.Driver
	Score   float64
}

// SelectPair evaluates every (vehicle, driver) combination against the
// booking and returns the pair with the strictly highest score. Ties go to
// the first pair encountered in pool order. The second return value is false
// when either pool is empty or every combination was disqualified.
//
// active holds all non-terminal bookings with committed resources; it is
// grouped per vehicle/driver here so each Score call only scans the
// candidate's own commitments. O(V*D) score evaluations.
func SelectPair(req *model.Booking, vehicles []*model.Vehicle, drivers []*model.Driver, active []*model.Booking) (Result, bool) {
	if len(vehicles) == 0 || len(drivers) == 0 {
		return Result{}, false
	}

	byVehicle := make(map[string][]*model.Booking)
	byDriver := make(map[string][]*model.Booking)
	for _, b := range active {
		if b.Status.Terminal() {
			continue
		}
		if b.VehicleID != "" {
			byVehicle[b.VehicleID] = append(byVehicle[b.VehicleID], b)
		}
		if b.DriverID != "" {
			byDriver[b.DriverID] = append(byDriver[b.DriverID], b)
		}
	}

	best := Result{Score: DisqualifiedScore}
	found := false

	for _, vehicle := range vehicles {
		for _, driver := range drivers {
			existing := append(append([]*model.Booking{}, byVehicle[vehicle.ID]...), byDriver[driver.ID]...)
			score := Score(req, vehicle, driver, existing)
			if score == DisqualifiedScore {
				continue
			}
			if !found || score > best.Score {
				best = Result{Vehicle: vehicle, Driver: driver, Score: score}
				found = true
			}
		}
	}

	return best, found
}
