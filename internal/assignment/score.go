package assignment

import (
	"math"

	"fleetbook/pkg/model"
)

// DisqualifiedScore marks a candidate that failed a hard constraint. It is
// strictly lower than any score a qualifying pair can earn (the capacity
// base alone is +10), so a disqualified candidate can never win selection.
const DisqualifiedScore = -1.0

const (
	capacityBaseScore = 10.0

	utilizationBandLow    = 0.80
	utilizationBandHigh   = 0.95
	utilizationBandCenter = 0.875

	pickupDistanceMax   = 15.0
	pickupDecayKm       = 10.0
	driverProximityMax  = 10.0
	driverDecayKm       = 8.0
	vehicleTypeBonus    = 5.0

	vanMaxLoad   = 1000.0
	truckMaxLoad = 5000.0
)

// Score rates a (booking, vehicle, driver) triple. existing holds every
// non-terminal booking already committed to this vehicle or this driver;
// a buffered time collision with any of them disqualifies the pair, as does
// insufficient load capacity.
func Score(req *model.Booking, vehicle *model.Vehicle, driver *model.Driver, existing []*model.Booking) float64 {
	if vehicle.LoadCapacity < req.LoadSize {
		return DisqualifiedScore
	}

	score := capacityBaseScore + utilizationBonus(req.LoadSize, vehicle.LoadCapacity)
	score += decayBonus(DistanceKm(vehicle.Location, req.Pickup.Location), pickupDistanceMax, pickupDecayKm)

	candidate := req.TripWindow()
	for _, b := range existing {
		if conflictsWith(candidate, b) {
			return DisqualifiedScore
		}
	}

	score += decayBonus(DistanceKm(driver.Location, req.Pickup.Location), driverProximityMax, driverDecayKm)

	if vehicle.Type == PreferredVehicleType(req.LoadSize) {
		score += vehicleTypeBonus
	}

	return score
}

// utilizationBonus rewards loads that land in the sweet-spot band of the
// vehicle's capacity. Outside the band the bonus is zero, never negative.
func utilizationBonus(loadSize, capacity float64) float64 {
	utilization := loadSize / capacity
	if utilization < utilizationBandLow || utilization > utilizationBandHigh {
		return 0
	}
	return math.Floor((1 - math.Abs(utilizationBandCenter-utilization)) * 10)
}

// decayBonus applies exponential falloff so nearby resources score smoothly
// higher without a hard distance cutoff.
func decayBonus(distanceKm, maxPoints, decayKm float64) float64 {
	return math.Max(0, maxPoints*math.Exp(-distanceKm/decayKm))
}

// PreferredVehicleType maps a load size onto the vehicle category sized for
// it: van up to 1000 units, truck up to 5000, semi above that. Exactly one
// band applies per load.
func PreferredVehicleType(loadSize float64) model.VehicleType {
	switch {
	case loadSize <= vanMaxLoad:
		return model.Van
	case loadSize <= truckMaxLoad:
		return model.Truck
	default:
		return model.Semi
	}
}
