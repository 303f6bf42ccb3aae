package assignment

import (
	"time"

	"fleetbook/pkg/model"
)

// TurnaroundBuffer is the minimum gap required between two consecutive trips
// on the same vehicle or driver.
const TurnaroundBuffer = 30 * time.Minute

// conflictsWith reports whether the candidate trip window collides with an
// existing booking's occupation span once the turnaround buffer is applied.
// The existing span is expanded on both ends; the candidate window is not.
func conflictsWith(candidate model.TimeWindow, existing *model.Booking) bool {
	return candidate.Overlaps(existing.TripWindow().Expand(TurnaroundBuffer))
}
