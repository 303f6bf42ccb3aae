package model

import "time"

// GeoPoint is a WGS-84 coordinate pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" bson:"lng" validate:"min=-180,max=180"`
}

// Stop is a named pickup or dropoff point.
type Stop struct {
	Address  string   `json:"address" bson:"address" validate:"required,min=2,max=200"`
	Location GeoPoint `json:"location" bson:"location" validate:"required"`
}

// TimeWindow is a half-open [Start, End) interval.
type TimeWindow struct {
	Start time.Time `json:"start" bson:"start" validate:"required"`
	End   time.Time `json:"end" bson:"end" validate:"required"`
}

// Overlaps reports whether two half-open intervals intersect:
// start1 < end2 && end1 > start2.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Expand returns a window widened by d on both ends.
func (w TimeWindow) Expand(d time.Duration) TimeWindow {
	return TimeWindow{
		Start: w.Start.Add(-d),
		End:   w.End.Add(d),
	}
}

// IsZero reports whether neither bound has been set.
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}
