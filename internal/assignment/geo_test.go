package assignment

import (
	"math"
	"testing"

	"fleetbook/pkg/model"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	p := model.GeoPoint{Lat: 32.0853, Lng: 34.7818}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("expected 0 distance for identical points, got %f", d)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Tel Aviv to Jerusalem, roughly 54 km great-circle.
	telAviv := model.GeoPoint{Lat: 32.0853, Lng: 34.7818}
	jerusalem := model.GeoPoint{Lat: 31.7683, Lng: 35.2137}

	d := DistanceKm(telAviv, jerusalem)
	if d < 50 || d > 60 {
		t.Fatalf("expected ~54 km, got %f", d)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := model.GeoPoint{Lat: 40.7128, Lng: -74.0060}
	b := model.GeoPoint{Lat: 34.0522, Lng: -118.2437}

	d1 := DistanceKm(a, b)
	d2 := DistanceKm(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceKm_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111.19 km regardless of longitude.
	a := model.GeoPoint{Lat: 0, Lng: 0}
	b := model.GeoPoint{Lat: 1, Lng: 0}

	d := DistanceKm(a, b)
	if math.Abs(d-111.19) > 0.5 {
		t.Fatalf("expected ~111.19 km per degree of latitude, got %f", d)
	}
}
